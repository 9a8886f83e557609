package dataset

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "arffview/internal/errors"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestSelectAcceptsArff(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.arff", 64)

	sel, err := Select(path, ".arff", 0)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Name != "data.arff" {
		t.Errorf("Name = %q, want %q", sel.Name, "data.arff")
	}
	if sel.Size != 64 {
		t.Errorf("Size = %d, want 64", sel.Size)
	}
}

func TestSelectRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.txt", 8)

	_, err := Select(path, ".arff", 0)
	if !apperrors.Is(err, apperrors.ErrBadExtension) {
		t.Fatalf("Select(.txt) error = %v, want ErrBadExtension", err)
	}
	if msg := apperrors.UserMessage(err); msg == "" {
		t.Error("rejection should carry a user-facing message")
	}
}

func TestSelectExtensionIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.ARFF", 8)

	if _, err := Select(path, ".arff", 0); !apperrors.Is(err, apperrors.ErrBadExtension) {
		t.Errorf("Select(.ARFF) error = %v, want ErrBadExtension (suffix match is case-sensitive)", err)
	}
}

func TestSelectMissingFile(t *testing.T) {
	_, err := Select(filepath.Join(t.TempDir(), "absent.arff"), ".arff", 0)
	if err == nil {
		t.Fatal("Select() should fail for a missing file")
	}
	if !apperrors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestSelectRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "datasets.arff")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Select(sub, ".arff", 0); !apperrors.Is(err, apperrors.ErrNotRegularFile) {
		t.Errorf("Select(dir) error = %v, want ErrNotRegularFile", err)
	}
}

func TestSelectEnforcesSizeCap(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.arff", 2048)

	if _, err := Select(path, ".arff", 1024); !apperrors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("Select(oversized) error = %v, want ErrFileTooLarge", err)
	}

	// Cap of zero means unlimited
	if _, err := Select(path, ".arff", 0); err != nil {
		t.Errorf("Select() with no cap error = %v", err)
	}
}

func TestSelectedOpen(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.arff", 16)

	sel, err := Select(path, ".arff", 0)
	if err != nil {
		t.Fatal(err)
	}

	f, err := sel.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_ = f.Close()
}
