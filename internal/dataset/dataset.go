// Package dataset handles selection and validation of the dataset file
// to upload. Exactly one file is current at a time; selecting a new one
// replaces it. Files are validated by name suffix and size only - the
// ARFF content itself is parsed by the remote service, never here.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "arffview/internal/errors"
)

// Selected is the current upload candidate.
type Selected struct {
	// Path is the absolute or caller-relative path to the file.
	Path string
	// Name is the base file name, sent as the multipart file name and
	// shown in the UI.
	Name string
	// Size is the file size in bytes.
	Size int64
}

// Select validates path and returns it as the new upload candidate.
// The file name must end with ext (case-sensitive suffix match), the
// path must point at an existing regular file, and the file must not
// exceed maxSize bytes (0 = unlimited).
func Select(path, ext string, maxSize int64) (Selected, error) {
	name := filepath.Base(path)

	if !strings.HasSuffix(name, ext) {
		return Selected{}, apperrors.NewValidationError(
			fmt.Sprintf("only %s files are accepted (got %q)", ext, name),
			apperrors.ErrBadExtension,
		)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Selected{}, apperrors.NewValidationError(
			fmt.Sprintf("cannot read %q", path),
			err,
		)
	}
	if !info.Mode().IsRegular() {
		return Selected{}, apperrors.NewValidationError(
			fmt.Sprintf("%q is not a regular file", path),
			apperrors.ErrNotRegularFile,
		)
	}

	if maxSize > 0 && info.Size() > maxSize {
		return Selected{}, apperrors.NewValidationError(
			fmt.Sprintf("%q is %.2f MB; the maximum upload size is %.0f MB",
				name, float64(info.Size())/1024/1024, float64(maxSize)/1024/1024),
			apperrors.ErrFileTooLarge,
		)
	}

	return Selected{
		Path: path,
		Name: name,
		Size: info.Size(),
	}, nil
}

// Open opens the selected file for reading.
func (s Selected) Open() (*os.File, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", s.Path, err)
	}
	return f, nil
}
