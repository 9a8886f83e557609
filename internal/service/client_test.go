package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arffview/internal/dataset"
	apperrors "arffview/internal/errors"
)

func selectTestFile(t *testing.T, content string) dataset.Selected {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.arff")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	sel, err := dataset.Select(path, ".arff", 0)
	require.NoError(t, err)
	return sel
}

func TestProcessSuccess(t *testing.T) {
	sel := selectTestFile(t, "@relation kdd\n@data\n")

	var gotPath, gotRequestID, gotFileName, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotFileName = hdr.Filename
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		gotContent = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"split_sizes": {"train": 6, "validation": 2, "test": 2}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(WithEndpoint(srv.URL))
	result, err := client.Process(context.Background(), sel)
	require.NoError(t, err)

	assert.Equal(t, "/api/process/", gotPath)
	assert.NotEmpty(t, gotRequestID, "each submission should carry a request ID")
	assert.Equal(t, "data.arff", gotFileName)
	assert.Equal(t, "@relation kdd\n@data\n", gotContent)
	assert.Equal(t, 10, result.SplitSizes.Total())
}

func TestProcessServerError(t *testing.T) {
	sel := selectTestFile(t, "@data\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad file"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(WithEndpoint(srv.URL))
	_, err := client.Process(context.Background(), sel)
	require.Error(t, err)

	var uploadErr *apperrors.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, http.StatusBadRequest, uploadErr.StatusCode)
	assert.Equal(t, "bad file", uploadErr.UserMessage())
}

func TestProcessServerErrorWithoutBody(t *testing.T) {
	sel := selectTestFile(t, "@data\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithEndpoint(srv.URL))
	_, err := client.Process(context.Background(), sel)

	var uploadErr *apperrors.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.NotEmpty(t, uploadErr.UserMessage(), "fallback message must not be empty")
	assert.NotContains(t, uploadErr.UserMessage(), "500", "fallback is generic, not a status dump")
}

func TestProcessConnectionRefused(t *testing.T) {
	sel := selectTestFile(t, "@data\n")

	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewHTTPClient(WithEndpoint(url))
	_, err := client.Process(context.Background(), sel)

	var uploadErr *apperrors.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Zero(t, uploadErr.StatusCode)
}

func TestProcessEmptySuccessBody(t *testing.T) {
	sel := selectTestFile(t, "@data\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithEndpoint(srv.URL))
	_, err := client.Process(context.Background(), sel)
	assert.ErrorIs(t, err, apperrors.ErrEmptyResponse)
}

func TestProcessReportsProgress(t *testing.T) {
	sel := selectTestFile(t, "@relation kdd\n@data\n1,tcp\n2,udp\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var lastSent, total int64
	client := NewHTTPClient(
		WithEndpoint(srv.URL),
		WithProgress(func(sent, tot int64) {
			lastSent, total = sent, tot
		}),
	)

	_, err := client.Process(context.Background(), sel)
	require.NoError(t, err)

	assert.Positive(t, total, "total form size should be reported")
	assert.Equal(t, total, lastSent, "final callback should report the full body sent")
	assert.Greater(t, total, sel.Size, "multipart framing adds to the raw file size")
}

func TestProcessContextCanceled(t *testing.T) {
	sel := selectTestFile(t, "@data\n")

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPClient(WithEndpoint(srv.URL))
	_, err := client.Process(ctx, sel)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
