package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"arffview/internal/dataset"
	apperrors "arffview/internal/errors"
	"arffview/internal/logging"
)

const (
	// processPath is the upload endpoint path on the processing service.
	processPath = "/api/process/"

	// defaultEndpoint is the processing service base URL.
	defaultEndpoint = "http://localhost:8000"

	// defaultTimeout covers the full upload/process/response cycle; the
	// service renders histograms server-side, which dominates the wait.
	defaultTimeout = 2 * time.Minute

	// fileField is the multipart form field name the service reads.
	fileField = "file"
)

// ProgressFunc receives upload progress as the request body is consumed.
type ProgressFunc func(sent, total int64)

// Client defines the interface for submitting a dataset for processing.
type Client interface {
	// Process uploads the selected file and returns the parsed result.
	Process(ctx context.Context, sel dataset.Selected) (*Result, error)
}

// HTTPClient implements Client against the processing service's HTTP API.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	progress   ProgressFunc
	logger     *logging.Logger
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithEndpoint sets the service base URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *HTTPClient) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables the timeout
// and lets a hung request wait indefinitely.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithProgress sets a callback invoked as request bytes are sent.
func WithProgress(fn ProgressFunc) ClientOption {
	return func(c *HTTPClient) {
		c.progress = fn
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient creates a client for the processing service.
func NewHTTPClient(opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Process uploads the selected file as multipart/form-data and decodes
// the JSON result. A non-success status yields an *errors.UploadError
// carrying the server's message when one was provided.
func (c *HTTPClient) Process(ctx context.Context, sel dataset.Selected) (*Result, error) {
	requestID := uuid.NewString()
	logger := c.logger.WithRequest(requestID).WithFile(sel.Name)

	body, contentType, err := c.buildBody(sel)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader = body
	if c.progress != nil {
		reqBody = &progressReader{
			r:        body,
			total:    int64(body.Len()),
			progress: c.progress,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+processPath, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", requestID)

	logger.Info("uploading dataset", "bytes", sel.Size, "endpoint", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err)
		return nil, apperrors.NewTransportError(fmt.Errorf("send request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("reading response failed", "error", err)
		return nil, apperrors.NewTransportError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(respBytes, &eb) // body may be empty or non-JSON
		logger.Warn("service rejected upload", "status", resp.StatusCode, "message", eb.Error)
		return nil, apperrors.NewUploadError(resp.StatusCode, eb.Error)
	}

	if len(respBytes) == 0 {
		return nil, apperrors.ErrEmptyResponse
	}

	var result Result
	if err := json.Unmarshal(respBytes, &result); err != nil {
		logger.Error("malformed response body", "error", err)
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	logger.Info("processing complete",
		"has_dataset_info", result.DatasetInfo != nil,
		"has_split_sizes", result.SplitSizes != nil,
		"distribution_sets", len(result.Distributions),
		"histograms", len(result.Histograms))

	return &result, nil
}

// buildBody assembles the multipart form in memory. The upload size cap
// keeps datasets small enough that streaming is not worth a pipe.
func (c *HTTPClient) buildBody(sel dataset.Selected) (*bytes.Buffer, string, error) {
	f, err := sel.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fileField, sel.Name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy file into form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// progressReader reports bytes consumed from the request body.
type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.progress(p.sent, p.total)
	}
	return n, err
}
