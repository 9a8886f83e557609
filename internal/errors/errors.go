// Package errors provides centralized error definitions for arffview.
// It defines sentinel errors for the client's failure modes, semantic
// error types carrying context (HTTP status, invalid field, failed
// region), and classification helpers used by the TUI alert overlay and
// the CLI exit paths.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Selection-related sentinel errors
var (
	// ErrNoFileSelected indicates a submission was attempted with no file selected.
	ErrNoFileSelected = New("no file selected")
	// ErrBadExtension indicates the selected file does not carry the required extension.
	ErrBadExtension = New("file does not have the required extension")
	// ErrFileTooLarge indicates the selected file exceeds the upload size cap.
	ErrFileTooLarge = New("file exceeds the maximum upload size")
	// ErrNotRegularFile indicates the selected path is not a regular file.
	ErrNotRegularFile = New("not a regular file")
)

// Service-related sentinel errors
var (
	// ErrEmptyResponse indicates the service returned a success status with no usable body.
	ErrEmptyResponse = New("empty response from processing service")
)

// genericUploadMessage is shown when the service reports a failure
// without a usable error message of its own.
const genericUploadMessage = "the processing service could not handle the dataset"

// ValidationError indicates the user's input (file selection or
// configuration) was rejected before any request was made.
type ValidationError struct {
	message string
	cause   error
}

// NewValidationError creates a ValidationError wrapping an optional cause.
func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{message: message, cause: cause}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error, if any.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// UserMessage returns the message to surface in an alert.
func (e *ValidationError) UserMessage() string {
	return e.message
}

// UploadError indicates the processing service rejected the submission
// or the request itself failed. StatusCode is zero for transport-level
// failures that never produced a response.
type UploadError struct {
	StatusCode int
	Message    string // server-provided message, may be empty
	cause      error
}

// NewUploadError creates an UploadError for a non-success HTTP status.
func NewUploadError(statusCode int, message string) *UploadError {
	return &UploadError{StatusCode: statusCode, Message: message}
}

// NewTransportError creates an UploadError for a request that failed
// before any HTTP status was received.
func NewTransportError(cause error) *UploadError {
	return &UploadError{cause: cause}
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	switch {
	case e.cause != nil:
		return fmt.Sprintf("upload failed: %v", e.cause)
	case e.Message != "":
		return fmt.Sprintf("processing service error (status %d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("processing service error (status %d)", e.StatusCode)
	}
}

// Unwrap returns the underlying error, if any.
func (e *UploadError) Unwrap() error {
	return e.cause
}

// UserMessage returns the server's error message when one was provided,
// falling back to a generic message.
func (e *UploadError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return genericUploadMessage
}

// RenderError indicates a result region could not be rendered.
type RenderError struct {
	Region string
	cause  error
}

// NewRenderError creates a RenderError for the named region.
func NewRenderError(region string, cause error) *RenderError {
	return &RenderError{Region: region, cause: cause}
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Region, e.cause)
}

// Unwrap returns the underlying error, if any.
func (e *RenderError) Unwrap() error {
	return e.cause
}

// UserMessage returns the message to surface in an alert.
func (e *RenderError) UserMessage() string {
	return e.Error()
}

// userFacing is implemented by errors whose message is safe to show in
// an alert.
type userFacing interface {
	UserMessage() string
}

// UserMessage extracts the alert text for err. Errors that do not carry
// a user-facing message fall back to their Error() string, which for
// this client is always operator-readable.
func UserMessage(err error) string {
	var uf userFacing
	if As(err, &uf) {
		return uf.UserMessage()
	}
	return err.Error()
}
