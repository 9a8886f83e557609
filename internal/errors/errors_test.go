package errors

import (
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(`only .arff files are accepted (got "data.txt")`, ErrBadExtension)

	if !Is(err, ErrBadExtension) {
		t.Error("ValidationError should match its wrapped sentinel")
	}
	if got := err.UserMessage(); got != `only .arff files are accepted (got "data.txt")` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := err.Error(); got == err.UserMessage() {
		t.Error("Error() should include the wrapped cause")
	}
}

func TestUploadErrorServerMessage(t *testing.T) {
	err := NewUploadError(400, "bad file")

	if got := err.UserMessage(); got != "bad file" {
		t.Errorf("UserMessage() = %q, want server message", got)
	}
	if got := err.Error(); got != "processing service error (status 400): bad file" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUploadErrorGenericFallback(t *testing.T) {
	err := NewUploadError(500, "")

	if got := err.UserMessage(); got != genericUploadMessage {
		t.Errorf("UserMessage() = %q, want generic fallback", got)
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := New("connection refused")
	err := NewTransportError(fmt.Errorf("send request: %w", cause))

	if !Is(err, cause) {
		t.Error("transport error should unwrap to its cause")
	}
	if err.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failures", err.StatusCode)
	}
}

func TestRenderError(t *testing.T) {
	err := NewRenderError("histograms", New("illegal base64 data"))

	if got := err.Error(); got != "rendering histograms: illegal base64 data" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUserMessageFallback(t *testing.T) {
	plain := New("something broke")
	if got := UserMessage(plain); got != "something broke" {
		t.Errorf("UserMessage(plain) = %q", got)
	}

	wrapped := fmt.Errorf("submit: %w", NewUploadError(404, "not found"))
	if got := UserMessage(wrapped); got != "not found" {
		t.Errorf("UserMessage(wrapped) = %q, want unwrapped server message", got)
	}
}
