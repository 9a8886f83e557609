package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "service.endpoint")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidContracts returns the list of valid dataset_info contract overrides
func ValidContracts() []string {
	return []string{"", "stratify", "shape"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateService()...)
	errors = append(errors, c.validateUpload()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateService() []ValidationError {
	var errors []ValidationError

	u, err := url.Parse(c.Service.Endpoint)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "service.endpoint",
			Value:   c.Service.Endpoint,
			Message: "must be an absolute http or https URL",
		})
	}

	if c.Service.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "service.timeout_seconds",
			Value:   c.Service.TimeoutSeconds,
			Message: "must be zero or positive",
		})
	}

	if !slices.Contains(ValidContracts(), c.Service.Contract) {
		errors = append(errors, ValidationError{
			Field:   "service.contract",
			Value:   c.Service.Contract,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidContracts()[1:], ", ")),
		})
	}

	return errors
}

func (c *Config) validateUpload() []ValidationError {
	var errors []ValidationError

	if !strings.HasPrefix(c.Upload.Extension, ".") || len(c.Upload.Extension) < 2 {
		errors = append(errors, ValidationError{
			Field:   "upload.extension",
			Value:   c.Upload.Extension,
			Message: "must start with a dot and name an extension",
		})
	}

	if c.Upload.MaxSizeBytes < 0 {
		errors = append(errors, ValidationError{
			Field:   "upload.max_size_bytes",
			Value:   c.Upload.MaxSizeBytes,
			Message: "must be zero or positive",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
