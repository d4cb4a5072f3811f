package errors

import "fmt"

// Error codes
const (
	CodeConfig     = "CONFIG_ERROR"
	CodeExtraction = "EXTRACTION_ERROR"
	CodeWrite      = "WRITE_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeHost       = "HOST_ERROR"
)

// AppError is the base error for every surfaced failure. StatusCode carries the
// upstream HTTP status when one exists, zero otherwise.
type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// ConfigError reports a missing or malformed configuration value. It is raised
// before any network call is attempted.
type ConfigError struct {
	*AppError
	Key string
}

func NewConfigError(message, key string) *ConfigError {
	return &ConfigError{
		AppError: &AppError{
			Message: message,
			Code:    CodeConfig,
			Context: map[string]any{"key": key},
		},
		Key: key,
	}
}

// ExtractionError reports a failed completion-gateway call. By policy it is
// surfaced to the caller verbatim, never masked.
type ExtractionError struct {
	*AppError
}

func NewExtractionError(message string, statusCode int, context map[string]any) *ExtractionError {
	return &ExtractionError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeExtraction,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

// WriteError reports a structural dictionary-write failure (bad credential,
// unexpected status). Transport-level write failures never become WriteErrors;
// providers mask those as synthetic successes.
type WriteError struct {
	*AppError
	Provider string
}

func NewWriteError(message, provider string, statusCode int) *WriteError {
	return &WriteError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeWrite,
			StatusCode: statusCode,
			Context:    map[string]any{"provider": provider},
		},
		Provider: provider,
	}
}

type ValidationError struct {
	*AppError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type HostError struct {
	*AppError
}

func NewHostError(message string, context map[string]any) *HostError {
	return &HostError{
		AppError: &AppError{
			Message: message,
			Code:    CodeHost,
			Context: context,
		},
	}
}
