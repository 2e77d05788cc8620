package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Taxonomy constructors ---

// UnsupportedLanguage creates a new AppError for a language code missing from the registry.
func UnsupportedLanguage(code string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedLanguage, Message: fmt.Sprintf("Language %q is not supported.", code),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"language": code},
	}
}

// IdenticalLanguagePair creates a new AppError for a source/target pair with the same code.
func IdenticalLanguagePair(code string) *AppError {
	return &AppError{
		Code: ErrCodeIdenticalLanguagePair, Message: "Source and target languages must be different.",
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"language": code},
	}
}

// InvalidRequest creates a new AppError for a malformed API request.
func InvalidRequest(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidRequest, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// CaptureTimeout creates a new AppError for a recording that produced no audio in time.
func CaptureTimeout(maxSeconds float64) *AppError {
	return &AppError{
		Code: ErrCodeCaptureTimeout, Message: "Recording timed out before any audio was captured.",
		HTTPStatus: http.StatusRequestTimeout, Retryable: true,
		Details: map[string]any{"max_duration_seconds": maxSeconds},
	}
}

// DeviceUnavailable creates a new AppError for an audio or compute device that cannot be acquired.
func DeviceUnavailable(device string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDeviceUnavailable, Message: fmt.Sprintf("Device %q is unavailable.", device),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"device": device}, Cause: cause,
	}
}

// EmptyInput creates a new AppError for an audio source with no usable samples.
func EmptyInput(source string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyInput, Message: "No audio data was provided.",
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"source": source},
	}
}

// ModelUnavailable creates a new AppError for a model backend that cannot be reached or loaded.
func ModelUnavailable(model string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeModelUnavailable, Message: fmt.Sprintf("Model %q is unavailable. Please verify the backend is running.", model),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"model": model}, Cause: cause,
	}
}

// Inference creates a new AppError for a model backend that failed while processing.
func Inference(model string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInferenceError, Message: fmt.Sprintf("Model %q failed to process the request.", model),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"model": model}, Cause: cause,
	}
}

// Write creates a new AppError for an output sink failure.
func Write(destination string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeWriteError, Message: fmt.Sprintf("Failed to write output to %q.", destination),
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"destination": destination}, Cause: cause,
	}
}

// Internal creates a new AppError for an unclassified failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
