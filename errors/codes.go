package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors (detected before any resource acquisition)
const (
	// ErrCodeUnsupportedLanguage indicates a language code not present in the registry.
	ErrCodeUnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ErrCodeIdenticalLanguagePair indicates source and target languages are the same.
	ErrCodeIdenticalLanguagePair ErrorCode = "IDENTICAL_LANGUAGE_PAIR"
	// ErrCodeInvalidRequest indicates a malformed API request (bad JSON,
	// undecodable audio payload, missing fields).
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// Capture errors
const (
	// ErrCodeCaptureTimeout indicates the recording deadline elapsed with no audio captured.
	ErrCodeCaptureTimeout ErrorCode = "CAPTURE_TIMEOUT"
	// ErrCodeDeviceUnavailable indicates the requested audio or compute device cannot be acquired.
	ErrCodeDeviceUnavailable ErrorCode = "DEVICE_UNAVAILABLE"
	// ErrCodeEmptyInput indicates the audio source produced no usable samples.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
)

// Stage errors
const (
	// ErrCodeModelUnavailable indicates a model backend could not be reached or loaded.
	ErrCodeModelUnavailable ErrorCode = "MODEL_UNAVAILABLE"
	// ErrCodeInferenceError indicates a model backend failed while processing a request.
	ErrCodeInferenceError ErrorCode = "INFERENCE_ERROR"
)

// Output errors
const (
	// ErrCodeWriteError indicates the output sink failed to persist the result.
	ErrCodeWriteError ErrorCode = "WRITE_ERROR"
)

// ErrCodeInternal covers failures that do not map to the pipeline taxonomy,
// such as a recovered panic inside a stage.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeModelUnavailable:  true,
	ErrCodeDeviceUnavailable: true,
	ErrCodeCaptureTimeout:    true,
	ErrCodeWriteError:        true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// The pipeline itself never retries; the flag is advisory for callers.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
