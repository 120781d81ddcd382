package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Extraction errors
const (
	// ErrCodeNoScribableForm indicates no visible form marked for scribing exists.
	ErrCodeNoScribableForm ErrorCode = "NO_SCRIBABLE_FORM"
)

// Session lifecycle errors
const (
	// ErrCodeSessionCreation indicates the remote session could not be created.
	ErrCodeSessionCreation ErrorCode = "SESSION_CREATION_FAILED"
	// ErrCodeSessionUpdate indicates a remote session update failed.
	ErrCodeSessionUpdate ErrorCode = "SESSION_UPDATE_FAILED"
	// ErrCodeUpload indicates an audio upload failed.
	ErrCodeUpload ErrorCode = "UPLOAD_FAILED"
	// ErrCodeTranscriptionFailed indicates the remote session reached FAILED.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeAwaitedFieldUnavailable indicates the session finished without the awaited datum.
	ErrCodeAwaitedFieldUnavailable ErrorCode = "AWAITED_FIELD_UNAVAILABLE"
)

// Transport/availability errors
const (
	// ErrCodeConnectionFailed indicates a failed connection to the backend.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
