package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the unified error type for the scribe library.
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

// HasCode reports whether err carries the given scribe error code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// UserMessage returns the human-readable message for an error, falling
// back to a generic one for errors that are not AppErrors.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

// --- Scribe error constructors ---

// NoScribableForm indicates no visible element marked as a scribable form exists.
func NoScribableForm() *AppError {
	return &AppError{
		Code:       ErrCodeNoScribableForm,
		Message:    "Cannot find a scribable form. Mark the form root with the scribe form attribute.",
		HTTPStatus: http.StatusPreconditionFailed,
	}
}

// SessionCreation indicates the remote session could not be created.
func SessionCreation(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeSessionCreation,
		Message:    "Error creating scribe session.",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// SessionUpdate indicates a remote session update failed.
func SessionUpdate(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeSessionUpdate,
		Message:    "Error updating scribe session.",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Upload indicates an audio upload failed. The whole cycle is aborted;
// no partial session is committed.
func Upload(reason string) *AppError {
	return &AppError{
		Code:       ErrCodeUpload,
		Message:    fmt.Sprintf("Audio upload failed: %s", reason),
		HTTPStatus: http.StatusBadGateway,
	}
}

// TranscriptionFailed indicates the remote session reached the FAILED status.
func TranscriptionFailed() *AppError {
	return &AppError{
		Code:       ErrCodeTranscriptionFailed,
		Message:    "Transcription failed.",
		HTTPStatus: http.StatusBadGateway,
	}
}

// AwaitedFieldUnavailable indicates the session reached a terminal status
// without the awaited datum.
func AwaitedFieldUnavailable(awaited string) *AppError {
	return &AppError{
		Code:       ErrCodeAwaitedFieldUnavailable,
		Message:    fmt.Sprintf("Expected %s but it is unavailable.", awaited),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"awaited": awaited},
	}
}

// --- Generic constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized creates a new AppError for unauthorized access.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
