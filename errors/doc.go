// Package errors provides structured error handling for the scribe library.
// It implements typed errors with machine-readable codes, retryable
// detection, and HTTP status mapping for the development backend.
package errors
