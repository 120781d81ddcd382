// Package validation wraps go-playground/validator for struct validation.
// Validation failures are returned as structured scribe errors with
// per-field details.
package validation
