package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by single-row fetches that miss.
var ErrNotFound = errors.New("not found")

// ErrNotAuthenticated marks operations invoked without a resolvable owner.
// Services handle it locally by returning an empty or neutral result; it is
// never surfaced to HTTP callers as a failure.
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError reports invalid input before any remote call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
