package compliance

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or out-of-range fact input.
//
// Facts are rejected before any engine logic runs: engines never clamp a
// negative hour count or default a missing rate. The error names the
// offending field so the caller can correct and resubmit.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid fact: %s=%s: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid fact: %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for the named field.
func Invalid(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
