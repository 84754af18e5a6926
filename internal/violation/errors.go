package violation

import (
	"errors"
	"fmt"
)

// TransitionError reports an illegal lifecycle transition attempt.
// It carries structured fields so callers can distinguish a terminal-state
// rejection from a missing actor or note without parsing the message.
type TransitionError struct {
	ViolationID string
	From        Status
	To          Status
	Reason      string
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	if e.ViolationID != "" {
		return fmt.Sprintf("transition %s -> %s rejected: %s (violation=%s)", e.From, e.To, e.Reason, e.ViolationID)
	}
	return fmt.Sprintf("transition %s -> %s rejected: %s", e.From, e.To, e.Reason)
}

// IsTransitionError reports whether err is (or wraps) a TransitionError.
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
