package rules

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing, inactive, or malformed rule
// configuration. Engines surface it unchanged so operators can see
// exactly which rule/parameter blocked an evaluation.
type ConfigError struct {
	Code   string // rule code, e.g. "FLSA_206"
	Param  string // offending parameter, empty for rule-level problems
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("rule configuration: %s param %q: %s", e.Code, e.Param, e.Reason)
	}
	return fmt.Sprintf("rule configuration: %s: %s", e.Code, e.Reason)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
