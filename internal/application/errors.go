package application

import (
	"errors"
	"fmt"
)

// ErrAuthUnavailable means no token exists and no token could be obtained.
// A delivery must not be attempted with authentication in this state.
var ErrAuthUnavailable = errors.New("auth unavailable")

// ConfigurationError is a startup-fatal misconfiguration, such as a
// required credential file that does not exist. It always names the
// offending path or field.
type ConfigurationError struct {
	Subject string // path or field name
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Message)
}
