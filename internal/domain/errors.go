package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("configuration error")
	ErrTransport     = errors.New("registry transport error")
	ErrInvalidURI    = errors.New("invalid service URI")
	ErrClosed        = errors.New("coordinator closed")
)

// ConfigurationError reports a fatal misconfiguration detected while
// building or registering an instance. Field names the offending setting
// (e.g. "registration.health_path") so startup can fail with a clear message.
// Use errors.Is(err, ErrConfiguration) for simple checks, or errors.As to
// read Field and Reason.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

// NewConfigurationError builds a ConfigurationError for field. err may be nil.
func NewConfigurationError(field, reason string, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason, Err: err}
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrConfiguration.Error(), e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrConfiguration as a match so callers need not unwrap.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a transport-level failure that may
// succeed on a later cycle. Configuration errors are never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrConfiguration) {
		return false
	}
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrNotFound)
}
