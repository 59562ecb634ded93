// internal/types/errors.go
package types

import "fmt"

// ConfigError reports an invalid configuration value. All construction-time
// validation failures (options, fade grammar, spool items) surface as this
// type so callers can match it with errors.As.
type ConfigError struct {
	Option string // the offending option, e.g. "fade", "text", "typeDelay"
	Reason string
}

// NewConfigError creates a ConfigError for an option with a printf-style reason.
func NewConfigError(option, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Option: option, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Option, e.Reason)
}
