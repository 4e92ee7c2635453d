package inkwell

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel wrapped by every ConfigError.
var ErrConfig = errors.New("inkwell: invalid configuration")

// ConfigError reports an invalid spring, keyframe or presence configuration.
// It is only ever returned from constructors, never mid-animation.
type ConfigError struct {
	Component string // "spring", "keyframes", "presence", ...
	Field     string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("inkwell: %s: %s %s", e.Component, e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrConfig) match.
func (e *ConfigError) Unwrap() error { return ErrConfig }

func configErr(component, field, format string, args ...any) *ConfigError {
	return &ConfigError{Component: component, Field: field, Reason: fmt.Sprintf(format, args...)}
}
