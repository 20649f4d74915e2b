package config

import "fmt"

// ConfigError reports the first invalid or missing configuration field
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s=%q %s", e.Field, e.Value, e.Reason)
}

func newConfigError(field, value, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
