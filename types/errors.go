package types

import (
	"errors"
	"fmt"
)

// ConfigurationError represents contradictory or unreadable configuration.
// It aborts the reporting phase and maps to exit code 2 in the standalone
// binary.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(err error) *ConfigurationError {
	return &ConfigurationError{Err: err}
}

// IsConfigurationError checks if the error is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var confErr *ConfigurationError
	return err != nil && errors.As(err, &confErr)
}

// ValidationError represents a schema violation in a resolved item: a field
// failing its validation pattern, a missing required field, or mismatched
// step/result blocks. The message always names the offending item.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError checks if the error is or wraps a ValidationError
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return err != nil && errors.As(err, &valErr)
}
