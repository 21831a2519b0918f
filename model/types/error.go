package types

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a section configuration value is unusable.
var ErrInvalidConfig = errors.New("invalid config")

// NewInvalidConfigError reports an unusable configuration value.
func NewInvalidConfigError(key string, value interface{}, expected string) error {
	return fmt.Errorf("%w: %v: expected %v, got %T(%v)", ErrInvalidConfig, key, expected, value, value)
}

// NewMissingConfigError reports a missing configuration key.
func NewMissingConfigError(key string) error {
	return fmt.Errorf("%w: %v is required", ErrInvalidConfig, key)
}
