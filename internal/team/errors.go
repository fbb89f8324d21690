// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package team

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotFound reports that the selected model is not in the
	// runtime's inventory.
	ErrModelNotFound = errors.New("model not found")

	// ErrRuntimeUnavailable reports that the model inventory could not be listed.
	ErrRuntimeUnavailable = errors.New("model runtime unavailable")

	// ErrMissingConfig reports that a required configuration value is empty.
	ErrMissingConfig = errors.New("missing configuration")
)

// ConfigError halts a generation cycle before any agent runs.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
