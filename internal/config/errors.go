// Package config loads, validates and persists the tool's settings.
// Settings live in per-section YAML files, merge over compiled
// defaults, and can be overridden through environment variables.
// Invalid values never abort a run: they are clamped to the nearest
// valid value and reported.
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration operations.
var (
	// ErrNotInitialized indicates the ConfigManager has not been
	// initialized via Load().
	ErrNotInitialized = errors.New("config: manager not initialized, call Load() first")

	// ErrInvalidYAML indicates invalid YAML syntax in a settings file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")
)

// ValidationError records a settings value that was outside its valid
// range and has been clamped. It is reported, not raised: validation
// always succeeds, with bad values degraded to usable ones.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation: field %q: %s", e.Field, e.Message)
}
