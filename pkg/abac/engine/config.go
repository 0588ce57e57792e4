package engine

import "fmt"

// ErrorMode controls what the engine does when a candidate policy's
// condition raises an EvaluationError.
type ErrorMode string

const (
	// AbortOnError aborts the whole call and propagates the error. The
	// caller maps it to deny. This is the default: a malformed policy is
	// a configuration bug that should be visible, not skipped.
	AbortOnError ErrorMode = "abort"

	// SkipOnError logs the defect and continues to the next candidate
	// by priority.
	SkipOnError ErrorMode = "skip"
)

// Config contains engine configuration.
type Config struct {
	// ErrorMode selects abort-on-error (default) or log-and-skip.
	ErrorMode ErrorMode
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{ErrorMode: AbortOnError}
}

// WithErrorMode returns a copy of the config with the error mode set.
func (c *Config) WithErrorMode(mode ErrorMode) *Config {
	cp := *c
	cp.ErrorMode = mode
	return &cp
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.ErrorMode {
	case AbortOnError, SkipOnError:
		return nil
	default:
		return fmt.Errorf("unknown error mode: %q", c.ErrorMode)
	}
}
