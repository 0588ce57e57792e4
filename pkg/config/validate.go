package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g. "audit.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more configuration validation
// errors.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the entire configuration. All errors are collected
// and returned together; nil means the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Policies.Path == "" {
		errs = append(errs, FieldError{Field: "policies.path", Message: "cannot be empty"})
	}
	if cfg.Policies.DebounceInterval < 0 {
		errs = append(errs, FieldError{Field: "policies.debounce_interval", Message: "cannot be negative"})
	}
	if cfg.Policies.MaxFileSize <= 0 {
		errs = append(errs, FieldError{Field: "policies.max_file_size", Message: "must be positive"})
	}

	switch cfg.Engine.ErrorMode {
	case "abort", "skip":
	default:
		errs = append(errs, FieldError{
			Field:   "engine.error_mode",
			Message: fmt.Sprintf("must be %q or %q, got %q", "abort", "skip", cfg.Engine.ErrorMode),
		})
	}

	errs = append(errs, validateAudit(&cfg.Audit)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "sqlite", "memory":
	default:
		errs = append(errs, FieldError{
			Field:   "audit.backend",
			Message: fmt.Sprintf("must be %q or %q, got %q", "sqlite", "memory", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.SQLitePath == "" {
		errs = append(errs, FieldError{Field: "audit.sqlite_path", Message: "cannot be empty"})
	}
	if cfg.BufferSize <= 0 {
		errs = append(errs, FieldError{Field: "audit.buffer_size", Message: "must be positive"})
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, FieldError{Field: "audit.write_timeout", Message: "must be positive"})
	}

	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{Field: "audit.retention.days", Message: "cannot be negative"})
	}
	if cfg.Retention.MaxRecords < 0 {
		errs = append(errs, FieldError{Field: "audit.retention.max_records", Message: "cannot be negative"})
	}
	if cfg.Retention.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.PruneSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "audit.retention.prune_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be %q or %q, got %q", "json", "text", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "telemetry.metrics.listen_address", Message: "cannot be empty"})
	}
	if cfg.Metrics.Namespace == "" {
		errs = append(errs, FieldError{Field: "telemetry.metrics.namespace", Message: "cannot be empty"})
	}

	return errs
}
