package config

import "time"

// Config is the root configuration structure for Arbiter. It contains
// all configuration sections for policy loading, the decision engine,
// the audit trail, and telemetry.
type Config struct {
	// Policies contains configuration for the policy source: file or
	// directory location, watch mode, and reload debouncing.
	Policies PoliciesConfig `yaml:"policies"`

	// Engine contains configuration for the decision engine.
	Engine EngineConfig `yaml:"engine"`

	// Audit contains configuration for decision recording: storage
	// backend, async buffering, and retention.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// PoliciesConfig contains configuration for the policy source.
type PoliciesConfig struct {
	// Path is the policy file or directory to load.
	// Default: "./policies"
	Path string `yaml:"path"`

	// Watch enables hot reloading when policy files change.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period before a watched change
	// triggers a reload.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// MaxFileSize is the largest policy file accepted, in bytes.
	// Default: 1048576 (1MB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// EngineConfig contains configuration for the decision engine.
type EngineConfig struct {
	// ErrorMode controls how evaluation errors are handled: "abort"
	// fails the whole request, "skip" moves on to the next policy.
	// Default: "abort"
	ErrorMode string `yaml:"error_mode"`
}

// AuditConfig contains configuration for the decision audit trail.
type AuditConfig struct {
	// Enabled controls whether decisions are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/decisions.db"
	SQLitePath string `yaml:"sqlite_path"`

	// BufferSize is the async recorder channel capacity.
	// Default: 1000
	BufferSize int `yaml:"buffer_size"`

	// WriteTimeout bounds a single storage write.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Retention contains retention limits for stored records.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains retention limits for the audit trail.
type RetentionConfig struct {
	// Days is the number of days to retain records. 0 keeps forever.
	// Default: 90
	Days int `yaml:"days"`

	// MaxRecords caps the number of stored records. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for scheduled pruning.
	// Empty disables scheduling.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains configuration for logging and metrics.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format selects the output encoding: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where the metrics HTTP endpoint listens.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix.
	// Default: "arbiter"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem segment.
	// Default: "abac"
	Subsystem string `yaml:"subsystem"`
}
