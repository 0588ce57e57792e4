package config

import "time"

// Default values for configuration fields.
const (
	// Policy source defaults
	DefaultPoliciesPath     = "./policies"
	DefaultPoliciesWatch    = false
	DefaultDebounceInterval = 100 * time.Millisecond
	DefaultMaxFileSize      = 1048576 // 1MB

	// Engine defaults
	DefaultErrorMode = "abort"

	// Audit defaults
	DefaultAuditEnabled      = true
	DefaultAuditBackend      = "sqlite"
	DefaultAuditSQLitePath   = "data/decisions.db"
	DefaultAuditBufferSize   = 1000
	DefaultAuditWriteTimeout = 5 * time.Second

	// Retention defaults
	DefaultRetentionDays = 90
	DefaultPruneSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "json"
	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsNamespace     = "arbiter"
	DefaultMetricsSubsystem     = "abac"
)

// ApplyDefaults fills in default values for unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Policies.Path == "" {
		cfg.Policies.Path = DefaultPoliciesPath
	}
	if cfg.Policies.DebounceInterval == 0 {
		cfg.Policies.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Policies.MaxFileSize == 0 {
		cfg.Policies.MaxFileSize = DefaultMaxFileSize
	}

	if cfg.Engine.ErrorMode == "" {
		cfg.Engine.ErrorMode = DefaultErrorMode
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLitePath == "" {
		cfg.Audit.SQLitePath = DefaultAuditSQLitePath
	}
	if cfg.Audit.BufferSize == 0 {
		cfg.Audit.BufferSize = DefaultAuditBufferSize
	}
	if cfg.Audit.WriteTimeout == 0 {
		cfg.Audit.WriteTimeout = DefaultAuditWriteTimeout
	}
	if cfg.Audit.Retention.Days == 0 {
		cfg.Audit.Retention.Days = DefaultRetentionDays
	}
	if cfg.Audit.Retention.PruneSchedule == "" {
		cfg.Audit.Retention.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{
		Audit: AuditConfig{Enabled: DefaultAuditEnabled},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
