package main

import (
	"testing"

	"arbiter-hq/arbiter/pkg/config"
)

func TestEvalOptions_ApplyConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Policies.Path = "/etc/arbiter/policies"
	cfg.Engine.ErrorMode = "skip"
	cfg.Telemetry.Logging.Level = "warn"

	t.Run("unset options fall back to config", func(t *testing.T) {
		opts := evalOptions{request: "request.yaml"}.applyConfig(cfg)

		if opts.policies != "/etc/arbiter/policies" {
			t.Errorf("policies = %q, want config value", opts.policies)
		}
		if opts.errorMode != "skip" {
			t.Errorf("errorMode = %q, want skip", opts.errorMode)
		}
		if opts.logLevel != "warn" {
			t.Errorf("logLevel = %q, want warn", opts.logLevel)
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		opts := evalOptions{
			policies:  "local-policies.yaml",
			errorMode: "abort",
			logLevel:  "debug",
		}.applyConfig(cfg)

		if opts.policies != "local-policies.yaml" {
			t.Errorf("policies = %q, want flag value", opts.policies)
		}
		if opts.errorMode != "abort" {
			t.Errorf("errorMode = %q, want abort", opts.errorMode)
		}
		if opts.logLevel != "debug" {
			t.Errorf("logLevel = %q, want debug", opts.logLevel)
		}
	})
}
