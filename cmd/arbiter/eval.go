package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"arbiter-hq/arbiter/pkg/abac/attr"
	"arbiter-hq/arbiter/pkg/abac/engine"
	"arbiter-hq/arbiter/pkg/abac/loader"
	"arbiter-hq/arbiter/pkg/abac/policy"
	"arbiter-hq/arbiter/pkg/abac/store"
	"arbiter-hq/arbiter/pkg/config"
	"arbiter-hq/arbiter/pkg/telemetry/logging"
)

// evalOptions holds the eval command settings. Flags left unset fall
// back to the corresponding configuration values.
type evalOptions struct {
	policies  string
	request   string
	errorMode string
	format    string
	logLevel  string
}

// applyConfig fills unset options from the configuration.
func (o evalOptions) applyConfig(cfg *config.Config) evalOptions {
	if o.policies == "" {
		o.policies = cfg.Policies.Path
	}
	if o.errorMode == "" {
		o.errorMode = cfg.Engine.ErrorMode
	}
	if o.logLevel == "" {
		o.logLevel = cfg.Telemetry.Logging.Level
	}
	return o
}

var evalFlags evalOptions

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a decision request against policies",
	Long: `Evaluate one authorization request against a policy set.

The request file is YAML with subject, object, action and optional
environment attributes:

  subject:
    id: alice
    role: admin
  object:
    id: doc-1
    owner: alice
  action: read
  environment:
    timestamp: 2026-08-31T09:00:00Z

If environment.timestamp is absent, the current time is used.

Examples:
  # Evaluate against a policy file
  arbiter eval --policies policies.yaml --request request.yaml

  # Evaluate against a policy directory, JSON output
  arbiter eval --policies policies/ --request request.yaml --format json

  # Skip malformed policies instead of failing the request
  arbiter eval --policies policies.yaml --request request.yaml --error-mode skip`,
	RunE: evalRequest,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFlags.policies, "policies", "p", "", "policy file or directory (default from config)")
	evalCmd.Flags().StringVarP(&evalFlags.request, "request", "r", "", "request file (required)")
	evalCmd.Flags().StringVar(&evalFlags.errorMode, "error-mode", "", "evaluation error handling: abort, skip (default from config)")
	evalCmd.Flags().StringVar(&evalFlags.format, "format", "text", "output format: text, json")
	evalCmd.Flags().StringVar(&evalFlags.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	evalCmd.MarkFlagRequired("request")
}

// requestFile is the YAML shape of a decision request.
type requestFile struct {
	Subject     map[string]any `yaml:"subject"`
	Object      map[string]any `yaml:"object"`
	Action      string         `yaml:"action"`
	Environment map[string]any `yaml:"environment"`
	RequestID   string         `yaml:"request_id"`
}

// evalOutput is the JSON shape of the result.
type evalOutput struct {
	Effect          string `json:"effect"`
	MatchedPolicyID string `json:"matched_policy_id,omitempty"`
	Reason          string `json:"reason"`
	Error           string `json:"error,omitempty"`
}

func evalRequest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := evalFlags.applyConfig(cfg)

	if _, err := logging.Setup(logging.Config{
		Level:  opts.logLevel,
		Format: cfg.Telemetry.Logging.Format,
		Writer: os.Stderr,
	}); err != nil {
		return err
	}

	st := store.New()
	lcfg := loader.DefaultConfig()
	lcfg.MaxFileSize = cfg.Policies.MaxFileSize
	l := loader.New(lcfg, nil)

	info, err := os.Stat(opts.policies)
	if err != nil {
		return fmt.Errorf("failed to access policies: %w", err)
	}

	var policies []*policy.Policy
	if info.IsDir() {
		policies, err = l.LoadDir(opts.policies)
	} else {
		policies, err = l.LoadFile(opts.policies)
	}
	if err != nil {
		return err
	}
	if err := st.Replace(policies); err != nil {
		return err
	}

	req, err := readRequest(opts.request)
	if err != nil {
		return err
	}

	eng, err := engine.New(st, engine.DefaultConfig().WithErrorMode(engine.ErrorMode(opts.errorMode)), nil)
	if err != nil {
		return err
	}

	decision, evalErr := eng.Evaluate(context.Background(), req)

	out := evalOutput{Effect: string(policy.EffectDeny)}
	if evalErr != nil {
		out.Reason = "evaluation error"
		out.Error = evalErr.Error()
	} else {
		out.Effect = string(decision.Effect)
		out.MatchedPolicyID = decision.MatchedPolicyID
		out.Reason = decision.Reason
	}

	if opts.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Printf("Effect:  %s\n", out.Effect)
		if out.MatchedPolicyID != "" {
			fmt.Printf("Policy:  %s\n", out.MatchedPolicyID)
		}
		fmt.Printf("Reason:  %s\n", out.Reason)
		if out.Error != "" {
			fmt.Printf("Error:   %s\n", out.Error)
		}
	}

	if out.Effect != string(policy.EffectPermit) {
		os.Exit(1)
	}
	return nil
}

func readRequest(path string) (*policy.DecisionRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %q: %w", path, err)
	}

	var rf requestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse request file %q: %w", path, err)
	}
	if rf.Action == "" {
		return nil, fmt.Errorf("request file %q: action cannot be empty", path)
	}

	subject, err := toAttrMap(rf.Subject, "subject")
	if err != nil {
		return nil, err
	}
	object, err := toAttrMap(rf.Object, "object")
	if err != nil {
		return nil, err
	}
	environment, err := toAttrMap(rf.Environment, "environment")
	if err != nil {
		return nil, err
	}

	if environment == nil {
		environment = attr.Map{}
	}
	if _, ok := environment["timestamp"]; !ok {
		environment["timestamp"] = attr.Time(time.Now())
	}

	return &policy.DecisionRequest{
		Subject:     subject,
		Object:      object,
		Action:      rf.Action,
		Environment: environment,
		RequestID:   rf.RequestID,
	}, nil
}

func toAttrMap(m map[string]any, section string) (attr.Map, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(attr.Map, len(m))
	for k, raw := range m {
		v, ok := attr.FromAny(raw)
		if !ok {
			return nil, fmt.Errorf("%s: unsupported value type %T for attribute %q", section, raw, k)
		}
		out[k] = v
	}
	return out, nil
}
