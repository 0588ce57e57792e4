package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arbiter-hq/arbiter/pkg/abac/loader"
	"arbiter-hq/arbiter/pkg/abac/policy"
	"arbiter-hq/arbiter/pkg/abac/store"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate policy files",
	Long: `Validate policy files for syntax and semantic errors.

The lint command parses policy files and performs validation:
  - YAML syntax validation
  - Policy structure validation (effect, condition shape, references)
  - Duplicate policy ID detection

Examples:
  # Lint single file
  arbiter lint --file policies.yaml

  # Lint directory
  arbiter lint --dir policies/

  # JSON output for CI/CD
  arbiter lint --file policies.yaml --format json`,
	RunE: lintPolicies,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "policy file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of policy files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the validation result for one policy source.
type LintResult struct {
	Path        string   `json:"path"`
	Valid       bool     `json:"valid"`
	PolicyCount int      `json:"policy_count"`
	Errors      []string `json:"errors,omitempty"`
}

func lintPolicies(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	path := lintFlags.file
	if path == "" {
		path = lintFlags.dir
	}

	l := loader.New(nil, nil)

	var policies []*policy.Policy
	var err error
	if lintFlags.file != "" {
		policies, err = l.LoadFile(lintFlags.file)
	} else {
		policies, err = l.LoadDir(lintFlags.dir)
	}

	// Registration catches duplicate IDs and invalid effects.
	if err == nil {
		err = store.New().Replace(policies)
	}

	result := LintResult{
		Path:        path,
		Valid:       err == nil,
		PolicyCount: len(policies),
	}
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	if lintFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Printf("✓ %s: %d policies valid\n", result.Path, result.PolicyCount)
	} else {
		fmt.Printf("✗ %s:\n", result.Path)
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
