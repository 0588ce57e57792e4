package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"arbiter-hq/arbiter/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "arbiter",
	Short: "Arbiter - attribute-based access control decision service",
	Long: `Arbiter is an attribute-based access control (ABAC) decision service.

It evaluates authorization requests against a prioritized set of policies:
  - Target matching on subject, object and action attributes
  - Condition trees with comparisons and boolean combinators
  - Deny-by-default, fail-closed decisions
  - A persistent audit trail of every decision`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file with environment overrides.
// A missing config file falls back to defaults so a fresh checkout
// works without one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.DefaultConfig()
	}
	return cfg, nil
}
