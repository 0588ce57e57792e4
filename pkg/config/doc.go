// Package config defines the root configuration for the Arbiter
// decision service.
//
// Configuration is loaded from a YAML file, defaulted, optionally
// overridden by ARBITER_* environment variables, and validated. All
// validation errors are collected and reported together.
package config
