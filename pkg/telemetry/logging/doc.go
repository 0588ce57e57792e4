// Package logging configures structured logging for the decision
// service.
//
// It builds log/slog loggers from configuration: level, output format
// and optional source locations. Components derive their own loggers
// with a "component" attribute.
package logging
