// Package telemetry provides observability for Arbiter.
//
// # Components
//
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics for the decision engine
//
// # Usage
//
//	logger, err := logging.Setup(logging.Config{Level: "info", Format: "json"})
//
//	dm := metrics.NewDecisionMetrics(nil, nil)
//	eng, err := engine.New(store, engine.DefaultConfig(), logger,
//		engine.WithMetrics(dm))
//
// Evaluation is in-memory and fast; both the logger and the metrics
// recorder are safe for concurrent use and add negligible overhead per
// decision.
package telemetry
