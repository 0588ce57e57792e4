// Package metrics exposes Prometheus metrics for the decision engine:
// decision counts by effect, evaluation latency, per-policy match
// counts, and evaluation error counts.
package metrics
