package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DecisionMetrics tracks metrics for the decision engine.
//
// Metrics:
//   - <ns>_<sub>_decisions_total: Decisions by effect
//   - <ns>_<sub>_evaluation_duration_seconds: Evaluation duration
//   - <ns>_<sub>_policy_matches_total: Matches per deciding policy
//   - <ns>_<sub>_evaluation_errors_total: Failed evaluations
type DecisionMetrics struct {
	registry *prometheus.Registry

	decisionsTotal     *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	policyMatchesTotal *prometheus.CounterVec
	errorsTotal        prometheus.Counter
}

// Config contains the metric naming configuration.
type Config struct {
	// Namespace is the metric namespace (e.g., "arbiter").
	Namespace string

	// Subsystem is the metric subsystem (e.g., "abac").
	Subsystem string
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() *Config {
	return &Config{Namespace: "arbiter", Subsystem: "abac"}
}

// NewDecisionMetrics creates and registers decision metrics. A nil
// registry gets its own private one, exposed via Handler.
func NewDecisionMetrics(cfg *Config, registry *prometheus.Registry) *DecisionMetrics {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	dm := &DecisionMetrics{
		registry: registry,

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "decisions_total",
				Help:      "Total number of authorization decisions",
			},
			[]string{"effect"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of policy evaluation in seconds",
				// Evaluations are in-memory and should be fast (< 10ms)
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
		),

		policyMatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "policy_matches_total",
				Help:      "Total number of decisions produced per policy",
			},
			[]string{"policy_id"},
		),

		errorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_errors_total",
				Help:      "Total number of evaluations that failed with an evaluation error",
			},
		),
	}

	registry.MustRegister(
		dm.decisionsTotal,
		dm.evaluationDuration,
		dm.policyMatchesTotal,
		dm.errorsTotal,
	)

	return dm
}

// RecordDecision records one completed evaluation.
func (dm *DecisionMetrics) RecordDecision(effect, matchedPolicyID string, duration time.Duration) {
	dm.decisionsTotal.WithLabelValues(effect).Inc()
	dm.evaluationDuration.Observe(duration.Seconds())
	if matchedPolicyID != "" {
		dm.policyMatchesTotal.WithLabelValues(matchedPolicyID).Inc()
	}
}

// RecordError records an evaluation that failed with an evaluation
// error.
func (dm *DecisionMetrics) RecordError() {
	dm.errorsTotal.Inc()
}
