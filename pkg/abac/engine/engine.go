package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"arbiter-hq/arbiter/pkg/abac/policy"
	"arbiter-hq/arbiter/pkg/abac/store"
	"arbiter-hq/arbiter/pkg/audit"
	"arbiter-hq/arbiter/pkg/telemetry/metrics"
)

// Engine orchestrates snapshotting, target matching and condition
// evaluation into a single Evaluate call, and owns the default-deny
// and priority tie-break semantics.
type Engine struct {
	store   *store.Store
	config  *Config
	logger  *slog.Logger
	emitter audit.Emitter
	metrics *metrics.DecisionMetrics
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithAudit injects the audit emitter that receives a DecisionRecord
// after every evaluation.
func WithAudit(emitter audit.Emitter) Option {
	return func(e *Engine) { e.emitter = emitter }
}

// WithMetrics injects decision metrics.
func WithMetrics(dm *metrics.DecisionMetrics) Option {
	return func(e *Engine) { e.metrics = dm }
}

// New creates a decision engine over the given store.
func New(st *store.Store, config *Config, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if st == nil {
		return nil, fmt.Errorf("policy store cannot be nil")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		store:  st,
		config: config,
		logger: logger.With("component", "abac.engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate decides whether the requested action is permitted.
//
// The call is deterministic over the (request, snapshot) pair and
// purely in-memory, so the context is not polled between policies.
// On an EvaluationError in abort mode the error is returned and the
// caller must treat the outcome as deny; an error is never permit.
func (e *Engine) Evaluate(_ context.Context, req *policy.DecisionRequest) (*policy.Decision, error) {
	if req == nil {
		return nil, fmt.Errorf("decision request cannot be nil")
	}

	start := time.Now()
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	snap := e.store.Snapshot()

	applicable := make([]*policy.Policy, 0, snap.Len())
	for _, p := range snap.Policies() {
		if MatchTarget(p.Target, req) {
			applicable = append(applicable, p)
		}
	}

	if len(applicable) == 0 {
		decision := &policy.Decision{Effect: policy.EffectDeny, Reason: ReasonNoApplicablePolicies}
		e.conclude(req, requestID, decision, nil, time.Since(start))
		return decision, nil
	}

	for _, p := range applicable {
		ok, err := EvalCondition(p.Condition, req)
		if err != nil {
			evalErr := attachPolicy(err, p.ID)

			if e.config.ErrorMode == SkipOnError {
				e.logger.Warn("skipping malformed policy",
					"policy_id", p.ID,
					"error", evalErr,
				)
				continue
			}

			e.logger.Error("policy evaluation failed",
				"policy_id", p.ID,
				"request_id", requestID,
				"error", evalErr,
			)
			decision := &policy.Decision{Effect: policy.EffectDeny, Reason: evalErr.Error()}
			e.conclude(req, requestID, decision, evalErr, time.Since(start))
			return nil, evalErr
		}

		if ok {
			decision := &policy.Decision{
				Effect:          p.Effect,
				MatchedPolicyID: p.ID,
				Reason:          p.Name,
			}
			e.conclude(req, requestID, decision, nil, time.Since(start))
			return decision, nil
		}
	}

	decision := &policy.Decision{Effect: policy.EffectDeny, Reason: ReasonNoMatchingConditions}
	e.conclude(req, requestID, decision, nil, time.Since(start))
	return decision, nil
}

// conclude records the outcome: metrics, debug log, and a fire-and-
// forget audit record. Sink behavior can never alter the decision.
func (e *Engine) conclude(req *policy.DecisionRequest, requestID string, decision *policy.Decision, evalErr error, elapsed time.Duration) {
	if e.metrics != nil {
		if evalErr != nil {
			e.metrics.RecordError()
		}
		e.metrics.RecordDecision(string(decision.Effect), decision.MatchedPolicyID, elapsed)
	}

	e.logger.Debug("decision concluded",
		"request_id", requestID,
		"action", req.Action,
		"effect", decision.Effect,
		"matched_policy", decision.MatchedPolicyID,
		"reason", decision.Reason,
		"duration_us", elapsed.Microseconds(),
	)

	if e.emitter == nil {
		return
	}

	record := &audit.DecisionRecord{
		ID:              uuid.New().String(),
		RequestID:       requestID,
		Timestamp:       time.Now(),
		SubjectID:       req.SubjectID(),
		ObjectID:        req.ObjectID(),
		Action:          req.Action,
		Decision:        string(decision.Effect),
		MatchedPolicyID: decision.MatchedPolicyID,
		Reason:          decision.Reason,
		EvaluationTime:  elapsed,
	}
	if evalErr != nil {
		record.Error = evalErr.Error()
	}
	e.emitter.Emit(record)
}

// attachPolicy stamps the failing policy's id onto an evaluation error.
func attachPolicy(err error, policyID string) error {
	if ee, ok := err.(*EvaluationError); ok {
		ee.PolicyID = policyID
		return ee
	}
	return &EvaluationError{PolicyID: policyID, Detail: "condition evaluation", Cause: err}
}
