package audit

import (
	"context"
	"time"
)

// DecisionRecord captures one authorization decision for the audit
// trail.
type DecisionRecord struct {
	// ID uniquely identifies the record.
	ID string

	// RequestID correlates the record with the caller's request.
	RequestID string

	// Timestamp is when the decision was made.
	Timestamp time.Time

	// SubjectID is the subject's "id" attribute, if present.
	SubjectID string

	// ObjectID is the object's "id" attribute, if present.
	ObjectID string

	// Action is the requested action.
	Action string

	// Decision is the effect ("permit" or "deny").
	Decision string

	// MatchedPolicyID names the deciding policy, or "" for default deny.
	MatchedPolicyID string

	// Reason is the decision reason.
	Reason string

	// Error carries the evaluation error message when the call failed.
	// The caller maps such calls to deny; the record keeps the two
	// distinguishable for operators.
	Error string

	// EvaluationTime is how long the evaluation took.
	EvaluationTime time.Duration
}

// Sink persists decision records. Implementations must be safe for
// concurrent use.
type Sink interface {
	Store(ctx context.Context, record *DecisionRecord) error
	Close() error
}

// Emitter accepts records from the engine without blocking. The async
// recorder is the canonical implementation; tests may supply their own.
type Emitter interface {
	Emit(record *DecisionRecord)
}
