package policy

import "arbiter-hq/arbiter/pkg/abac/attr"

// DecisionRequest carries the attributes of one authorization question:
// may this subject perform this action on this object, in this
// environment? It is immutable for the lifetime of one evaluation and
// is never mutated by any component.
type DecisionRequest struct {
	Subject     attr.Map
	Object      attr.Map
	Action      string
	Environment attr.Map

	// RequestID correlates the decision with the caller's request. When
	// empty the engine generates one before recording the decision.
	RequestID string
}

// SubjectID returns the subject's "id" attribute, or "" when absent.
// Used for audit correlation only; evaluation never depends on it.
func (r *DecisionRequest) SubjectID() string {
	s, _ := r.Subject.Get("id").AsString()
	return s
}

// ObjectID returns the object's "id" attribute, or "" when absent.
func (r *DecisionRequest) ObjectID() string {
	s, _ := r.Object.Get("id").AsString()
	return s
}

// Decision is the outcome of one evaluation.
type Decision struct {
	// Effect is permit or deny.
	Effect Effect

	// MatchedPolicyID names the policy that produced the effect, or ""
	// for a default deny.
	MatchedPolicyID string

	// Reason is the matched policy's name, or a default-deny reason
	// ("no applicable policies", "no matching conditions").
	Reason string
}
