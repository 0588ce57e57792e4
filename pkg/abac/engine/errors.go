package engine

import "fmt"

// Decision reasons for the two default-deny outcomes.
const (
	ReasonNoApplicablePolicies = "no applicable policies"
	ReasonNoMatchingConditions = "no matching conditions"
)

// EvaluationError reports an authoring defect discovered while
// evaluating a condition: an unknown operator, a malformed reference
// path, an unsupported transform, or an uncompilable match pattern.
//
// It is deliberately not a false comparison: treating a malformed
// policy as "condition did not hold" would blur a configuration bug
// with ordinary missing data. Callers must map it to a deny outcome.
type EvaluationError struct {
	PolicyID string
	Detail   string
	Cause    error
}

// Error returns the error message.
func (e *EvaluationError) Error() string {
	msg := e.Detail
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Detail, e.Cause)
	}
	if e.PolicyID != "" {
		return fmt.Sprintf("policy %q: evaluation error: %s", e.PolicyID, msg)
	}
	return fmt.Sprintf("evaluation error: %s", msg)
}

// Unwrap returns the underlying cause.
func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

func evalErrorf(format string, args ...any) *EvaluationError {
	return &EvaluationError{Detail: fmt.Sprintf(format, args...)}
}
