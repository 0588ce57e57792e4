// Package engine evaluates authorization requests against the
// registered policy set and produces a single permit or deny decision.
//
// # Evaluation Flow
//
//	DecisionRequest
//	       ↓
//	Take priority-sorted snapshot from the store
//	       ↓
//	Filter to policies whose target matches the request
//	  (none → deny, "no applicable policies")
//	       ↓
//	For each applicable policy in priority order:
//	  condition true → return that policy's effect
//	       ↓
//	Exhausted → deny, "no matching conditions"
//
// After every call the engine hands a DecisionRecord to the configured
// audit emitter without blocking; sink failures never alter the
// outcome.
//
// # Fail-Closed Semantics
//
// A referenced attribute that is absent resolves to the undefined
// sentinel, which can never satisfy a comparison: the condition is
// false, no error is raised, and evaluation continues. An authoring
// defect (unknown operator, malformed reference path, unsupported
// transform) is different: it raises *EvaluationError, which by
// default aborts the whole call. Callers must map a propagated error
// to deny, never permit. Config.ErrorMode selects the alternative of
// logging the defect and skipping to the next candidate.
//
// # Thread Safety
//
// Evaluation is synchronous, pure and stateless over an immutable
// snapshot: it is safe to call from arbitrarily many goroutines without
// locking. Identical (request, snapshot) pairs always yield identical
// decisions.
package engine
