package engine

import (
	"arbiter-hq/arbiter/pkg/abac/attr"
	"arbiter-hq/arbiter/pkg/abac/policy"
)

// EvalCondition recursively evaluates a condition tree against a
// request. It is a pure function of (condition, request): no I/O, no
// randomness, no mutation.
//
// A nil condition holds unconditionally. For logical nodes, "and" over
// an empty child list is vacuously true and "or" over an empty child
// list is vacuously false, a common authoring surprise worth stating
// explicitly. "not" requires exactly one child.
//
// Errors are authoring defects only (see EvaluationError); missing
// attributes and type-incompatible comparisons evaluate false.
func EvalCondition(c *policy.Condition, req *policy.DecisionRequest) (bool, error) {
	if c == nil {
		return true, nil
	}

	switch c.Type {
	case policy.ConditionComparison:
		return evalComparison(c, req)

	case policy.ConditionLogical:
		return evalLogical(c, req)

	default:
		return false, evalErrorf("unknown condition type %q", c.Type)
	}
}

func evalComparison(c *policy.Condition, req *policy.DecisionRequest) (bool, error) {
	left, err := attr.Resolve(c.Left, req.Subject, req.Object, req.Environment)
	if err != nil {
		return false, &EvaluationError{Detail: "left operand", Cause: err}
	}

	right, err := attr.Resolve(c.Right, req.Subject, req.Object, req.Environment)
	if err != nil {
		return false, &EvaluationError{Detail: "right operand", Cause: err}
	}

	return applyOperator(c.Op, left, right)
}

func evalLogical(c *policy.Condition, req *policy.DecisionRequest) (bool, error) {
	switch c.Logic {
	case policy.OpAnd:
		for _, child := range c.Children {
			ok, err := EvalCondition(child, req)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		// Vacuously true over an empty child list.
		return true, nil

	case policy.OpOr:
		for _, child := range c.Children {
			ok, err := EvalCondition(child, req)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		// Vacuously false over an empty child list.
		return false, nil

	case policy.OpNot:
		if len(c.Children) != 1 {
			return false, evalErrorf("not condition must have exactly one child, got %d", len(c.Children))
		}
		ok, err := EvalCondition(c.Children[0], req)
		if err != nil {
			return false, err
		}
		return !ok, nil

	default:
		return false, evalErrorf("unknown logical operator %q", c.Logic)
	}
}
