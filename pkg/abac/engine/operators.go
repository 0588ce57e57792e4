package engine

import (
	"regexp"

	"arbiter-hq/arbiter/pkg/abac/attr"
	"arbiter-hq/arbiter/pkg/abac/policy"
)

// applyOperator applies a comparison operator to two resolved operands.
//
// Undefined operands and type-incompatible pairings evaluate false,
// never an error, so missing data stays fail-closed. Only authoring
// defects (an unknown operator, an uncompilable match pattern) return
// an error.
func applyOperator(op policy.CompareOp, left, right attr.Value) (bool, error) {
	switch op {
	case policy.OpEquals:
		return left.Equal(right), nil

	case policy.OpNotEquals:
		// Undefined and type-incompatible operands never satisfy any
		// comparison, notEquals included.
		if left.IsUndefined() || right.IsUndefined() {
			return false, nil
		}
		if left.Kind() != right.Kind() {
			return false, nil
		}
		return !left.Equal(right), nil

	case policy.OpGreaterOrEqual:
		cmp, ok := left.Compare(right)
		return ok && cmp >= 0, nil

	case policy.OpLessOrEqual:
		cmp, ok := left.Compare(right)
		return ok && cmp <= 0, nil

	case policy.OpIn:
		elems, ok := right.AsList()
		if !ok {
			return false, nil
		}
		for _, e := range elems {
			if left.Equal(e) {
				return true, nil
			}
		}
		return false, nil

	case policy.OpContains:
		elems, ok := left.AsList()
		if !ok {
			return false, nil
		}
		for _, e := range elems {
			if e.Equal(right) {
				return true, nil
			}
		}
		return false, nil

	case policy.OpMatches:
		s, ok := left.AsString()
		if !ok {
			return false, nil
		}
		pattern, ok := right.AsString()
		if !ok {
			return false, nil
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, evalErrorf("invalid match pattern %q: %v", pattern, err)
		}
		return re.MatchString(s), nil

	default:
		return false, evalErrorf("unknown operator %q", op)
	}
}
