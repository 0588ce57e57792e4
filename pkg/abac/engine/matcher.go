package engine

import (
	"slices"

	"arbiter-hq/arbiter/pkg/abac/attr"
	"arbiter-hq/arbiter/pkg/abac/policy"
)

// MatchTarget reports whether a policy's declared scope applies to the
// request. Pure, no side effects.
//
// A nil target matches unconditionally. Declared sections are
// conjunctive: every one of them must hold. An action section requires
// membership; a subject or object section requires each declared key to
// equal the request attribute at that key, checked first as a direct
// key and then under "attributes.<key>" (attribute maps are flat, so a
// nested attributes block flattens to dotted keys).
func MatchTarget(t *policy.Target, req *policy.DecisionRequest) bool {
	if t == nil {
		return true
	}

	if len(t.Actions) > 0 && !slices.Contains(t.Actions, req.Action) {
		return false
	}

	if !matchAttrs(t.Subjects, req.Subject) {
		return false
	}
	return matchAttrs(t.Objects, req.Object)
}

// matchAttrs checks every declared constraint against the context map.
func matchAttrs(constraints map[string]attr.Value, ctx attr.Map) bool {
	for key, want := range constraints {
		got := ctx.Get(key)
		if got.IsUndefined() {
			got = ctx.Get("attributes." + key)
		}
		if !got.Equal(want) {
			return false
		}
	}
	return true
}
