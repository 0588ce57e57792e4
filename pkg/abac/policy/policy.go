package policy

import "arbiter-hq/arbiter/pkg/abac/attr"

// Effect is the outcome a policy produces when it applies and its
// condition holds.
type Effect string

const (
	EffectPermit Effect = "permit"
	EffectDeny   Effect = "deny"
)

// Valid reports whether the effect is one of the known outcomes.
func (e Effect) Valid() bool {
	return e == EffectPermit || e == EffectDeny
}

// Policy is one access control rule. Priority is the authoritative
// ordering key across the policy set: higher priorities are consulted
// first, with registration order as the stable tie-break.
type Policy struct {
	// ID uniquely identifies the policy within a store.
	ID string

	// Name is a human-readable label, surfaced as the decision reason
	// when the policy matches.
	Name string

	// Target scopes the policy. A nil target matches every request.
	Target *Target

	// Condition is the boolean rule clause. A nil condition holds
	// unconditionally once the target matches.
	Condition *Condition

	// Effect is returned when the policy applies and its condition holds.
	Effect Effect

	// Priority orders the policy against its peers (higher first).
	Priority int
}

// Target is the conjunctive scope clause of a policy. Every declared
// section must hold for the policy to apply; an absent section matches
// everything.
type Target struct {
	// Subjects constrains subject attributes: each key must equal the
	// request's subject attribute at that key.
	Subjects map[string]attr.Value

	// Objects constrains object attributes the same way.
	Objects map[string]attr.Value

	// Actions constrains the request action to the listed members.
	Actions []string
}
