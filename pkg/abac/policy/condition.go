package policy

import "arbiter-hq/arbiter/pkg/abac/attr"

// ConditionType discriminates the condition variants.
type ConditionType string

const (
	// ConditionComparison is a leaf: left op right over resolved refs.
	ConditionComparison ConditionType = "comparison"

	// ConditionLogical combines child conditions with and, or, not.
	ConditionLogical ConditionType = "logical"
)

// CompareOp is a comparison operator.
type CompareOp string

const (
	OpEquals         CompareOp = "equals"
	OpNotEquals      CompareOp = "notEquals"
	OpGreaterOrEqual CompareOp = "greaterOrEqual"
	OpLessOrEqual    CompareOp = "lessOrEqual"
	OpIn             CompareOp = "in"
	OpContains       CompareOp = "contains"
	OpMatches        CompareOp = "matches"
)

// LogicalOp combines child conditions.
type LogicalOp string

const (
	OpAnd LogicalOp = "and"
	OpOr  LogicalOp = "or"
	OpNot LogicalOp = "not"
)

// Condition is a node in a policy's boolean condition tree: either a
// comparison leaf or a logical combinator over children. The evaluator
// dispatches exhaustively on Type.
type Condition struct {
	Type ConditionType

	// Comparison fields.
	Op    CompareOp
	Left  attr.Ref
	Right attr.Ref

	// Logical fields.
	Logic    LogicalOp
	Children []*Condition
}

// Compare builds a comparison condition.
func Compare(op CompareOp, left, right attr.Ref) *Condition {
	return &Condition{Type: ConditionComparison, Op: op, Left: left, Right: right}
}

// And builds a conjunction. With zero children it is vacuously true.
func And(children ...*Condition) *Condition {
	return &Condition{Type: ConditionLogical, Logic: OpAnd, Children: children}
}

// Or builds a disjunction. With zero children it is vacuously false.
func Or(children ...*Condition) *Condition {
	return &Condition{Type: ConditionLogical, Logic: OpOr, Children: children}
}

// Not builds a negation over exactly one child.
func Not(child *Condition) *Condition {
	return &Condition{Type: ConditionLogical, Logic: OpNot, Children: []*Condition{child}}
}

// IsComparison reports whether the node is a comparison leaf.
func (c *Condition) IsComparison() bool { return c.Type == ConditionComparison }

// IsLogical reports whether the node is a logical combinator.
func (c *Condition) IsLogical() bool { return c.Type == ConditionLogical }
