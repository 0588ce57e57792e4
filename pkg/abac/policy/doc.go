// Package policy defines the in-memory policy model the decision engine
// evaluates: policies with an optional target (scope), a boolean
// condition tree, a permit or deny effect, and an integer priority.
//
// Policies are immutable once registered. How a policy was constructed
// (YAML file, database row, hand-built in code) is outside this
// package; the engine only requires these shapes.
package policy
