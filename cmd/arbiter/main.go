// Arbiter is an attribute-based access control decision service.
//
// It evaluates authorization requests against a prioritized set of
// policies, providing:
//   - Target matching on subject, object and action attributes
//   - Condition trees with comparisons and boolean combinators
//   - Deny-by-default, fail-closed decisions
//   - A persistent audit trail of every decision
//   - Hot reloading of policy files
//
// Usage:
//
//	# Validate policy files
//	arbiter lint --file policies.yaml
//
//	# Evaluate a single request against a policy set
//	arbiter eval --policies policies.yaml --request request.yaml
//
//	# Inspect and prune the audit trail
//	arbiter audit query --decision deny --limit 20
//	arbiter audit prune
//
//	# Show version information
//	arbiter version
package main

func main() {
	Execute()
}
