package store

import "fmt"

// ValidationError reports why a policy was rejected at registration.
// The policy never enters the store; the caller must fix it and retry.
type ValidationError struct {
	PolicyID string
	Errors   []string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("policy %q: validation error: %s", e.PolicyID, e.Errors[0])
	}
	return fmt.Sprintf("policy %q: %d validation errors: %v", e.PolicyID, len(e.Errors), e.Errors)
}
