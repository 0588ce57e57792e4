package audit

import "fmt"

// StorageError reports a failure in a sink backend.
type StorageError struct {
	Backend   string
	Operation string
	Cause     error
}

// NewStorageError creates a storage error.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// Error returns the error message.
func (e *StorageError) Error() string {
	return fmt.Sprintf("audit storage %s: %s failed: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}
