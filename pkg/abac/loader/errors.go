package loader

import "fmt"

// LoadError reports a file system level failure while loading a policy
// file.
type LoadError struct {
	FilePath string
	Message  string
	Cause    error
}

// Error returns the error message.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseError reports a malformed policy document.
type ParseError struct {
	FilePath string
	Message  string
	Cause    error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse %s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
