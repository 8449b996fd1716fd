package storage

import "fmt"

// CorruptDataError reports a persisted payload that could not be parsed back
// into valid records. It is surfaced to the caller, never auto-cleared.
type CorruptDataError struct {
	Key    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data under key %q: %s", e.Key, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// IOError reports a failed read or write against the persistence provider.
// Propagated as-is; the core never pretends a write succeeded.
type IOError struct {
	Op  string
	Key string
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("storage %s on key %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}
