package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotConnected       = errors.New("not connected")
	ErrVerificationFailed = errors.New("connection verification failed")
	ErrInvalidYear        = errors.New("invalid year")
	ErrUnknownDriver      = errors.New("unknown database driver")
	ErrInputClosed        = errors.New("input closed")
)

// ErrorKind classifies why a workflow stopped
type ErrorKind string

const (
	KindConnectivity ErrorKind = "connectivity" // Cannot reach or authenticate to the database
	KindVerification ErrorKind = "verification" // Round-trip query returned an unexpected value
	KindInput        ErrorKind = "input"        // Interactive input could not be read or parsed
	KindData         ErrorKind = "data"         // Schema, insert, query or render failed
	KindCleanup      ErrorKind = "cleanup"      // Closing the connection failed
)

// NeedsRollback reports whether an error of this kind leaves an open
// transaction behind that has to be discarded.
func (k ErrorKind) NeedsRollback() bool {
	return k == KindInput || k == KindData
}

// WorkflowError is the typed result of an aborted workflow step
type WorkflowError struct {
	Kind ErrorKind
	Op   string // Step that failed, e.g. "insert student"
	Err  error
}

// NewWorkflowError wraps err with a kind and the failing step
func NewWorkflowError(kind ErrorKind, op string, err error) *WorkflowError {
	return &WorkflowError{Kind: kind, Op: op, Err: err}
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, or an empty kind when err is not
// a WorkflowError.
func KindOf(err error) ErrorKind {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}
