// Package errs carries the failure kinds the data-access layer reports so
// callers can branch on what went wrong instead of reading logs.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means the requested record does not exist.
	KindNotFound
	// KindValidation means a logical precondition failed before any remote call.
	KindValidation
	// KindTransient means a remote call was rejected or unreachable; retrying may succeed.
	KindTransient
	// KindCompensation means a later step failed and the compensating cleanup
	// also failed, leaving partial state behind (e.g. an orphaned upload).
	KindCompensation
	// KindUnauthorized means the caller holds no valid session or credentials.
	KindUnauthorized
	// KindConflict means the record already exists.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindTransient:
		return "transient"
	case KindCompensation:
		return "compensation"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Error is the failure type returned across the facade boundary.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "facade.CreatePost"
	Err  error  // underlying cause, may be nil for pure precondition failures
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error from an operation, a kind and an underlying cause.
func E(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an Error with a formatted message as its cause.
func Errorf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of err, walking the wrap chain. Errors that never
// passed through this package report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
