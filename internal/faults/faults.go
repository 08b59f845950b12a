// Package faults classifies hard failures so the tool boundary can tell a
// caller mistake (bad input, unknown entity) from a broken system.
//
// Precondition mismatches (stale positions, text not found) are NOT faults:
// they are reported as result values with Success=false by the packages
// that detect them.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the coarse category of a hard failure.
type Kind string

const (
	KindInvalidParams Kind = "invalid_params"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
)

// Error is a classified failure. Alternatives lists valid choices when the
// caller referenced something that does not exist.
type Error struct {
	Kind         Kind
	Message      string
	Alternatives []string
	Err          error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Alternatives) > 0 {
		msg += ". Available: " + strings.Join(e.Alternatives, ", ")
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// InvalidParams reports missing or malformed caller input.
func InvalidParams(format string, args ...any) error {
	return &Error{Kind: KindInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a reference to an entity that does not exist.
func NotFound(what, name string, alternatives []string) error {
	msg := fmt.Sprintf("%s %q not found", what, name)
	if len(alternatives) == 0 {
		msg += " (none exist yet)"
	}
	return &Error{Kind: KindNotFound, Message: msg, Alternatives: alternatives}
}

// Internal wraps an unexpected failure, keeping the original message.
func Internal(err error, format string, args ...any) error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}

// IsClient reports whether err is something the caller can fix by changing
// its request.
func IsClient(err error) bool {
	k := KindOf(err)
	return k == KindInvalidParams || k == KindNotFound
}
