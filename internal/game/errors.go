package game

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the API boundary, which maps each kind
// to an HTTP status and a machine-readable code.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindPermissionDenied     Kind = "permission_denied"
	KindGated                Kind = "gated"
	KindInsufficientFunds    Kind = "insufficient_funds"
	KindInsufficientUnits    Kind = "insufficient_units"
	KindDuplicateApplication Kind = "duplicate_application"
	KindExternalFailure      Kind = "external_failure"
	KindInternal             Kind = "internal"
)

// Error is a kinded domain error. Msg is safe to show to the player.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a kinded error with a formatted message.
func E(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to internal.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindInternal
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the player-safe message, or a generic one for
// unclassified errors.
func Message(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Msg
	}
	return "internal error"
}
