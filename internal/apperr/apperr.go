// Package apperr defines the closed set of domain error kinds and their
// HTTP mapping. Every validation and authorization failure is detected
// before any mutation, so an apperr surfacing from a service implies no
// partial write happened.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	// KindValidation covers malformed input: negative prices, deadlines
	// outside bounds, missing required fields, unknown enum values.
	KindValidation Kind = iota
	// KindForbidden covers rank and ownership violations, including any
	// self-targeted membership mutation.
	KindForbidden
	// KindNotFound covers unknown room codes, rooms, members and entity ids.
	KindNotFound
	// KindConflict covers duplicate active memberships.
	KindConflict
	// KindLimitExceeded covers the room member cap and the per-user
	// membership cap.
	KindLimitExceeded
)

// Error is a domain error with a Kind. It satisfies errors.Is against
// other *Error values of the same Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is reports kind equality so callers can match with errors.Is against
// the sentinel helpers below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is matching.
var (
	ErrValidation    = &Error{Kind: KindValidation, Msg: "validation failed"}
	ErrForbidden     = &Error{Kind: KindForbidden, Msg: "forbidden"}
	ErrNotFound      = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrConflict      = &Error{Kind: KindConflict, Msg: "conflict"}
	ErrLimitExceeded = &Error{Kind: KindLimitExceeded, Msg: "limit exceeded"}
)

// Validation returns a KindValidation error with a formatted message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Forbidden returns a KindForbidden error with a formatted message.
func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict returns a KindConflict error with a formatted message.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// LimitExceeded returns a KindLimitExceeded error with a formatted message.
func LimitExceeded(format string, args ...any) *Error {
	return &Error{Kind: KindLimitExceeded, Msg: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to its HTTP status code. Non-domain errors
// map to 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
