// Package apperr defines the typed failures the services report to the HTTP
// layer: not-found, forbidden, conflict, and validation. Every error carries
// the resource kind and identifier that caused it so handlers can render a
// specific message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a typed domain failure.
type Error struct {
	Kind     Kind
	Resource string
	ID       int64
	Message  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ID != 0 {
		return fmt.Sprintf("%s %d: %s", e.Resource, e.ID, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Resource, e.Kind)
}

// NotFound reports that the named resource does not exist.
func NotFound(resource string, id int64) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, ID: id,
		Message: fmt.Sprintf("%s %d not found", resource, id)}
}

// Forbidden reports that the actor may not touch the named resource.
func Forbidden(resource string, id int64) *Error {
	return &Error{Kind: KindForbidden, Resource: resource, ID: id,
		Message: fmt.Sprintf("not allowed to modify %s %d", resource, id)}
}

// Conflict reports a uniqueness violation on the named resource.
func Conflict(resource string, id int64, msg string) *Error {
	return &Error{Kind: KindConflict, Resource: resource, ID: id, Message: msg}
}

// Validationf reports malformed input.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
