package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NotFound"
	KindForbidden    ErrorKind = "Forbidden"
	KindUnauthorized ErrorKind = "Unauthorized"
	KindBadRequest   ErrorKind = "BadRequest"
	KindConflict     ErrorKind = "Conflict"
	KindInternal     ErrorKind = "InternalServerError"
)

// Error is the domain error type carried across service boundaries.
// Message text for BadRequest and Forbidden errors is safe to show to callers.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two domain errors by kind so that errors.Is can be used with
// the sentinel constructors below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NewNotFoundError reports an absent resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

// NewForbiddenError reports a permitted-identity/illegal-action failure.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewUnauthorizedError reports a missing or unresolvable caller identity.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewValidationError reports structurally or semantically invalid input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NewConflictError reports a concurrent-modification conflict.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInternalError wraps a storage or unexpected failure. The message shown
// to callers stays generic; the cause is retained for server-side logs.
func NewInternalError(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf extracts the error kind, defaulting to KindInternal for
// non-domain errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
