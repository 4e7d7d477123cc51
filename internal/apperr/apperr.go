// Package apperr defines the business error taxonomy shared by every engine.
// User-facing messages are localized; the HTTP layer maps each kind to a
// status code and never leaks internals.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindForbidden
	KindConflict
	KindConfiguration
	KindUnauthorized
)

// Error carries a kind plus the localized message shown to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status carried by the error kind. A configuration
// error surfaces as 400 even though it signals operator misconfiguration
// rather than a caller fault.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewConfiguration flags a data-setup defect (e.g. the main company missing an
// active schedule). Fatal and non-retryable for the request that hit it.
func NewConfiguration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
