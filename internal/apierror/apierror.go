// Package apierror defines the error taxonomy shared by every handler.
// All errors returned to clients go through this package so that responses
// keep a single envelope shape and internal details (stack traces, SQL) are
// never leaked by accident.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindInternal   Kind = iota // 500 — unhandled
	KindValidation             // 400 — missing/malformed field
	KindNotFound               // 404 — missing entity
	KindPermission             // 403 — role/ownership mismatch
	KindConflict               // 400 — duplicate unique field
	KindAuth                   // 401 — bad credentials/token
)

// Error carries a client-safe message plus its taxonomy kind.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Permission(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Auth(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected error. The cause is included in the message —
// this is an internal back-office tool and operators read these responses.
func Internal(msg string, cause error) *Error {
	full := msg
	if cause != nil {
		full = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Kind: KindInternal, Message: full, cause: cause}
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Kind: KindInternal, Message: err.Error(), cause: err}
}

// Envelope is the canonical failure body: {success:false, message}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewEnvelope(msg string) Envelope { return Envelope{Success: false, Message: msg} }
