package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the caller-facing error carried from services up to handlers.
// Status is the HTTP status the handler should respond with, Code a stable
// machine-readable identifier.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, "NOT_FOUND", fmt.Errorf(format, args...))
}

// InvalidState covers operations attempted against an entity whose current
// status forbids them (confirming a non-pending investment, starting a
// non-pending campaign, pledging against an inactive campaign).
func InvalidState(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "INVALID_STATE", fmt.Errorf(format, args...))
}

func OutOfRange(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "OUT_OF_RANGE", fmt.Errorf(format, args...))
}

func InvalidRange(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "INVALID_RANGE", fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, "CONFLICT", fmt.Errorf(format, args...))
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(http.StatusForbidden, "FORBIDDEN", fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", fmt.Errorf(format, args...))
}

// Internal wraps storage and other infrastructure failures. Handlers respond
// 500 and callers may retry the whole request.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "INTERNAL", err)
}

// From returns err as an *Error, wrapping unknown errors as Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
