// Package errors defines the storefront's coded errors.
//
// Services return them and the API layer turns the code into a status:
//
//	if p == nil {
//	    return errors.NotFound("Product not found.")
//	}
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-exported so callers need a single errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Code is the machine-readable error code sent to clients.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeValidation         Code = "VALIDATION"
	CodeTooManyRequests    Code = "TOO_MANY_REQUESTS"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeInternal           Code = "INTERNAL"
)

var statusByCode = map[Code]int{
	CodeNotFound:           http.StatusNotFound,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeValidation:         http.StatusBadRequest,
	CodeTooManyRequests:    http.StatusTooManyRequests,
	CodeUnavailable:        http.StatusServiceUnavailable,
}

// HTTPStatus maps the code to a response status; unknown codes are 500.
func (c Code) HTTPStatus() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a coded error. Message is safe to show to shoppers and admins;
// the wrapped cause is for logs only.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// New returns an error with code and msg.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// HTTPStatus returns the response status for the error's code.
func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// GetStatus satisfies huma.StatusError.
func (e *Error) GetStatus() int { return e.HTTPStatus() }

// WithDetails returns a copy carrying details.
func (e *Error) WithDetails(details any) *Error {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy wrapping err.
func (e *Error) WithCause(err error) *Error {
	c := *e
	c.cause = err
	return &c
}

// From returns the first *Error in err's chain, or nil.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Sentinels for errors.Is.
var (
	ErrNotFound     = New(CodeNotFound, "not found")
	ErrUnauthorized = New(CodeUnauthorized, "unauthorized")
	ErrValidation   = New(CodeValidation, "validation error")
)

func NotFound(msg string) *Error { return New(CodeNotFound, msg) }
func Unauthorized(msg string) *Error { return New(CodeUnauthorized, msg) }
func InvalidCredentials(msg string) *Error { return New(CodeInvalidCredentials, msg) }
func Validation(msg string) *Error { return New(CodeValidation, msg) }

// Validationf is Validation with a formatted message.
func Validationf(format string, args ...any) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// ValidationWithDetails is Validation carrying per-field messages.
func ValidationWithDetails(msg string, details any) *Error {
	return New(CodeValidation, msg).WithDetails(details)
}
