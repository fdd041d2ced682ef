// Package errors provides coded domain errors for the Chromafy API.
//
// Services return *Error values; the API layer maps the Code to an HTTP status and
// a machine-readable code in the response envelope.
//
//	if existing != nil {
//	    return errors.AlreadyExists(errors.MsgUserExists)
//	}
//
//	if errors.Is(err, errors.ErrNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// User-facing messages shared by the credential flows.
const (
	MsgFieldsRequired     = "All fields required"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgServerError        = "Server error"
)

// Code is a machine-readable error code.
type Code string

// Error codes.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeValidation         Code = "VALIDATION"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeLimitExceeded      Code = "LIMIT_EXCEEDED"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status for the code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeUnauthorized, CodeInvalidCredentials, CodeTokenExpired:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCause returns a copy wrapping err.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.cause = err
	return &cp
}

// Sentinels for errors.Is.
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists      = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden          = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: MsgInvalidCredentials}
	ErrTokenExpired       = &Error{Code: CodeTokenExpired, Message: "token expired"}
	ErrLimitExceeded      = &Error{Code: CodeLimitExceeded, Message: "limit exceeded"}
	ErrInternal           = &Error{Code: CodeInternal, Message: MsgServerError}
)

func newError(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func newf(code Code, format string, args ...any) *Error {
	if len(args) == 0 {
		return &Error{Code: code, Message: format}
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error { return newError(CodeNotFound, msg) }

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error { return newf(CodeNotFound, format, args...) }

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error { return newError(CodeAlreadyExists, msg) }

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error { return newError(CodeUnauthorized, msg) }

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error { return newError(CodeForbidden, msg) }

// Validation creates a validation error.
func Validation(msg string) *Error { return newError(CodeValidation, msg) }

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error { return newf(CodeValidation, format, args...) }

// ValidationWithDetails creates a validation error carrying per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// InvalidCredentials creates an invalid credentials error.
func InvalidCredentials(msg string) *Error { return newError(CodeInvalidCredentials, msg) }

// TokenExpired creates a token expired error.
func TokenExpired(msg string) *Error { return newError(CodeTokenExpired, msg) }

// LimitExceeded creates a limit exceeded error.
func LimitExceeded(msg string) *Error { return newError(CodeLimitExceeded, msg) }

// Internal creates an internal error.
func Internal(msg string) *Error { return newError(CodeInternal, msg) }

// Wrap wraps err with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps err with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
