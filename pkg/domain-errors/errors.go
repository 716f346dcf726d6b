// Package domainerrors defines coded errors shared across the service
// boundary. A Code classifies the failure; the HTTP layer maps codes to
// statuses without inspecting error text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport mapping and logging.
type Code string

const (
	// CodeValidation marks domain rule violations in otherwise
	// well-formed input.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeInvalidInput marks malformed identifiers and enum values.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeBadRequest marks requests broken at the transport level.
	CodeBadRequest Code = "BAD_REQUEST"
	// CodeNotFound marks lookups of absent entities.
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict marks uniqueness violations.
	CodeConflict Code = "CONFLICT"
	// CodeInvalidState marks operations rejected by the entity's current
	// state.
	CodeInvalidState Code = "INVALID_STATE"
	// CodeInternal marks infrastructure failures.
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable marks a backing dependency that cannot be reached.
	CodeUnavailable Code = "UNAVAILABLE"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
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

// New constructs a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. The cause
// stays reachable through errors.Is and errors.As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err or anything it wraps carries the code.
func HasCode(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Unwrap()
		if err == nil {
			return false
		}
	}
	return false
}

// Is is a readable alias for HasCode.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code carried by err, or CodeInternal when
// err has no code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
