// Package apperrors defines coded errors shared across services and
// transports. Services return coded errors; the HTTP layer maps codes to
// status responses without inspecting error text.
package apperrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeBadRequest marks caller mistakes: malformed dates, unknown
	// domains, empty or oversized ID batches.
	CodeBadRequest Code = "bad_request"

	// CodeNotFound marks lookups for entities the store has never seen.
	CodeNotFound Code = "not_found"

	// CodeUnavailable marks transient backend failures (store unreachable,
	// resolution timeout). Safe to retry.
	CodeUnavailable Code = "unavailable"

	// CodeInternal marks programming errors and unclassified failures.
	CodeInternal Code = "internal_error"
)

// Error is a coded error with an operator-facing description.
type Error struct {
	Code        Code
	Description string
	cause       error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no underlying cause.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Newf creates a coded error with a formatted description.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Description: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and description to an underlying error, preserving
// the cause chain for errors.Is/As.
func Wrap(err error, code Code, description string) *Error {
	return &Error{Code: code, Description: description, cause: err}
}

// GetCode extracts the code from an error chain, defaulting to CodeInternal
// for uncoded errors.
func GetCode(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}
