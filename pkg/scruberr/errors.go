// Package scruberr defines the structured error type used across scrub.
//
// Every failure the engine can report carries a stable code and the
// identifier of the entity that caused it (function, script, or field), so
// callers can react to the kind of failure without parsing messages. Only
// the CLI layer renders these to a stream; the engine packages never print.
package scruberr

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown ErrorCode = "UNKNOWN"

	// Loading errors (document unreachable/unreadable)
	ErrLoad ErrorCode = "LOAD"

	// Document errors (structurally invalid collection)
	ErrDocumentInvalid ErrorCode = "DOCUMENT_INVALID"

	// Resolution errors
	ErrUnknownFunction  ErrorCode = "UNKNOWN_FUNCTION"
	ErrMissingArgument  ErrorCode = "MISSING_ARGUMENT"
	ErrUnknownParameter ErrorCode = "UNKNOWN_PARAMETER"
	ErrCyclicCall       ErrorCode = "CYCLIC_CALL"
	ErrUnknownPipe      ErrorCode = "UNKNOWN_PIPE"

	// Compilation errors
	ErrCompile        ErrorCode = "COMPILE"
	ErrScriptNotFound ErrorCode = "SCRIPT_NOT_FOUND"

	// Execution errors
	ErrExec ErrorCode = "EXEC"
)

// Error is a structured error with a code, a message, and details
// identifying the offending entity.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches two scrub errors by code, so errors.Is can be used with
// sentinel-style comparisons against New(code, ...).
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a scrub Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var scrubErr *Error
	if errors.As(err, &scrubErr) {
		return scrubErr.Code == code
	}
	return false
}

// CodeOf returns the error code from an error, or ErrUnknown if the error
// is not a scrub Error.
func CodeOf(err error) ErrorCode {
	var scrubErr *Error
	if errors.As(err, &scrubErr) {
		return scrubErr.Code
	}
	return ErrUnknown
}

// DetailsOf returns the details from an error, or nil if the error is not
// a scrub Error.
func DetailsOf(err error) map[string]interface{} {
	var scrubErr *Error
	if errors.As(err, &scrubErr) {
		return scrubErr.Details
	}
	return nil
}
