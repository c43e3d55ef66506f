// Package errors provides structured error types for the timeline renderer.
//
// Every fatal failure surfaced to the command line carries a machine-readable
// [Code] so callers (and tests) can branch on the failure category without
// matching message text.
//
// # Error Codes
//
//   - INVALID_*: the input document is malformed
//   - MISSING_KEY: a key required by a requested output is absent
//   - FILE_NOT_FOUND: the document could not be opened
//   - UNSUPPORTED_FORMAT: an output path has an extension no sink handles
//   - RENDER_FAILED: a sink could not produce its output
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDate, "start %q is not YYYY-MM-DD", s)
//	if errors.Is(err, errors.ErrCodeInvalidDate) {
//	    // ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeRender, cause, "encode png")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input document errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidDate  Code = "INVALID_DATE"
	ErrCodeInvalidColor Code = "INVALID_COLOR"
	ErrCodeMissingKey   Code = "MISSING_KEY"

	// File errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Output errors
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeRender            Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
