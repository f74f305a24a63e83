// Package errors provides structured error types for vestools.
//
// Core packages report failures with sentinel errors (for example
// filament.ErrNotLayered). The pipeline and the CLI wrap them in an [Error]
// carrying a machine-readable [Code] so callers can branch on the category
// and print a short message without the wrapped chain.
//
// # Error Codes
//
//   - INVALID_*: bad flags, options or input files
//   - *_NOT_FOUND: a file, component, node or depth does not exist
//   - NOT_LAYERED: a layered view was requested before layering
//   - INTERNAL_ERROR: unexpected failures (rendering, I/O)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidView, "unknown view %q", view)
//	if errors.Is(err, errors.ErrCodeInvalidView) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidView   Code = "INVALID_VIEW"
	ErrCodeInvalidRoot   Code = "INVALID_ROOT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeComponentNotFound Code = "COMPONENT_NOT_FOUND"
	ErrCodeNodeNotFound      Code = "NODE_NOT_FOUND"
	ErrCodeDepthNotFound     Code = "DEPTH_NOT_FOUND"

	ErrCodeNotLayered Code = "NOT_LAYERED"

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

// UserMessage returns the message of the outermost *Error, or err.Error()
// for other errors. Causes are included for errors that carry one.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
