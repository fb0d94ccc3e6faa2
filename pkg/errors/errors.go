// Package errors provides structured error types for the pagecraft application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the editor core, auth, and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-displayable messages that never leak internals
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found
//   - USER_EXISTS, INVALID_CREDENTIALS, UNAUTHORIZED: Authentication outcomes
//   - EXPORT_FAILED, INTERNAL_*: Unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidKind, "unknown element kind: %s", kind)
//	if errors.Is(err, errors.ErrCodeInvalidKind) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExport, origErr, "package export")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidEmail    Code = "INVALID_EMAIL"
	ErrCodeInvalidPassword Code = "INVALID_PASSWORD"
	ErrCodeInvalidKind     Code = "INVALID_KIND"
	ErrCodeInvalidAnchor   Code = "INVALID_ANCHOR"
	ErrCodeInvalidURL      Code = "INVALID_URL"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Authentication errors
	ErrCodeUserExists         Code = "USER_EXISTS"
	ErrCodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       Code = "UNAUTHORIZED"
	ErrCodeSessionExpired     Code = "SESSION_EXPIRED"

	// Internal errors
	ErrCodeExport      Code = "EXPORT_FAILED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// For other errors, returns a generic message so internals are not shown
// to end users.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong"
}

// Public reports whether err carries a code whose message is safe to show
// to an end user. Internal and export failures are logged, not displayed.
func Public(err error) bool {
	switch GetCode(err) {
	case "", ErrCodeInternal, ErrCodeExport:
		return false
	}
	return true
}
