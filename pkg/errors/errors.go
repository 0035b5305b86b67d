// Package errors provides structured error types for floatplace.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - PLATFORM_*: Failures reported by the host platform adapter
//   - RESET_*: Pipeline convergence failures
//   - NOT_FOUND / INTERNAL_*: Lookups and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPlacement, "unknown placement: %s", p)
//	if errors.Is(err, errors.ErrCodeInvalidPlacement) {
//	    // Handle validation error
//	}
//
//	// Wrap a platform failure; the cause stays reachable via errors.As.
//	err := errors.Wrap(errors.ErrCodePlatform, origErr, "get clipping rect")
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidPlacement Code = "INVALID_PLACEMENT"
	ErrCodeInvalidStrategy  Code = "INVALID_STRATEGY"
	ErrCodeInvalidScenario  Code = "INVALID_SCENARIO"

	// Platform errors
	ErrCodePlatform Code = "PLATFORM_QUERY_FAILED"

	// Pipeline errors
	ErrCodeResetLimit Code = "RESET_LIMIT_EXCEEDED"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
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

// Platform wraps a failed adapter query. A cause that already carries
// ErrCodePlatform is returned unchanged so failures are wrapped only once.
func Platform(cause error, op string) error {
	if cause == nil {
		return nil
	}
	if Is(cause, ErrCodePlatform) {
		return cause
	}
	return Wrap(ErrCodePlatform, cause, "%s", op)
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
		return e.Message
	}
	return err.Error()
}

// ResetLimitError reports a pipeline that kept requesting resets.
type ResetLimitError struct {
	Limit     int    // Configured maximum number of resets
	LastReset string // Middleware that requested the reset over the limit
}

// Error implements the error interface.
func (e *ResetLimitError) Error() string {
	return fmt.Sprintf("pipeline did not converge after %d resets (last reset by %q)", e.Limit, e.LastReset)
}

// Code returns the error code for this error type.
func (e *ResetLimitError) Code() Code {
	return ErrCodeResetLimit
}
