// Package errors provides structured error types for aplet.
//
// This package defines error codes and types that enable:
//   - Consistent error handling between the engine's collaborators and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - MALFORMED_* / INVALID_*: Input that cannot be used
//   - *_NOT_FOUND: Missing files
//   - INTERNAL_*: Unexpected internal errors
//
// The two hard failures of the feature model engine's inputs are
// [ErrCodeMalformedModel] (the feature model document is empty, unparseable,
// or has no structure section) and [ErrCodeConfigNotFound] (a product
// configuration file does not exist). Missing test data is never an error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfigNotFound, "product config %s does not exist", path)
//	if errors.Is(err, errors.ErrCodeConfigNotFound) {
//	    // Handle missing configuration
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedModel, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeMalformedModel Code = "MALFORMED_MODEL"
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidReport  Code = "INVALID_REPORT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Missing resources
	ErrCodeConfigNotFound  Code = "CONFIG_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeProductNotFound Code = "PRODUCT_NOT_FOUND"

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

// ExitCode maps an error to a process exit status for the CLI: 2 for input
// problems the user can fix, 1 for everything else.
func ExitCode(err error) int {
	switch GetCode(err) {
	case ErrCodeMalformedModel, ErrCodeConfigNotFound, ErrCodeFileNotFound,
		ErrCodeProductNotFound, ErrCodeInvalidInput, ErrCodeInvalidConfig, ErrCodeInvalidPath:
		return 2
	}
	return 1
}
