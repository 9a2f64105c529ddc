// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Construction errors (100-199): Invalid periods, multipliers, shifts, configs
//   - Evaluation errors (200-299): Shape mismatches, missing candle context
//   - Indicator errors (300-399): Warm-up, invalidation, unknown indicator kinds
//   - Strategy errors (400-499): Structural defects found by the validator
//   - Serialization errors (500-599): Document encode/decode failures
//   - Data errors (600-699): Candle source loading and parsing
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidPeriod, "period must be at least 1")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeShapeMismatch, "cannot compare %s against %s", a, b)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeDecodeFailed, "failed to decode strategy", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeShapeMismatch) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// ErrNotReady signals that an indicator or strategy has not consumed enough
// observations to produce a defined output. It is an expected state during
// warm-up, not a failure; callers at the API boundary receive it as a None
// option rather than an error.
var ErrNotReady = New(ErrCodeIndicatorNotReady, "not enough observations consumed")

// IsNotReady checks if an error signals the warm-up state.
// It uses errors.Is to check the error chain.
func IsNotReady(err error) bool {
	return errors.Is(err, ErrNotReady)
}
