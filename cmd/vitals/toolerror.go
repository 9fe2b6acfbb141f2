// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

// ErrorCategory classifies command errors so the shell exit status
// tells scripts what went wrong without parsing stderr text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// unknown flags values, unexpected arguments, malformed config or
	// threshold files. The caller should fix the input and rerun.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a file named by a flag, the config,
	// or the environment does not exist. Rerunning with the same
	// arguments will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryTransient indicates a temporary failure: the measurement
	// engine produced nothing this time. Rerunning may succeed.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, a crashed display loop. The caller should report the
	// error rather than rerun.
	CategoryInternal ErrorCategory = "internal"
)

// exitCodes maps each category to its shell exit status. Zero is
// success and never appears here; uncategorized errors exit 1.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryNotFound:   3,
	CategoryTransient:  4,
	CategoryInternal:   1,
}

// ToolError is a categorized error returned by run. The category
// decides the process exit status; the optional hint gives the user a
// concrete next step below the error message.
//
// ToolError wraps an inner error, preserving the full error chain for
// errors.Is and errors.As while adding the category. Use the
// category-specific constructors (Validation, NotFound, etc.) rather
// than constructing ToolError directly.
type ToolError struct {
	// Category classifies the error and selects the exit status.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional suggestion printed after the message,
	// separated by a blank line. Empty means no hint.
	Hint string
}

// Error returns the underlying error message, with the hint appended
// after a blank line when one is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches a suggestion to the error and returns the same
// receiver, so constructors chain: Validation(...).WithHint(...).
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode returns the process exit status for the error's category.
func (e *ToolError) ExitCode() int {
	if code, ok := exitCodes[e.Category]; ok {
		return code
	}
	return 1
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced file does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may
// succeed on rerun.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or
// I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
