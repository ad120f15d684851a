// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so that scripts can tell bad
// input from a missing task from a broken installation by exit code
// alone.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: a wrong argument
	// count, an unparseable position, blank task text, a missing
	// --yes. Fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced task or file does not
	// exist. Retrying with the same arguments will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates an unexpected failure: storage that
	// cannot be opened, a write that failed, a corrupt backup.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps the
// underlying error, so errors.Is and errors.As see through it.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step, printed after a blank line.
	Hint string
}

func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches a hint and returns e.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced task or file does
// not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected or I/O failure.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
