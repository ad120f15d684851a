// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit without printing an error message.
// The command has already written its own output; "notepad list" on a
// list whose last write failed is one example.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Exit codes by error category.
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitValidation = 2
	ExitNotFound   = 3
)

// ExitCode maps err to a process exit status: 0 for nil, the code of an
// ExitError, the category's code for a ToolError, and ExitInternal for
// anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		switch toolError.Category {
		case CategoryValidation:
			return ExitValidation
		case CategoryNotFound:
			return ExitNotFound
		}
	}
	return ExitInternal
}

// Silent reports whether err should exit without printing.
func Silent(err error) bool {
	var exitError *ExitError
	return errors.As(err, &exitError)
}
