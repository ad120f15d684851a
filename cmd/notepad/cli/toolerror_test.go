// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	err := Validation("position %d out of range", 7)
	if err.Error() != "position 7 out of range" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	err := Validation("refusing to clear 3 tasks").WithHint("Pass --yes to confirm.")
	want := "refusing to clear 3 tasks\n\nPass --yes to confirm."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_Unwrap(t *testing.T) {
	err := Internal("reading backup: %w", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is should see through ToolError")
	}

	wrapped := fmt.Errorf("import: %w", NotFound("no such file"))
	var toolError *ToolError
	if !errors.As(wrapped, &toolError) || toolError.Category != CategoryNotFound {
		t.Error("errors.As should find the ToolError and its category")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"validation", Validation("bad"), ExitValidation},
		{"not found", NotFound("missing"), ExitNotFound},
		{"internal", Internal("broken"), ExitInternal},
		{"plain", errors.New("plain"), ExitInternal},
		{"wrapped", fmt.Errorf("context: %w", NotFound("missing")), ExitNotFound},
		{"exit error", &ExitError{Code: 4}, 4},
	}
	for _, test := range tests {
		if got := ExitCode(test.err); got != test.want {
			t.Errorf("%s: ExitCode = %d, want %d", test.name, got, test.want)
		}
	}

	if !Silent(&ExitError{Code: 1}) || Silent(Validation("loud")) {
		t.Error("only ExitError should be silent")
	}
}
