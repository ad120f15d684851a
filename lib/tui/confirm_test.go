// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestConfirmModalHandleKey(t *testing.T) {
	modal := NewConfirmModal("Clear list", "Delete all 3 items?", DefaultTheme)
	tests := []struct {
		message tea.KeyMsg
		want    ConfirmChoice
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, ConfirmAccepted},
		{tea.KeyMsg{Type: tea.KeyEnter}, ConfirmAccepted},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, ConfirmRejected},
		{tea.KeyMsg{Type: tea.KeyEsc}, ConfirmRejected},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, ConfirmPending},
	}
	for _, test := range tests {
		if got := modal.HandleKey(test.message); got != test.want {
			t.Errorf("HandleKey(%q) = %v, want %v", test.message.String(), got, test.want)
		}
	}
}

func TestConfirmModalRender(t *testing.T) {
	modal := NewConfirmModal("Clear list", "Delete all 3 items? This cannot be undone.", DefaultTheme)
	lines, anchorX, anchorY := modal.Render(80, 24)
	if len(lines) < 5 {
		t.Fatalf("rendered %d lines", len(lines))
	}

	width := ansi.StringWidth(lines[0])
	for index, line := range lines {
		if ansi.StringWidth(line) != width {
			t.Errorf("line %d width = %d, want %d", index, ansi.StringWidth(line), width)
		}
	}
	if anchorX != (80-width)/2 || anchorY != (24-len(lines))/2 {
		t.Errorf("anchor = %d,%d", anchorX, anchorY)
	}

	joined := ansi.Strip(strings.Join(lines, "\n"))
	for _, want := range []string{"Clear list", "Delete all 3 items?", "y confirm"} {
		if !strings.Contains(joined, want) {
			t.Errorf("modal missing %q:\n%s", want, joined)
		}
	}
}

func TestWrapWords(t *testing.T) {
	lines := wrapWords("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("wrapWords = %q, want %q", lines, want)
	}
	for index := range want {
		if lines[index] != want[index] {
			t.Errorf("wrapWords = %q, want %q", lines, want)
		}
	}
	if got := wrapWords("", 9); len(got) != 1 || got[0] != "" {
		t.Errorf("wrapWords(\"\") = %q", got)
	}
}
