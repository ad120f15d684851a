// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlay(t *testing.T) {
	view := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")

	result := SpliceOverlay(view, []string{"XX", "YY"}, 3, 1)
	lines := strings.Split(ansi.Strip(result), "\n")

	want := []string{"aaaaaaaaaa", "bbbXXbbbbb", "cccYYccccc"}
	for index := range want {
		if lines[index] != want[index] {
			t.Errorf("line %d = %q, want %q", index, lines[index], want[index])
		}
	}
}

func TestSpliceOverlayPadsShortLines(t *testing.T) {
	result := SpliceOverlay("ab", []string{"XY"}, 4, 0)
	if got := ansi.Strip(result); got != "ab  XY" {
		t.Errorf("result = %q, want %q", got, "ab  XY")
	}
}

func TestSpliceOverlayClipsOutsideView(t *testing.T) {
	view := "line one\nline two"
	result := SpliceOverlay(view, []string{"A", "B", "C"}, 0, 1)
	lines := strings.Split(ansi.Strip(result), "\n")
	if len(lines) != 2 {
		t.Fatalf("overlay added lines: %q", lines)
	}
	if lines[0] != "line one" || lines[1] != "Aine two" {
		t.Errorf("lines = %q", lines)
	}
}

func TestCenter(t *testing.T) {
	if x, y := Center(80, 24, 20, 4); x != 30 || y != 10 {
		t.Errorf("Center = %d,%d, want 30,10", x, y)
	}
	if x, y := Center(10, 5, 20, 10); x != 0 || y != 0 {
		t.Errorf("Center of oversized block = %d,%d, want 0,0", x, y)
	}
}

func TestScrollbar(t *testing.T) {
	lines := func(bar Scrollbar) []string {
		return strings.Split(ansi.Strip(bar.Render(DefaultTheme)), "\n")
	}

	if (Scrollbar{Height: 0, Total: 10, Visible: 5, Marker: -1}).Render(DefaultTheme) != "" {
		t.Error("zero height rendered content")
	}

	for _, line := range lines(Scrollbar{Height: 4, Total: 3, Visible: 4, Marker: 1, Focused: true}) {
		if line != " " {
			t.Errorf("fitting content rendered %q, want blank", line)
		}
	}

	top := lines(Scrollbar{Height: 4, Total: 8, Visible: 4, Marker: -1})
	if strings.Join(top, "") != "┃┃││" {
		t.Errorf("scrolled to top = %q", top)
	}
	bottom := lines(Scrollbar{Height: 4, Total: 8, Visible: 4, Offset: 4, Marker: -1})
	if strings.Join(bottom, "") != "││┃┃" {
		t.Errorf("scrolled to bottom = %q", bottom)
	}

	// Row 7 of 8 lands on the last of four cells.
	marked := lines(Scrollbar{Height: 4, Total: 8, Visible: 4, Marker: 7})
	if strings.Join(marked, "") != "┃┃│◆" {
		t.Errorf("marker on last row = %q", marked)
	}

	// The thumb never shrinks below one cell.
	long := lines(Scrollbar{Height: 4, Total: 1000, Visible: 4, Offset: 500, Marker: -1})
	if strings.Count(strings.Join(long, ""), "┃") != 1 {
		t.Errorf("long list thumb = %q", long)
	}
}
