// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Scrollbar is a one-column scroll indicator for a list of Total rows
// of which Visible are shown, starting at row Offset.
type Scrollbar struct {
	Height  int
	Total   int
	Visible int
	Offset  int

	// Marker is a row drawn as ◆ on the track, or -1 for none. The task
	// list marks the dragged task, so its position stays visible when
	// it is carried past the edge of the screen.
	Marker int

	// Focused draws the thumb in the accent color.
	Focused bool
}

// scrolls reports whether the list overflows, which is the only case
// the bar draws anything.
func (bar Scrollbar) scrolls() bool {
	return bar.Total > 0 && bar.Total > bar.Visible
}

// thumb returns the first track cell of the thumb and its length.
func (bar Scrollbar) thumb() (start, size int) {
	size = min(max(bar.Height*bar.Visible/bar.Total, 1), bar.Height)
	if hidden, travel := bar.Total-bar.Visible, bar.Height-size; hidden > 0 && travel > 0 {
		start = min(bar.Offset*travel/hidden, travel)
	}
	return start, size
}

// cell maps a row of the list to a track cell.
func (bar Scrollbar) cell(row int) int {
	return min(row*bar.Height/bar.Total, bar.Height-1)
}

// Render draws the bar, one line per track cell. A list that fits is
// a blank column.
func (bar Scrollbar) Render(theme Theme) string {
	if bar.Height <= 0 {
		return ""
	}

	cells := make([]string, bar.Height)
	if !bar.scrolls() {
		for index := range cells {
			cells[index] = " "
		}
		return strings.Join(cells, "\n")
	}

	track := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumb := track
	if bar.Focused {
		thumb = lipgloss.NewStyle().Foreground(theme.Accent)
	}

	start, size := bar.thumb()
	marker := -1
	if bar.Marker >= 0 && bar.Marker < bar.Total {
		marker = bar.cell(bar.Marker)
	}

	for index := range cells {
		switch {
		case index == marker:
			cells[index] = lipgloss.NewStyle().Foreground(theme.Accent).Render("◆")
		case index >= start && index < start+size:
			cells[index] = thumb.Render("┃")
		default:
			cells[index] = track.Render("│")
		}
	}
	return strings.Join(cells, "\n")
}
