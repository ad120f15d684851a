// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/notepad/lib/task"
	"github.com/bureau-foundation/notepad/lib/tui"
	"github.com/bureau-foundation/notepad/lib/view"
)

// FilterModel holds the search query typed after "/". The query only
// narrows what is shown; it never reorders or mutates the list.
type FilterModel struct {
	// Input is the current query text.
	Input string

	// Active is true while the query input has keyboard focus.
	Active bool
}

// Project returns the rows of list matching the query.
func (filter *FilterModel) Project(projector *view.Projector, list task.List) []view.Row {
	return projector.Project(list, filter.Input)
}

// HandleRune appends a typed character to the query.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace removes the last character of the query. Returns
// false when the query was already empty.
func (filter *FilterModel) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear empties the query and gives up focus.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the search bar. While active it shows the query with a
// cursor; while inactive with a query it shows the query faintly.
// Otherwise it returns the empty string and the caller draws a plain
// separator instead.
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render("▎")
		return lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Width(width).
			MaxWidth(width).
			Render(" / " + filter.Input + cursor)
	}

	return lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width).
		MaxWidth(width).
		Render(" search: " + filter.Input)
}
