// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/notepad/lib/tui"
	"github.com/bureau-foundation/notepad/lib/view"
)

// Row layout, in columns from the left edge of the list pane:
//
//	 [x] buy milk                          ✕
//	^^^^^                                 ^^^
//	prefix (indent + checkbox + space)    delete zone
const (
	checkboxStartX = 1
	checkboxEndX   = 4 // Exclusive.
	textStartX     = 5

	// deleteZoneWidth is " ✕ " at the right edge of the row.
	deleteZoneWidth = 3

	minimumTextWidth = 4
)

// rowRegion identifies the clickable part of a row under a column.
type rowRegion int

const (
	regionText rowRegion = iota
	regionCheckbox
	regionDelete
)

// ListRenderer renders task rows at a fixed width.
type ListRenderer struct {
	theme tui.Theme
	width int
}

// NewListRenderer creates a ListRenderer for rows of the given width.
func NewListRenderer(theme tui.Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

func (renderer ListRenderer) textWidth() int {
	width := renderer.width - textStartX - deleteZoneWidth
	if width < minimumTextWidth {
		width = minimumTextWidth
	}
	return width
}

// Region returns which part of a row the column x falls in.
func (renderer ListRenderer) Region(x int) rowRegion {
	switch {
	case x >= checkboxStartX && x < checkboxEndX:
		return regionCheckbox
	case x >= renderer.width-deleteZoneWidth && x < renderer.width:
		return regionDelete
	default:
		return regionText
	}
}

// RenderRow renders one task. Done tasks are struck through. The
// positions carried by the row are highlighted. A dragged row takes
// the drag tint, which wins over the selection tint.
func (renderer ListRenderer) RenderRow(row view.Row, selected, dragging bool) string {
	base := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	switch {
	case dragging:
		base = base.Background(renderer.theme.DragBackground).
			Foreground(renderer.theme.SelectedForeground)
	case selected:
		base = base.Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
	}

	checkbox := base.Foreground(renderer.theme.CheckboxPending).Render("[ ]")
	textStyle := base
	if row.Task.Done {
		checkbox = base.Foreground(renderer.theme.CheckboxDone).Bold(true).Render("[x]")
		textStyle = textStyle.Foreground(renderer.theme.DoneText).Strikethrough(true)
	}

	highlight := textStyle.Background(renderer.theme.MatchBackground)
	if selected || dragging {
		highlight = textStyle.Bold(true).Underline(true)
	}

	text := truncateString(row.Task.Text, renderer.textWidth())
	truncated := text != row.Task.Text
	if truncated {
		text = truncateString(text, renderer.textWidth()-1)
	}
	rendered := highlightText(text, row.Positions, textStyle, highlight)
	if truncated {
		rendered += textStyle.Render("…")
	}

	padding := renderer.width - textStartX - lipgloss.Width(text) - deleteZoneWidth
	if truncated {
		padding--
	}
	if padding < 0 {
		padding = 0
	}

	deleteGlyph := base.Foreground(renderer.theme.FaintText).Render(" ✕ ")
	line := base.Render(" ") + checkbox + base.Render(" ") +
		rendered + base.Render(strings.Repeat(" ", padding)) + deleteGlyph

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(line)
}

// highlightText renders text with the runes at positions in
// highlightStyle and the rest in baseStyle. Runs of equally styled
// runes share one Render call. Positions past the end of text are
// ignored.
func highlightText(text string, positions []int, baseStyle, highlightStyle lipgloss.Style) string {
	if len(positions) == 0 || text == "" {
		return baseStyle.Render(text)
	}

	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	runes := []rune(text)
	var result strings.Builder
	runStart := 0
	inMatch := matched[0]
	for index := 1; index <= len(runes); index++ {
		current := index < len(runes) && matched[index]
		if current != inMatch || index == len(runes) {
			chunk := string(runes[runStart:index])
			if inMatch {
				result.WriteString(highlightStyle.Render(chunk))
			} else {
				result.WriteString(baseStyle.Render(chunk))
			}
			runStart = index
			inMatch = current
		}
	}
	return result.String()
}

// truncateString shortens text to at most maxWidth display columns.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
