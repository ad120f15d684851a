// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ConfirmChoice is the outcome of a key press in a ConfirmModal.
type ConfirmChoice int

const (
	// ConfirmPending means the key was not an answer.
	ConfirmPending ConfirmChoice = iota
	ConfirmAccepted
	ConfirmRejected
)

// ConfirmModal is a yes/no question rendered as a centered overlay.
// Destructive actions (clearing the list) go through it.
type ConfirmModal struct {
	Title  string
	Prompt string

	theme Theme
}

// NewConfirmModal creates a modal asking prompt under title.
func NewConfirmModal(title, prompt string, theme Theme) ConfirmModal {
	return ConfirmModal{Title: title, Prompt: prompt, theme: theme}
}

// HandleKey interprets a key press. "y" and Enter accept; "n", Esc,
// and "q" reject; anything else leaves the question open.
func (modal ConfirmModal) HandleKey(message tea.KeyMsg) ConfirmChoice {
	switch message.String() {
	case "y", "Y", "enter":
		return ConfirmAccepted
	case "n", "N", "esc", "q":
		return ConfirmRejected
	default:
		return ConfirmPending
	}
}

const confirmModalMaxInnerWidth = 48

// Render produces the modal's lines and the top-left anchor that
// centers it on a screen of the given size.
func (modal ConfirmModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	// Border and one column of padding on each side.
	innerWidth := min(confirmModalMaxInnerWidth, screenWidth-4)
	innerWidth = max(innerWidth, 10)

	background := lipgloss.NewStyle().Background(modal.theme.ModalBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.ModalBackground)
	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.ModalForeground).
		Background(modal.theme.ModalBackground)
	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.ModalBackground)

	pad := func(rendered string) string {
		if width := ansi.StringWidth(rendered); width < innerWidth {
			rendered += background.Render(strings.Repeat(" ", innerWidth-width))
		}
		return rendered
	}

	var lines []string
	lines = append(lines, pad(titleStyle.Render(ansi.Truncate(modal.Title, innerWidth, "…"))))
	lines = append(lines, pad(""))
	for _, line := range wrapWords(modal.Prompt, innerWidth) {
		lines = append(lines, pad(textStyle.Render(line)))
	}
	lines = append(lines, pad(""))
	lines = append(lines, pad(footerStyle.Render("y confirm  n cancel")))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		BorderBackground(modal.theme.ModalBackground).
		Background(modal.theme.ModalBackground).
		Padding(0, 1)

	rendered := strings.Split(borderStyle.Render(strings.Join(lines, "\n")), "\n")
	width := 0
	if len(rendered) > 0 {
		width = ansi.StringWidth(rendered[0])
	}
	anchorX, anchorY := Center(screenWidth, screenHeight, width, len(rendered))
	return rendered, anchorX, anchorY
}

// wrapWords breaks text into lines no wider than width, splitting on
// spaces. Words longer than width are truncated.
func wrapWords(text string, width int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		if ansi.StringWidth(word) > width {
			word = ansi.Truncate(word, width, "…")
		}
		switch {
		case current == "":
			current = word
		case ansi.StringWidth(current)+1+ansi.StringWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}
