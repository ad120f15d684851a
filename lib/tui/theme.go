// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette of the notepad's terminal UI. All
// colors are ANSI 256-color codes for broad terminal compatibility.
//
// Styling is presentation only: the renderer picks colors from the
// task's done flag, the cursor, the active drag, and the filter's match
// positions. Nothing in the theme feeds back into the task list.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// DoneText is the foreground of completed tasks, which also render
	// struck through.
	DoneText lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// DragBackground tints the row being dragged.
	DragBackground lipgloss.Color

	// Checkbox and accent colors.
	CheckboxDone    lipgloss.Color
	CheckboxPending lipgloss.Color
	Accent          lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar severities.
	WarningForeground lipgloss.Color
	ErrorForeground   lipgloss.Color

	// MatchBackground tints characters matched by the search filter.
	MatchBackground lipgloss.Color

	// Modal dialogs.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// DefaultTheme is the built-in scheme for dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	DoneText:   lipgloss.Color("242"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),
	DragBackground:     lipgloss.Color("24"), // deep blue

	CheckboxDone:    lipgloss.Color("114"), // green
	CheckboxPending: lipgloss.Color("245"),
	Accent:          lipgloss.Color("75"), // blue

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	WarningForeground: lipgloss.Color("220"), // amber
	ErrorForeground:   lipgloss.Color("196"), // red

	MatchBackground: lipgloss.Color("58"), // dark amber

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
}
