// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the task list.
type KeyMap struct {
	// Cursor movement.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Edits on the selected task.
	Toggle   key.Binding
	Remove   key.Binding
	MoveUp   key.Binding // Keyboard reorder, one position up.
	MoveDown key.Binding // Keyboard reorder, one position down.

	// Add focuses the new-task input.
	Add key.Binding

	// ClearAll asks for confirmation, then removes every task.
	ClearAll key.Binding

	// Filter.
	FilterActivate key.Binding
	FilterClear    key.Binding // Also aborts an in-progress drag.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: vim-style movement
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "last"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle"),
	),
	Remove: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("shift+up", "K"),
		key.WithHelp("K/⇧↑", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("shift+down", "J"),
		key.WithHelp("J/⇧↓", "move down"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "i"),
		key.WithHelp("a", "add"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "clear all"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
