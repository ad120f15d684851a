// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"fmt"
	"strings"

	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/notepad/lib/task"
	"github.com/bureau-foundation/notepad/lib/tui"
)

// Row is one visible task.
type Row struct {
	Task task.Task

	// Index is the task's position in the unfiltered list.
	Index int

	// Positions are the rune offsets of Task.Text that matched the
	// query, for highlighting. Nil for an empty query.
	Positions []int
}

// ID returns the row's task ID.
func (row Row) ID() task.ID {
	return row.Task.ID
}

// Mode selects how a query matches task text.
type Mode int

const (
	// Substring matches text containing the query, ignoring case.
	Substring Mode = iota

	// Fuzzy matches text containing the query's characters in order.
	Fuzzy
)

func (mode Mode) String() string {
	switch mode {
	case Substring:
		return "substring"
	case Fuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("Mode(%d)", int(mode))
	}
}

// ParseMode parses "substring" or "fuzzy". The empty string means
// Substring.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "substring":
		return Substring, nil
	case "fuzzy":
		return Fuzzy, nil
	default:
		return Substring, fmt.Errorf("view: unknown match mode %q (want substring or fuzzy)", name)
	}
}

// Project returns the tasks of list whose text contains query, ignoring
// case, in canonical order. An empty query returns every task.
func Project(list task.List, query string) []Row {
	rows := make([]Row, 0, len(list))
	if query == "" {
		for index, entry := range list {
			rows = append(rows, Row{Task: entry, Index: index})
		}
		return rows
	}

	needle := []rune(strings.ToLower(query))
	for index, entry := range list {
		position := runeIndex([]rune(strings.ToLower(entry.Text)), needle)
		if position < 0 {
			continue
		}
		positions := make([]int, len(needle))
		for offset := range positions {
			positions[offset] = position + offset
		}
		rows = append(rows, Row{Task: entry, Index: index, Positions: positions})
	}
	return rows
}

// runeIndex returns the rune offset of the first occurrence of needle
// in haystack, or -1. Working in runes keeps positions aligned with the
// original text: lowercasing maps each rune to exactly one rune.
func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		matched := true
		for offset, character := range needle {
			if haystack[start+offset] != character {
				matched = false
				break
			}
		}
		if matched {
			return start
		}
	}
	return -1
}

// Projector projects lists in a fixed match mode. The zero value
// projects in Substring mode. A Projector reuses scratch memory between
// calls and is not safe for concurrent use.
type Projector struct {
	mode Mode
	slab *util.Slab
}

// NewProjector returns a Projector for mode.
func NewProjector(mode Mode) *Projector {
	return &Projector{mode: mode}
}

// Mode returns the projector's match mode.
func (projector *Projector) Mode() Mode {
	return projector.mode
}

// Project filters list by query in the projector's mode.
func (projector *Projector) Project(list task.List, query string) []Row {
	if projector.mode != Fuzzy || query == "" {
		return Project(list, query)
	}

	if projector.slab == nil {
		projector.slab = tui.NewSlab()
	}
	pattern := []rune(query)
	rows := make([]Row, 0, len(list))
	for index, entry := range list {
		result := tui.FuzzyMatch(entry.Text, pattern, projector.slab)
		if result.Score <= 0 {
			continue
		}
		rows = append(rows, Row{Task: entry, Index: index, Positions: result.Positions})
	}
	return rows
}

// Tasks returns the tasks of rows, in order.
func Tasks(rows []Row) task.List {
	list := make(task.List, len(rows))
	for index, row := range rows {
		list[index] = row.Task
	}
	return list
}

// Locate returns the position in rows of the task with the given ID,
// or -1.
func Locate(rows []Row, id task.ID) int {
	for position, row := range rows {
		if row.Task.ID == id {
			return position
		}
	}
	return -1
}
