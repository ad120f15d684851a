// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ID is the opaque, stable identifier of a task. IDs are assigned when a
// task is created and never change afterwards.
type ID string

// NewID returns a fresh random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Task is a single entry in the list.
type Task struct {
	ID   ID     `json:"id"   cbor:"1,keyasint"`
	Text string `json:"text" cbor:"2,keyasint"`
	Done bool   `json:"done" cbor:"3,keyasint"`
}

// Sentinel errors returned by the list operations.
var (
	// ErrEmptyText is returned when a task's text is empty after
	// trimming surrounding whitespace.
	ErrEmptyText = errors.New("task: text is empty")

	// ErrOutOfRange is returned when a position does not address an
	// element of the list.
	ErrOutOfRange = errors.New("task: index out of range")

	// ErrNotFound is returned when no task in the list has the
	// requested ID.
	ErrNotFound = errors.New("task: not found")
)

// NormalizeText trims surrounding whitespace from text. Tasks always
// store normalized text.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// List is the canonical ordered sequence of tasks. The zero value is an
// empty list.
type List []Task

// Len returns the number of tasks in the list.
func (list List) Len() int {
	return len(list)
}

// At returns the task at index and whether index is in range.
func (list List) At(index int) (Task, bool) {
	if index < 0 || index >= len(list) {
		return Task{}, false
	}
	return list[index], true
}

// IndexOf returns the position of the task with the given ID, or -1 if
// the list has no such task.
func (list List) IndexOf(id ID) int {
	for index, entry := range list {
		if entry.ID == id {
			return index
		}
	}
	return -1
}

// DoneCount returns the number of completed tasks.
func (list List) DoneCount() int {
	count := 0
	for _, entry := range list {
		if entry.Done {
			count++
		}
	}
	return count
}

// Clone returns a copy of the list that shares no backing array with
// the receiver. Cloning a nil list returns an empty non-nil list so the
// result always encodes as a JSON array.
func (list List) Clone() List {
	clone := make(List, len(list))
	copy(clone, list)
	return clone
}

// Equal reports whether two lists hold the same tasks in the same order.
func (list List) Equal(other List) bool {
	if len(list) != len(other) {
		return false
	}
	for index := range list {
		if list[index] != other[index] {
			return false
		}
	}
	return true
}

// Normalize repairs a list read from outside the process: text is
// trimmed, entries whose text is empty are dropped, and entries with a
// missing or duplicated ID receive a fresh one from newID. It returns
// the repaired list and the number of entries that were changed or
// dropped. A list that needs no repair is returned as-is with a count of
// zero.
func Normalize(list List, newID func() ID) (List, int) {
	if newID == nil {
		newID = NewID
	}

	repaired := 0
	seen := make(map[ID]bool, len(list))
	result := make(List, 0, len(list))
	for _, entry := range list {
		text := NormalizeText(entry.Text)
		if text == "" {
			repaired++
			continue
		}
		if text != entry.Text {
			entry.Text = text
			repaired++
		}
		if entry.ID == "" || seen[entry.ID] {
			entry.ID = newID()
			repaired++
		}
		seen[entry.ID] = true
		result = append(result, entry)
	}

	if repaired == 0 && list != nil {
		return list, 0
	}
	return result, repaired
}
