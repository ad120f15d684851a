// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import "fmt"

// Op is a single mutation of a list. Apply returns the resulting list
// and whether it differs from the input. When Apply returns an error the
// returned list is the input, unchanged. Apply never modifies its
// argument.
type Op interface {
	Apply(list List) (List, bool, error)

	// Name is a short label for logging ("add", "toggle", ...).
	Name() string
}

// Add appends a new, not-done task with the trimmed text. The task gets
// ID when it is set, otherwise one from NewID, otherwise a random one.
// No ID is generated for rejected text.
type Add struct {
	Text  string
	ID    ID
	NewID func() ID
}

func (op Add) Name() string { return "add" }

func (op Add) Apply(list List) (List, bool, error) {
	text := NormalizeText(op.Text)
	if text == "" {
		return list, false, ErrEmptyText
	}
	id := op.ID
	switch {
	case id != "":
	case op.NewID != nil:
		id = op.NewID()
	default:
		id = NewID()
	}
	next := make(List, len(list), len(list)+1)
	copy(next, list)
	next = append(next, Task{ID: id, Text: text})
	return next, true, nil
}

// Toggle flips the done flag of the task at Index.
type Toggle struct {
	Index int
}

func (op Toggle) Name() string { return "toggle" }

func (op Toggle) Apply(list List) (List, bool, error) {
	if op.Index < 0 || op.Index >= len(list) {
		return list, false, fmt.Errorf("toggle %d of %d: %w", op.Index, len(list), ErrOutOfRange)
	}
	next := list.Clone()
	next[op.Index].Done = !next[op.Index].Done
	return next, true, nil
}

// Remove deletes the task at Index. Later tasks shift down by one.
type Remove struct {
	Index int
}

func (op Remove) Name() string { return "remove" }

func (op Remove) Apply(list List) (List, bool, error) {
	if op.Index < 0 || op.Index >= len(list) {
		return list, false, fmt.Errorf("remove %d of %d: %w", op.Index, len(list), ErrOutOfRange)
	}
	next := make(List, 0, len(list)-1)
	next = append(next, list[:op.Index]...)
	next = append(next, list[op.Index+1:]...)
	return next, true, nil
}

// Clear removes every task.
type Clear struct{}

func (op Clear) Name() string { return "clear" }

func (op Clear) Apply(list List) (List, bool, error) {
	if len(list) == 0 {
		return list, false, nil
	}
	return List{}, true, nil
}

// Move removes the task at From and reinserts it at To in the shortened
// list. The element that was at To ends up adjacent to the moved task,
// on the side it was dragged from. To must address a position of the
// original list; moving a task onto itself is a successful no-op.
type Move struct {
	From int
	To   int
}

func (op Move) Name() string { return "move" }

func (op Move) Apply(list List) (List, bool, error) {
	if op.From < 0 || op.From >= len(list) || op.To < 0 || op.To >= len(list) {
		return list, false, fmt.Errorf("move %d to %d of %d: %w", op.From, op.To, len(list), ErrOutOfRange)
	}
	if op.From == op.To {
		return list, false, nil
	}

	moved := list[op.From]
	next := make(List, 0, len(list))
	next = append(next, list[:op.From]...)
	next = append(next, list[op.From+1:]...)
	next = append(next, Task{})
	copy(next[op.To+1:], next[op.To:])
	next[op.To] = moved
	return next, true, nil
}

// Resolve converts an ID to its current position in list, wrapping
// [ErrNotFound] when the ID is absent.
func Resolve(list List, id ID) (int, error) {
	index := list.IndexOf(id)
	if index < 0 {
		return -1, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return index, nil
}
