// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/notepad/lib/clock"
	"github.com/bureau-foundation/notepad/lib/task"
)

// DefaultWriteTimeout bounds a single persistence write.
const DefaultWriteTimeout = 5 * time.Second

// Config holds the dependencies of a Store. Persister is required.
type Config struct {
	// Persister reads and writes the whole list.
	Persister Persister

	// Logger receives load warnings and write failures. Nil discards
	// output.
	Logger *slog.Logger

	// Clock stamps successful writes. Nil uses the real clock.
	Clock clock.Clock

	// NewID generates IDs for added tasks and for stored entries that
	// lack one. Nil uses task.NewID.
	NewID func() task.ID

	// WriteTimeout bounds each Save call. Zero means
	// DefaultWriteTimeout.
	WriteTimeout time.Duration
}

// Status describes the persistence state of a Store.
type Status struct {
	// LastWriteError is the error from the most recent write attempt,
	// or nil if it succeeded.
	LastWriteError error

	// LastWriteAt is when the list was last written successfully. Zero
	// if no write has succeeded since Load.
	LastWriteAt time.Time

	// Dirty is true when the in-memory list has changes that are not
	// in storage.
	Dirty bool
}

// Healthy reports whether storage holds the current list.
func (status Status) Healthy() bool {
	return status.LastWriteError == nil && !status.Dirty
}

// Store is the single source of truth for the task list.
type Store struct {
	persister    Persister
	logger       *slog.Logger
	clock        clock.Clock
	newID        func() task.ID
	writeTimeout time.Duration

	list   task.List
	status Status
}

// New creates a Store with an empty list. Call Load to read persisted
// state.
func New(config Config) (*Store, error) {
	if config.Persister == nil {
		return nil, errors.New("taskstore: Persister is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	newID := config.NewID
	if newID == nil {
		newID = task.NewID
	}
	writeTimeout := config.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	return &Store{
		persister:    config.Persister,
		logger:       logger,
		clock:        clock.OrReal(config.Clock),
		newID:        newID,
		writeTimeout: writeTimeout,
		list:         task.List{},
	}, nil
}

// Load replaces the in-memory list with the persisted one and returns
// it. Load never fails: missing state yields an empty list, and
// unreadable or corrupt state is logged and treated as missing. The
// corrupt value stays in storage until the next mutation overwrites it.
// A readable list that needed repair, such as legacy entries without
// IDs, is written back at once so its IDs stay stable.
func (store *Store) Load() task.List {
	ctx, cancel := context.WithTimeout(context.Background(), store.writeTimeout)
	defer cancel()

	store.status = Status{}
	list, found, err := store.persister.Load(ctx)
	switch {
	case err != nil:
		store.logger.Warn("stored task list is unreadable, starting empty", "error", err)
		store.list = task.List{}
		return store.list
	case !found:
		store.logger.Debug("no stored task list, starting empty")
		store.list = task.List{}
		return store.list
	}

	list, repaired := task.Normalize(list, store.newID)
	store.list = list
	if repaired > 0 {
		store.logger.Warn("repaired stored task list",
			"entries", repaired,
			"tasks", len(list),
		)
		store.status.Dirty = true
		store.persist("repair")
	}
	store.logger.Debug("task list loaded", "tasks", len(list))
	return store.list
}

// Reload re-reads the persisted list after another process changed it,
// and reports whether the in-memory list changed. Unlike Load it keeps
// the current list when storage is unreadable or absent, and it never
// discards unsaved changes: a dirty store ignores the external value
// and overwrites it on the next successful write.
func (store *Store) Reload() bool {
	if store.status.Dirty {
		store.logger.Warn("task list changed in storage, keeping unsaved local changes")
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), store.writeTimeout)
	defer cancel()

	list, found, err := store.persister.Load(ctx)
	if err != nil {
		store.logger.Warn("reloading task list failed", "error", err)
		return false
	}
	if !found {
		return false
	}

	list, repaired := task.Normalize(list, store.newID)
	if list.Equal(store.list) {
		return false
	}
	store.list = list
	store.logger.Info("task list reloaded", "tasks", len(list))
	if repaired > 0 {
		// Without the write, every reload would assign fresh IDs.
		store.status.Dirty = true
		store.persist("repair")
	}
	return true
}

// Tasks returns the current list. The list must not be modified; it
// is replaced, never edited, by later mutations, so a returned list
// remains a valid snapshot.
func (store *Store) Tasks() task.List {
	return store.list
}

// Len returns the number of tasks.
func (store *Store) Len() int {
	return len(store.list)
}

// At returns the task at index.
func (store *Store) At(index int) (task.Task, bool) {
	return store.list.At(index)
}

// IndexOf returns the current position of the task with the given ID,
// or -1.
func (store *Store) IndexOf(id task.ID) int {
	return store.list.IndexOf(id)
}

// Status returns the persistence status.
func (store *Store) Status() Status {
	return store.status
}

// Apply applies op to the list and persists the result if the list
// changed. It returns the resulting list and the op's error, if any.
// Write failures are not returned; see Status.
func (store *Store) Apply(op task.Op) (task.List, error) {
	if add, ok := op.(task.Add); ok && add.NewID == nil {
		add.NewID = store.newID
		op = add
	}
	next, changed, err := op.Apply(store.list)
	if err != nil {
		store.logger.Debug("operation rejected", "operation", op.Name(), "error", err)
		return store.list, err
	}
	if !changed {
		return store.list, nil
	}

	store.list = next
	store.status.Dirty = true
	store.persist(op.Name())
	return store.list, nil
}

// Add appends a task with the trimmed text. Blank text is ignored.
func (store *Store) Add(text string) task.List {
	list, _ := store.Apply(task.Add{Text: text})
	return list
}

// Toggle flips the done flag of the task at index. Out-of-range
// indices are ignored.
func (store *Store) Toggle(index int) task.List {
	list, _ := store.Apply(task.Toggle{Index: index})
	return list
}

// Remove deletes the task at index. Out-of-range indices are ignored.
func (store *Store) Remove(index int) task.List {
	list, _ := store.Apply(task.Remove{Index: index})
	return list
}

// Clear removes every task. Callers are responsible for confirming
// with the user first.
func (store *Store) Clear() task.List {
	list, _ := store.Apply(task.Clear{})
	return list
}

// Reorder moves the task at from to position to. It is a no-op when
// either position is out of range or they are equal.
func (store *Store) Reorder(from, to int) task.List {
	list, _ := store.Apply(task.Move{From: from, To: to})
	return list
}

// ToggleID flips the done flag of the task with the given ID.
func (store *Store) ToggleID(id task.ID) (task.List, error) {
	index, err := task.Resolve(store.list, id)
	if err != nil {
		return store.list, err
	}
	return store.Apply(task.Toggle{Index: index})
}

// RemoveID deletes the task with the given ID.
func (store *Store) RemoveID(id task.ID) (task.List, error) {
	index, err := task.Resolve(store.list, id)
	if err != nil {
		return store.list, err
	}
	return store.Apply(task.Remove{Index: index})
}

// MoveID moves the task with the given ID to position to.
func (store *Store) MoveID(id task.ID, to int) (task.List, error) {
	index, err := task.Resolve(store.list, id)
	if err != nil {
		return store.list, err
	}
	return store.Apply(task.Move{From: index, To: to})
}

// Replace swaps in an entirely new list, as an import does. The list
// is normalized first.
func (store *Store) Replace(list task.List) (task.List, error) {
	return store.Apply(replaceOp{list: list, newID: store.newID})
}

// Flush retries a pending write. It returns nil when storage already
// holds the current list.
func (store *Store) Flush() error {
	if !store.status.Dirty {
		return nil
	}
	store.persist("flush")
	return store.status.LastWriteError
}

// persist writes the current list and records the outcome in status.
func (store *Store) persist(operation string) {
	ctx, cancel := context.WithTimeout(context.Background(), store.writeTimeout)
	defer cancel()

	err := store.persister.Save(ctx, store.list)
	if err != nil {
		store.status.LastWriteError = fmt.Errorf("saving task list: %w", err)
		store.logger.Error("persisting task list failed",
			"operation", operation,
			"tasks", len(store.list),
			"error", err,
		)
		return
	}

	if store.status.LastWriteError != nil {
		store.logger.Info("persisting task list recovered", "operation", operation)
	}
	store.status = Status{LastWriteAt: store.clock.Now()}
}

// replaceOp substitutes a whole list.
type replaceOp struct {
	list  task.List
	newID func() task.ID
}

func (op replaceOp) Name() string { return "replace" }

func (op replaceOp) Apply(list task.List) (task.List, bool, error) {
	next, _ := task.Normalize(op.list.Clone(), op.newID)
	if next.Equal(list) {
		return list, false, nil
	}
	return next, true, nil
}
