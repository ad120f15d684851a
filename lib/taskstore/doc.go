// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskstore owns the notepad's canonical task list and keeps it
// synchronized with persistent storage.
//
// A [Store] applies [task.Op] values to its in-memory list and, when an
// op changes the list, writes the whole list through a [Persister]
// before returning. The in-memory list is authoritative: a failed write
// does not roll back the mutation. Instead the failure is logged,
// recorded in [Status], and retried on the next change or an explicit
// [Store.Flush]. The UI renders Status as a non-blocking warning.
//
// The positional methods (Add, Toggle, Remove, Clear, Reorder) treat
// invalid input as a silent no-op and return the current list, which
// is what an interactive caller wants. [Store.Apply] exposes the same
// operations with their errors for callers that report them, such as
// the command line.
//
// A Store is not safe for concurrent use. The TUI and each CLI
// invocation own exactly one, driven from a single goroutine.
package taskstore
