// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package task defines the notepad's data model and the pure operations
// over it.
//
// A [List] is an ordered sequence of [Task] values. Its order is the
// canonical order: the sequence the user arranged, independent of any
// search filter applied when displaying it. Every operation in this
// package is a pure function of its input list. Operations never modify
// the slice they are given; they return a fresh list, or the input
// itself when nothing changed.
//
// Operations are expressed as [Op] values so that a store can apply them
// uniformly and decide whether to persist based on the reported change.
// Invalid operations (empty text, an index past the end of the list, an
// unknown ID) return one of the sentinel errors [ErrEmptyText],
// [ErrOutOfRange], or [ErrNotFound] together with the unchanged list.
//
// Each task carries a stable [ID] assigned at creation. Positions shift
// as tasks are added, removed, and reordered; IDs do not, which lets
// callers address a task across mutations without looking it up by
// value.
package task
