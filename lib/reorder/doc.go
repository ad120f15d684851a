// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package reorder turns drag gestures into list permutations.
//
// A [Controller] runs two gesture state machines over a [Target] (in
// practice a *taskstore.Store):
//
// Pointer drag: DragStart(i) picks up the task at i. Each DragOver(j)
// with j different from the task's current position moves it there
// immediately, so the list reorders live under the pointer. DragEnd
// drops it without further change.
//
// Touch drag: TouchStart(i, y) anchors the gesture at vertical
// coordinate y. TouchMove(y) moves the task one position up or down
// each time the finger travels more than the threshold from the
// anchor, then re-anchors at y. TouchEnd releases it.
//
// Both machines track the dragged task by ID rather than position and
// re-resolve its index before every step, so a list change between
// events (a deletion from another input, say) cannot make a gesture
// move the wrong task. Every step is one remove-then-insert, which
// keeps the list a permutation of itself throughout the gesture.
//
// A gesture ends with Abort, with its own end event, or implicitly when
// no event has arrived for the configured idle timeout. The timeout is
// checked against an injectable clock before each event and by
// [Controller.Expire], which the UI calls from a periodic tick. Abort
// keeps the steps already applied: there is no undo.
package reorder
