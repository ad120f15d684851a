// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package view derives the visible subsequence of a task list from a
// search query.
//
// [Project] keeps the tasks whose text contains the query,
// case-insensitively, in canonical order. Each resulting [Row] carries
// the task's index in the unfiltered list, so an action taken on a
// visible row (toggle, remove, drag) addresses the right canonical
// position, and the task's ID for addressing it across mutations.
// Projection never modifies the list.
//
// A [Projector] adds an optional fuzzy mode that matches query
// characters in order but not necessarily adjacent. Fuzzy mode still
// preserves canonical order: the list is the user's arrangement, and
// reordering by score would make drag targets jump.
package view
