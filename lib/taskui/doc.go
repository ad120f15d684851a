// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskui implements the interactive terminal front end for a
// notepad task list. Built on bubbletea, it renders the projection of a
// [taskstore.Store] through a [view.Projector] and forwards keyboard
// edits and mouse gestures into the store and a [reorder.Controller].
//
// The model never holds task values of its own. Every mutation goes
// through the store, after which the visible rows are re-projected and
// the selection is restored by task ID, so a reorder or a filter change
// never moves the cursor to a different task.
//
// Mouse drags drive the reorder controller in one of two modes. In
// pointer mode the dragged task follows the row under the mouse. In
// displacement mode vertical travel is converted to touch coordinates
// and fed to the controller's touch machine, so a task moves one
// position per threshold of travel.
//
// Data flow:
//
//	[keyboard / mouse]
//	        |
//	    [Model] -> reorder.Controller -> taskstore.Store -> kvstore
//	        |                                  |
//	        +<---------- view.Projector <------+
//	        |
//	  [terminal output]
package taskui
