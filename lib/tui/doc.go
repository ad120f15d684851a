// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides terminal UI building blocks shared by the
// notepad's interactive views: the color [Theme], a proportional
// scrollbar, ANSI-aware overlay splicing, a yes/no [ConfirmModal], and
// case-insensitive fuzzy matching backed by fzf's scoring algorithm.
//
// Components here are stateless renderers or small value types. The
// bubbletea model in lib/taskui owns layout and event handling and
// composes these pieces.
package tui
