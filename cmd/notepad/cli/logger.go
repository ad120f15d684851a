// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the logger for CLI commands at the given
// level. When stderr is a terminal the output is slog text; when it is
// piped or redirected it is JSON, one record per line.
func NewCommandLogger(level slog.Leveler) *slog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger is NewCommandLogger writing to w. Only an *os.File can be
// a terminal; any other writer gets JSON.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	terminal := false
	if file, ok := w.(*os.File); ok {
		terminal = term.IsTerminal(int(file.Fd()))
	}
	return newLogger(w, terminal, level)
}

func newLogger(w io.Writer, terminal bool, level slog.Leveler) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
