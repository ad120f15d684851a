// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusRecordMsg carries a log record into the model for display in
// the status bar.
type statusRecordMsg struct {
	// Text is "message (key=value, ...)".
	Text string

	// Level selects warning or error styling.
	Level slog.Level
}

// statusFadeMsg clears a status bar record once it has been shown for
// statusFadeDelay. Generation matches the record it was scheduled for,
// so a newer record is not cleared early.
type statusFadeMsg struct {
	generation int
}

// statusFadeDelay is how long a log record stays in the status bar.
const statusFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that delivers records to a running
// bubbletea program, where they appear briefly in the status bar.
// Records below the handler's level are dropped, as are records that
// arrive before SetProgram is called.
//
// Handlers derived with WithAttrs and WithGroup share the program
// pointer of their parent.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []string
	prefix  string
}

// NewTUILogHandler creates a handler for records at or above level.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives records. Safe to call from
// any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether records at level are delivered.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	// Records logged from inside Update (a failed save, for one) would
	// deadlock a synchronous Send, since the event loop is the caller.
	go program.Send(handler.format(record))
	return nil
}

func (handler *TUILogHandler) format(record slog.Record) statusRecordMsg {
	parts := slices.Clone(handler.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, handler.prefix, attr)
		return true
	})

	text := record.Message
	if len(parts) > 0 {
		text += " (" + strings.Join(parts, ", ") + ")"
	}
	return statusRecordMsg{Text: text, Level: record.Level}
}

// WithAttrs returns a handler that includes attrs in every record.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	parts := slices.Clone(handler.attrs)
	for _, attr := range attrs {
		parts = appendAttr(parts, handler.prefix, attr)
	}
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   parts,
		prefix:  handler.prefix,
	}
}

// WithGroup returns a handler that qualifies later attribute keys
// with name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   slices.Clone(handler.attrs),
		prefix:  handler.prefix + name + ".",
	}
}

// appendAttr formats attr as key=value, flattening nested groups.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, groupPrefix, member)
		}
		return parts
	}
	return append(parts, prefix+attr.Key+"="+attr.Value.String())
}
