// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/notepad/cmd/notepad/cli"
	"github.com/bureau-foundation/notepad/lib/taskui"
)

func (app *app) tuiCommand() *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Summary: "Open the interactive task list (the default)",
		Description: `Open the interactive task list.

Type into the input line and press Enter to add a task. Click a
checkbox (or press space) to mark a task done, click the ✕ (or press d)
to delete it, and drag a row with the mouse (or press Shift+↑/↓) to
move it. Press / to search; the list keeps its order while filtered.

Background warnings, such as a failed save, appear in the status bar
instead of on stderr. Use the global --log-output flag to keep a full
JSON log.`,
		Usage: "notepad [tui]",
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return app.runTUI()
		},
	}
}

// storageWatcher is implemented by backends that can report changes
// made by other processes.
type storageWatcher interface {
	Watch(key string, changed func()) (func(), error)
}

// runTUI runs the bubbletea program over the configured store. Log
// records at WARN and above go to the status bar, since writing to
// stderr would corrupt the alt-screen display.
func (app *app) runTUI() error {
	tuiHandler := taskui.NewTUILogHandler(slog.LevelWarn)
	logger, closeLog, err := app.logger(tuiHandler)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := app.openSession(logger)
	if err != nil {
		return err
	}
	defer session.Close()

	dragMode, err := taskui.ParseDragMode(session.config.Reorder.DragMode)
	if err != nil {
		return cli.Validation("%w", err)
	}

	model := taskui.NewModel(taskui.Options{
		Store:      session.store,
		Controller: session.newController(),
		Projector:  session.projector,
		DragMode:   dragMode,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	// The file backend can see writes from other notepad processes,
	// such as "notepad add" in another terminal.
	if watcher, ok := session.backend.(storageWatcher); ok {
		stopWatching, err := watcher.Watch(session.config.Storage.Key, func() {
			program.Send(taskui.StorageChangedMsg{})
		})
		if err != nil {
			logger.Warn("not watching storage for outside changes", "error", err)
		} else {
			defer stopWatching()
		}
	}

	tuiHandler.SetProgram(program)
	if _, err := program.Run(); err != nil {
		return cli.Internal("terminal UI: %w", err)
	}

	// The program has exited, so records can no longer reach the
	// status bar.
	tuiHandler.SetProgram(nil)

	if err := session.store.Flush(); err != nil {
		return cli.Internal("%w", err).
			WithHint(fmt.Sprintf("Changes since the last successful save are lost. Check that %s is writable.", session.config.StoragePath()))
	}
	return nil
}
