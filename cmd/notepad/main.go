// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// notepad is an ordered personal task list. With no command it opens an
// interactive terminal UI: type to add tasks, click a checkbox to mark
// one done, drag rows to reorder them, and press / to search. The same
// list is scriptable through subcommands (add, list, toggle, rm, move,
// clear, export, import).
//
// The list is persisted after every change to a key-value store: a
// SQLite database by default, or a directory of JSON files. See
// lib/config for the configuration file format.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/notepad/cmd/notepad/cli"
	"github.com/bureau-foundation/notepad/lib/version"
)

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if !cli.Silent(err) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}

// run parses the global flags and dispatches the rest of args to the
// command tree.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := newApp(stdin, stdout, stderr)

	// Handle --version before flag parsing to match the version
	// subcommand, which prints the same text.
	if len(args) > 0 && args[0] == "--version" {
		fmt.Fprintf(stdout, "notepad %s\n", version.Full())
		return nil
	}

	flagSet := app.globalFlags()
	flagSet.SetOutput(io.Discard)
	// Everything after the first positional argument belongs to the
	// subcommand.
	flagSet.SetInterspersed(false)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			app.printHelp()
			return nil
		}
		return cli.Validation("%s\n\nRun 'notepad --help' for usage.", err)
	}

	level, err := parseLogLevel(app.logLevel)
	if err != nil {
		return err
	}
	app.level = level

	return app.rootCommand().Execute(flagSet.Args())
}

// parseLogLevel accepts the slog level names (debug, info, warn, error).
func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, cli.Validation("invalid --log-level %q", name).
			WithHint("Use one of debug, info, warn, error.")
	}
	return level, nil
}

// openFileLogHandler opens path for a JSON log at debug level,
// truncating any previous log.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler sends each record to every handler enabled for its
// level. In the TUI it joins the status bar handler with the
// --log-output file.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(handlers, func(handler slog.Handler) bool {
		return handler.Enabled(ctx, level)
	})
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		// Handlers may retain the record, and attrs added by one must
		// not leak into the next.
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return handlers.derive(func(handler slog.Handler) slog.Handler { return handler.WithAttrs(attrs) })
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	return handlers.derive(func(handler slog.Handler) slog.Handler { return handler.WithGroup(name) })
}

func (handlers fanoutHandler) derive(apply func(slog.Handler) slog.Handler) fanoutHandler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = apply(handler)
	}
	return derived
}
