// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/notepad/cmd/notepad/cli"
	"github.com/bureau-foundation/notepad/lib/config"
	"github.com/bureau-foundation/notepad/lib/kvstore"
	"github.com/bureau-foundation/notepad/lib/reorder"
	"github.com/bureau-foundation/notepad/lib/taskstore"
	"github.com/bureau-foundation/notepad/lib/view"
)

// app holds the global flag values and I/O streams shared by every
// command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logOutput  string
	logLevel   string
	level      slog.Level

	// storage, when set, is used instead of the configured backend
	// and is not closed by the session.
	storage kvstore.Store
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logLevel: "warn",
		level:    slog.LevelWarn,
	}
}

// globalFlags binds the flags accepted before the command name.
func (app *app) globalFlags() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("notepad", pflag.ContinueOnError)
	flagSet.StringVar(&app.configPath, "config", "", "configuration file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.StringVar(&app.logOutput, "log-output", "", "also write JSON log records to this file")
	flagSet.StringVar(&app.logLevel, "log-level", app.logLevel, "minimum level logged to stderr: debug, info, warn, error")
	flagSet.Bool("version", false, "print version information and exit")
	return flagSet
}

func (app *app) printHelp() {
	app.rootCommand().PrintHelp(app.stderr)
	fmt.Fprintf(app.stderr, "\nGlobal flags (before the command):\n%s", app.globalFlags().FlagUsages())
}

// loadConfig reads --config, or NOTEPAD_CONFIG, or the defaults, and
// validates the result.
func (app *app) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	source := "built-in defaults"
	if app.configPath != "" {
		cfg, err = config.LoadFile(app.configPath)
		source = app.configPath
	} else {
		cfg, err = config.Load()
		if path := os.Getenv(config.EnvironmentVariable); path != "" {
			source = path
		}
	}
	if err != nil {
		return nil, cli.Validation("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration (%s):\n%w", source, err)
	}
	return cfg, nil
}

// session is one command's view of the task list: the configuration,
// the opened storage, and the loaded store.
type session struct {
	config    *config.Config
	logger    *slog.Logger
	store     *taskstore.Store
	projector *view.Projector

	backend      kvstore.Store
	closeBackend bool
}

// openSession loads configuration, opens the storage backend, and
// loads the task list.
func (app *app) openSession(logger *slog.Logger) (*session, error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, err
	}

	backend := app.storage
	closeBackend := false
	if backend == nil {
		backend, err = openBackend(cfg, logger)
		if err != nil {
			return nil, cli.Internal("opening %s storage: %w", cfg.Storage.Backend, err).
				WithHint(fmt.Sprintf("Check storage.path in the configuration (currently %q).", cfg.StoragePath()))
		}
		closeBackend = true
	}

	store, err := taskstore.New(taskstore.Config{
		Persister: taskstore.NewKVPersister(backend, cfg.Storage.Key),
		Logger:    logger,
	})
	if err != nil {
		if closeBackend {
			backend.Close()
		}
		return nil, cli.Internal("%w", err)
	}
	list := store.Load()
	logger.Debug("task list loaded",
		"backend", cfg.Storage.Backend,
		"path", cfg.StoragePath(),
		"tasks", len(list),
	)

	mode, err := view.ParseMode(cfg.View.Match)
	if err != nil {
		if closeBackend {
			backend.Close()
		}
		return nil, cli.Validation("%w", err)
	}

	return &session{
		config:       cfg,
		logger:       logger,
		store:        store,
		projector:    view.NewProjector(mode),
		backend:      backend,
		closeBackend: closeBackend,
	}, nil
}

// openBackend opens the storage backend named in the configuration.
func openBackend(cfg *config.Config, logger *slog.Logger) (kvstore.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return kvstore.OpenSQLite(kvstore.SQLiteConfig{
			Path:   cfg.StoragePath(),
			Logger: logger,
		})
	case config.BackendFile:
		return kvstore.OpenFile(cfg.StoragePath(), logger)
	case config.BackendMemory:
		return kvstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Storage.Backend)
	}
}

// newController builds the drag controller from the reorder settings.
func (session *session) newController() *reorder.Controller {
	return reorder.New(session.store, reorder.Config{
		TouchThreshold: session.config.Reorder.TouchThreshold,
		AbortAfter:     session.config.Reorder.AbortAfter,
		Logger:         session.logger,
	})
}

// saved reports a failed write of the last mutation as an error.
func (session *session) saved() error {
	if err := session.store.Status().LastWriteError; err != nil {
		return cli.Internal("%w", err).
			WithHint(fmt.Sprintf("The change was not saved. Check that %s is writable.", session.config.StoragePath()))
	}
	return nil
}

func (session *session) Close() error {
	if !session.closeBackend {
		return nil
	}
	return session.backend.Close()
}

// withSession runs fn against a freshly opened session, logging to
// stderr (and --log-output).
func (app *app) withSession(fn func(*session) error) error {
	logger, closeLog, err := app.logger(cli.NewLogger(app.stderr, app.level).Handler())
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := app.openSession(logger)
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}

// logger wraps handler with the --log-output file handler, if any.
func (app *app) logger(handler slog.Handler) (*slog.Logger, func(), error) {
	if app.logOutput == "" {
		return slog.New(handler), func() {}, nil
	}
	fileHandler, closeFile, err := openFileLogHandler(app.logOutput)
	if err != nil {
		return nil, nil, cli.Validation("cannot open log file %s: %w", app.logOutput, err)
	}
	return slog.New(fanoutHandler{handler, fileHandler}), closeFile, nil
}
