// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitepool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// pragmas are applied to every connection before migrations run.
// synchronous=FULL: a write that returned must survive power loss. The
// list is tiny and written once per user action.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=FULL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA temp_store=MEMORY",
}

// Config holds the parameters for opening a pool. Path is required.
type Config struct {
	// Path is the database file or a "file:" URI. Missing parent
	// directories of a plain path are created with mode 0700. ":memory:"
	// is rejected: each pooled connection would see its own database.
	Path string

	// PoolSize is the number of connections. Defaults to 1: the
	// notepad has a single writer and reads its one row at startup.
	PoolSize int

	// Migrations are schema scripts applied in order. The database's
	// user_version records how many have run, so each script runs once
	// per database, and a database written by a newer binary (with a
	// higher user_version) is rejected.
	Migrations []string

	// Logger receives pool lifecycle and migration messages. Nil
	// discards output.
	Logger *slog.Logger
}

// Pool is a fixed-size pool of SQLite connections with durable
// pragmas and a migrated schema. It is safe for concurrent use;
// individual connections are not.
type Pool struct {
	inner  *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// Open creates a pool. Connections are prepared lazily, on first use,
// so a migration failure is reported by the first Read or Write.
func Open(config Config) (*Pool, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("sqlitepool: Path is required")
	}
	if config.Path == ":memory:" {
		return nil, fmt.Errorf("sqlitepool: %q is not supported, use a file in a temporary directory", config.Path)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	poolSize := config.PoolSize
	if poolSize <= 0 {
		poolSize = 1
	}

	if !strings.HasPrefix(config.Path, "file:") {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0o700); err != nil {
			return nil, fmt.Errorf("sqlitepool: creating directory for %s: %w", config.Path, err)
		}
	}

	pool := &Pool{logger: logger, path: config.Path}
	inner, err := sqlitex.NewPool(config.Path, sqlitex.PoolOptions{
		PoolSize: poolSize,
		PrepareConn: func(conn *sqlite.Conn) error {
			return pool.prepare(conn, config.Migrations)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitepool: opening %s: %w", config.Path, err)
	}
	pool.inner = inner

	logger.Debug("sqlite pool opened", "path", config.Path, "pool_size", poolSize)
	return pool, nil
}

// Read runs fn on a pooled connection.
func (p *Pool) Read(ctx context.Context, fn func(*sqlite.Conn) error) error {
	conn, err := p.inner.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlitepool: take: %w", err)
	}
	defer p.inner.Put(conn)
	return fn(conn)
}

// Write runs fn inside a BEGIN IMMEDIATE transaction, which takes the
// database write lock up front. Another process writing the same
// database waits (up to busy_timeout) instead of failing midway. The
// transaction commits if fn returns nil and rolls back otherwise.
func (p *Pool) Write(ctx context.Context, fn func(*sqlite.Conn) error) error {
	return p.Read(ctx, func(conn *sqlite.Conn) (err error) {
		endTransaction, err := sqlitex.ImmediateTransaction(conn)
		if err != nil {
			return fmt.Errorf("sqlitepool: begin: %w", err)
		}
		defer endTransaction(&err)
		return fn(conn)
	})
}

// Path returns the database path the pool was opened with.
func (p *Pool) Path() string {
	return p.path
}

// Close closes all connections, blocking until borrowed connections
// are returned.
func (p *Pool) Close() error {
	if err := p.inner.Close(); err != nil {
		p.logger.Error("sqlite pool close failed", "path", p.path, "error", err)
		return fmt.Errorf("sqlitepool: closing %s: %w", p.path, err)
	}
	p.logger.Debug("sqlite pool closed", "path", p.path)
	return nil
}

// prepare applies the pragmas and any pending migrations to a new
// connection.
func (p *Pool) prepare(conn *sqlite.Conn, migrations []string) (err error) {
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlitepool: %s: %w", pragma, err)
		}
	}
	if len(migrations) == 0 {
		return nil
	}

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("sqlitepool: begin migration: %w", err)
	}
	defer endTransaction(&err)

	current, err := userVersion(conn)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("sqlitepool: %s has schema version %d, newer than the %d this binary knows", p.path, current, len(migrations))
	}
	for index := current; index < len(migrations); index++ {
		if err := sqlitex.ExecuteScript(conn, migrations[index], nil); err != nil {
			return fmt.Errorf("sqlitepool: migration %d: %w", index+1, err)
		}
		p.logger.Info("sqlite schema migrated", "path", p.path, "version", index+1)
	}
	if current < len(migrations) {
		if err := sqlitex.ExecuteTransient(conn, fmt.Sprintf("PRAGMA user_version = %d", len(migrations)), nil); err != nil {
			return fmt.Errorf("sqlitepool: recording schema version: %w", err)
		}
	}
	return nil
}

// userVersion reads PRAGMA user_version.
func userVersion(conn *sqlite.Conn) (int, error) {
	version := 0
	err := sqlitex.ExecuteTransient(conn, "PRAGMA user_version", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			version = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("sqlitepool: reading schema version: %w", err)
	}
	return version, nil
}
