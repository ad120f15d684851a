// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/notepad/lib/clock"
	"github.com/bureau-foundation/notepad/lib/sqlitepool"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
`

const upsert = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET
	value = excluded.value,
	updated_at = excluded.updated_at
`

// SQLiteConfig configures OpenSQLite.
type SQLiteConfig struct {
	// Path is the database file.
	Path string

	// Logger is passed to the pool. Nil discards output.
	Logger *slog.Logger

	// Clock stamps updated_at. Nil uses the real clock.
	Clock clock.Clock
}

// SQLite stores values in the kv table of a SQLite database. Each Put
// is a single upsert statement, so it is atomic.
type SQLite struct {
	pool   *sqlitepool.Pool
	clock  clock.Clock
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) the database at config.Path.
func OpenSQLite(config SQLiteConfig) (*SQLite, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:       config.Path,
		Logger:     logger,
		Migrations: []string{schema},
	})
	if err != nil {
		return nil, fmt.Errorf("kvstore: %w", err)
	}

	return &SQLite{
		pool:   pool,
		clock:  clock.OrReal(config.Clock),
		logger: logger,
	}, nil
}

func (store *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	found := false
	err := store.pool.Read(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT value FROM kv WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value = make([]byte, stmt.ColumnLen(0))
				stmt.ColumnBytes(0, value)
				found = true
				return nil
			},
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("kvstore: get %s: %w", key, err)
	}
	return value, found, nil
}

func (store *SQLite) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	updatedAt := store.clock.Now().UTC().Format(time.RFC3339Nano)
	err := store.pool.Write(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, upsert, &sqlitex.ExecOptions{
			Args: []any{key, value, updatedAt},
		})
	})
	if err != nil {
		return fmt.Errorf("kvstore: put %s: %w", key, err)
	}
	store.logger.Debug("value written", "key", key, "bytes", len(value))
	return nil
}

// UpdatedAt returns when key was last written, or the zero time if it
// has never been written.
func (store *SQLite) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	var updatedAt time.Time
	err := store.pool.Read(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT updated_at FROM kv WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				parsed, err := time.Parse(time.RFC3339Nano, stmt.ColumnText(0))
				if err != nil {
					return err
				}
				updatedAt = parsed
				return nil
			},
		})
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("kvstore: updated_at %s: %w", key, err)
	}
	return updatedAt, nil
}

func (store *SQLite) Close() error {
	return store.pool.Close()
}
