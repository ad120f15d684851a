// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens SQLite connection pools with consistent
// pragmas.
//
// It wraps zombiezen.com/go/sqlite/sqlitex.Pool. Every connection gets
// WAL journaling, synchronous=FULL, and a five second busy timeout
// before the schema migrations run. Writes go through BEGIN IMMEDIATE
// transactions so that two notepad processes sharing a database queue
// on the lock instead of failing. The notepad's key-value
// storage backend is its only consumer; the pool defaults to a single
// connection because there is a single writer.
package sqlitepool
