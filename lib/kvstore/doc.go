// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package kvstore is the notepad's persistence boundary: a minimal
// key-value store where each Put replaces a key's entire value
// atomically.
//
// Three backends implement [Store]:
//
//   - [SQLite] keeps values in a single table of a SQLite database
//     opened through lib/sqlitepool. It is the default.
//   - [File] keeps each key in its own file under a directory and
//     replaces it with a rename, so readers never see a torn write.
//   - [Memory] keeps values in a map. Tests use it, and its
//     [Memory.FailPuts] hook simulates an unwritable disk.
//
// Get reports a missing key with ok=false and a nil error; an error
// means the backend itself failed.
package kvstore
