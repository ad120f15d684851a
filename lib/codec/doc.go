// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec encodes task lists as CBOR for compact backups.
//
// JSON stays the format of live storage and of the default export.
// CBOR encoding is deterministic, so exporting the same list twice
// gives identical bytes and two backups can be compared with cmp(1).
// Task fields use integer map keys (see the cbor struct tags on
// task.Task), which keeps a large list well under its JSON size before
// any compression.
package codec
