// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package backup exports task lists to portable files and reads them
// back.
//
// The plain export (JSON, no compression) is the same pretty-printed
// array the store persists, and can be edited by hand. Every other
// combination is wrapped in a small envelope:
//
//	offset  size  field
//	0       4     magic "NPAD"
//	4       1     payload format (0 json, 1 cbor)
//	5       1     compression (0 none, 1 lz4, 2 zstd)
//	6       4     uncompressed payload length, big-endian
//	10      ...   payload
//
// Compression that does not shrink the payload is skipped and the
// envelope records "none", so the header always describes the bytes
// that follow.
//
// [Decode] accepts both shapes. Anything without the magic prefix is
// parsed by [ParseImport], which tolerates comments and trailing commas
// (JSONC) and the "check" completion field written by the browser
// version of the app.
package backup
