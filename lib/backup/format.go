// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import "fmt"

// Format identifies the payload encoding. Values are stored in the
// envelope header; changing them breaks existing backups.
type Format uint8

const (
	FormatJSON Format = 0
	FormatCBOR Format = 1
)

func (format Format) String() string {
	switch format {
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(format))
	}
}

// ParseFormat parses "json" or "cbor".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("backup: unknown format %q (want json or cbor)", name)
	}
}

// Compression identifies the payload compression. Values are stored in
// the envelope header; changing them breaks existing backups.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (compression Compression) String() string {
	switch compression {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(compression))
	}
}

// ParseCompression parses "none", "lz4", or "zstd".
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("backup: unknown compression %q (want none, lz4, or zstd)", name)
	}
}
