// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/notepad/lib/codec"
	"github.com/bureau-foundation/notepad/lib/task"
)

// Magic opens every enveloped backup.
const Magic = "NPAD"

// headerSize is the envelope header length in bytes.
const headerSize = len(Magic) + 1 + 1 + 4

// MaxPayloadSize bounds the uncompressed payload a backup may declare.
// A notepad list is a few kilobytes; the cap keeps a corrupt or hostile
// header from triggering a huge allocation.
const MaxPayloadSize = 64 << 20

// Options selects the export encoding.
type Options struct {
	Format      Format
	Compression Compression
}

// Info describes a decoded backup.
type Info struct {
	// Enveloped is false for plain JSON input.
	Enveloped   bool
	Format      Format
	Compression Compression

	// PayloadSize is the uncompressed payload length.
	PayloadSize int
}

// Export encodes list. Plain JSON (FormatJSON, CompressionNone) is
// written as an indented array without an envelope; every other option
// produces an envelope. The returned Info reports the compression
// actually used.
func Export(list task.List, options Options) ([]byte, Info, error) {
	if list == nil {
		list = task.List{}
	}

	if options.Format == FormatJSON && options.Compression == CompressionNone {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, Info{}, fmt.Errorf("backup: encoding json: %w", err)
		}
		data = append(data, '\n')
		return data, Info{Format: FormatJSON, PayloadSize: len(data)}, nil
	}

	var payload []byte
	var err error
	switch options.Format {
	case FormatJSON:
		payload, err = task.EncodeJSON(list)
	case FormatCBOR:
		payload, err = codec.EncodeList(list)
	default:
		err = fmt.Errorf("unsupported format %s", options.Format)
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("backup: encoding %s: %w", options.Format, err)
	}
	if len(payload) > MaxPayloadSize {
		return nil, Info{}, fmt.Errorf("backup: payload of %d bytes exceeds the %d byte limit", len(payload), MaxPayloadSize)
	}

	compression := options.Compression
	body, err := compress(payload, compression)
	if errors.Is(err, errIncompressible) {
		compression = CompressionNone
		body = payload
	} else if err != nil {
		return nil, Info{}, err
	}

	output := make([]byte, headerSize, headerSize+len(body))
	copy(output, Magic)
	output[4] = byte(options.Format)
	output[5] = byte(compression)
	binary.BigEndian.PutUint32(output[6:headerSize], uint32(len(payload)))
	output = append(output, body...)

	return output, Info{
		Enveloped:   true,
		Format:      options.Format,
		Compression: compression,
		PayloadSize: len(payload),
	}, nil
}

// Decode reads a backup produced by Export, or any JSON/JSONC task
// array. The result is normalized: text is trimmed, empty entries are
// dropped, and missing or duplicate IDs are replaced.
func Decode(data []byte) (task.List, Info, error) {
	if !bytes.HasPrefix(data, []byte(Magic)) {
		list, err := ParseImport(data)
		if err != nil {
			return nil, Info{}, err
		}
		return list, Info{Format: FormatJSON, PayloadSize: len(data)}, nil
	}

	if len(data) < headerSize {
		return nil, Info{}, fmt.Errorf("backup: truncated header (%d bytes)", len(data))
	}
	info := Info{
		Enveloped:   true,
		Format:      Format(data[4]),
		Compression: Compression(data[5]),
	}
	size := binary.BigEndian.Uint32(data[6:headerSize])
	if size > MaxPayloadSize {
		return nil, info, fmt.Errorf("backup: declared payload of %d bytes exceeds the %d byte limit", size, MaxPayloadSize)
	}
	info.PayloadSize = int(size)

	payload, err := decompress(data[headerSize:], info.Compression, info.PayloadSize)
	if err != nil {
		return nil, info, err
	}

	var list task.List
	switch info.Format {
	case FormatJSON:
		list, err = task.DecodeJSON(payload)
	case FormatCBOR:
		list, err = codec.DecodeList(payload)
	default:
		err = fmt.Errorf("unsupported format %s", info.Format)
	}
	if err != nil {
		return nil, info, fmt.Errorf("backup: decoding %s payload: %w", info.Format, err)
	}

	list, _ = task.Normalize(list, nil)
	return list, info, nil
}

// ParseImport parses a JSON task array, allowing comments and trailing
// commas. Entries may use "done" or the legacy "check" field. The
// result is normalized as in Decode.
func ParseImport(data []byte) (task.List, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("backup: input is empty")
	}
	list, err := task.DecodeJSON(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}
	list, _ = task.Normalize(list, nil)
	return list, nil
}
