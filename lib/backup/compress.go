// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// errIncompressible reports that compression would not shrink the
// payload. Export stores the payload uncompressed instead.
var errIncompressible = errors.New("backup: payload is incompressible")

// coder pairs the two directions of one Compression. decode gets the
// payload size from the envelope header and must return exactly that
// many bytes.
type coder struct {
	encode func(payload []byte) ([]byte, error)
	decode func(body []byte, size int) ([]byte, error)
}

var coders = map[Compression]coder{
	CompressionNone: {
		encode: func(payload []byte) ([]byte, error) { return payload, nil },
		decode: func(body []byte, size int) ([]byte, error) { return body, nil },
	},
	CompressionLZ4:  {encode: lz4Encode, decode: lz4Decode},
	CompressionZstd: {encode: zstdEncode, decode: zstdDecode},
}

func compress(payload []byte, compression Compression) ([]byte, error) {
	coder, ok := coders[compression]
	if !ok {
		return nil, fmt.Errorf("backup: unsupported compression %s", compression)
	}
	body, err := coder.encode(payload)
	if err != nil {
		return nil, err
	}
	if compression != CompressionNone && len(body) >= len(payload) {
		return nil, errIncompressible
	}
	return body, nil
}

func decompress(body []byte, compression Compression, size int) ([]byte, error) {
	coder, ok := coders[compression]
	if !ok {
		return nil, fmt.Errorf("backup: unsupported compression %s", compression)
	}
	payload, err := coder.decode(body, size)
	if err != nil {
		return nil, fmt.Errorf("backup: %s decompress: %w", compression, err)
	}
	if len(payload) != size {
		return nil, fmt.Errorf("backup: %s payload is %d bytes, header says %d", compression, len(payload), size)
	}
	return payload, nil
}

// lz4 uses the raw block format: the envelope already records the
// uncompressed size, so the frame format's headers would be redundant.
func lz4Encode(payload []byte) ([]byte, error) {
	block := make([]byte, lz4.CompressBlockBound(len(payload)))
	written, err := lz4.CompressBlock(payload, block, nil)
	if err != nil {
		return nil, fmt.Errorf("backup: lz4 compress: %w", err)
	}
	// Zero means the block did not compress.
	if written == 0 {
		return nil, errIncompressible
	}
	return block[:written], nil
}

func lz4Decode(body []byte, size int) ([]byte, error) {
	payload := make([]byte, size)
	read, err := lz4.UncompressBlock(body, payload)
	if err != nil {
		return nil, err
	}
	return payload[:read], nil
}

// The zstd coders are safe for concurrent use. They are built on first
// use so that commands which never touch a backup skip the setup.
var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxPayloadSize))
	})
)

func zstdEncode(payload []byte) ([]byte, error) {
	encoder, err := zstdEncoder()
	if err != nil {
		return nil, fmt.Errorf("backup: zstd encoder: %w", err)
	}
	return encoder.EncodeAll(payload, nil), nil
}

func zstdDecode(body []byte, size int) ([]byte, error) {
	decoder, err := zstdDecoder()
	if err != nil {
		return nil, err
	}
	return decoder.DecodeAll(body, make([]byte, 0, size))
}
