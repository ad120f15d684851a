// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/notepad/lib/task"
)

// MaxTasks caps the number of entries a decoded list may hold, and the
// length of any other array in the input.
const MaxTasks = 1 << 20

var (
	// Core Deterministic Encoding (RFC 8949 §4.2).
	encoder = mustMode(cbor.CoreDetEncOptions().EncMode())

	// Backup files are untrusted input: duplicate map keys are an
	// error, unknown keys are skipped.
	decoder = mustMode(cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxTasks,
	}.DecMode())

	diagnoser = mustMode(cbor.DiagOptions{
		ByteStringText:   true,
		MaxArrayElements: MaxTasks,
	}.DiagMode())
)

func mustMode[Mode any](mode Mode, err error) Mode {
	if err != nil {
		panic("codec: invalid CBOR options: " + err.Error())
	}
	return mode
}

// EncodeList encodes list as a CBOR array of task maps keyed by small
// integers. Equal lists always encode to identical bytes.
func EncodeList(list task.List) ([]byte, error) {
	if list == nil {
		list = task.List{}
	}
	data, err := encoder.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("codec: encoding %d tasks: %w", len(list), err)
	}
	return data, nil
}

// DecodeList decodes a list written by EncodeList. The input must be a
// single CBOR array with nothing after it. Entries are returned as
// stored; callers normalize.
func DecodeList(data []byte) (task.List, error) {
	if len(data) == 0 {
		return nil, errors.New("codec: empty input")
	}
	if major := data[0] >> 5; major != 4 {
		return nil, fmt.Errorf("codec: top-level item has major type %d, want an array", major)
	}
	var list task.List
	if err := decoder.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("codec: decoding task list: %w", err)
	}
	return list, nil
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of a single
// CBOR item.
func Diagnose(data []byte) (string, error) {
	notation, err := diagnoser.Diagnose(data)
	if err != nil {
		return "", fmt.Errorf("codec: %w", err)
	}
	return notation, nil
}

// DiagnoseList encodes list and returns its diagnostic notation, which
// is what "notepad export --diagnose" prints.
func DiagnoseList(list task.List) (string, error) {
	data, err := EncodeList(list)
	if err != nil {
		return "", err
	}
	return Diagnose(data)
}
