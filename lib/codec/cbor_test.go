// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/notepad/lib/task"
)

func sampleList() task.List {
	return task.List{
		{ID: "5f0c6f9e-0000-4000-8000-000000000001", Text: "buy milk", Done: true},
		{ID: "5f0c6f9e-0000-4000-8000-000000000002", Text: "walk dog"},
	}
}

func TestEncodeDecodeList(t *testing.T) {
	data, err := EncodeList(sampleList())
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	decoded, err := DecodeList(data)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if !decoded.Equal(sampleList()) {
		t.Errorf("DecodeList = %+v, want %+v", decoded, sampleList())
	}
}

func TestEncodeListIsDeterministic(t *testing.T) {
	first, err := EncodeList(sampleList())
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	for range 10 {
		again, err := EncodeList(sampleList())
		if err != nil {
			t.Fatalf("EncodeList: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("EncodeList output differs between calls")
		}
	}
}

func TestEncodeEmptyList(t *testing.T) {
	for _, list := range []task.List{nil, {}} {
		data, err := EncodeList(list)
		if err != nil {
			t.Fatalf("EncodeList(%v): %v", list, err)
		}
		// An empty array, never null.
		if !bytes.Equal(data, []byte{0x80}) {
			t.Errorf("EncodeList(%v) = %x, want 80", list, data)
		}
	}
}

func TestDiagnoseListShowsIntegerKeys(t *testing.T) {
	notation, err := DiagnoseList(task.List{{ID: "x", Text: "y"}})
	if err != nil {
		t.Fatalf("DiagnoseList: %v", err)
	}
	for _, want := range []string{`1: "x"`, `2: "y"`, `3: false`} {
		if !strings.Contains(notation, want) {
			t.Errorf("notation %s does not contain %s", notation, want)
		}
	}
}

func TestDecodeListErrors(t *testing.T) {
	valid, err := EncodeList(sampleList())
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "empty input"},
		{"not an array", []byte{0xA0}, "want an array"},
		{"garbage", []byte{0x9F, 0xFE, 0xFD}, "decoding task list"},
		{"truncated", valid[:len(valid)-3], "decoding task list"},
		{"trailing data", append(append([]byte{}, valid...), 0x00), "decoding task list"},
		// [{1: "a", 1: "b"}]
		{"duplicate key", []byte{0x81, 0xA2, 0x01, 0x61, 'a', 0x01, 0x61, 'b'}, "duplicate"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			list, err := DecodeList(test.data)
			if err == nil {
				t.Fatalf("DecodeList accepted the input, got %+v", list)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %v, want it to contain %q", err, test.want)
			}
		})
	}
}

func BenchmarkEncodeList(b *testing.B) {
	list := sampleList()
	b.ReportAllocs()
	for b.Loop() {
		EncodeList(list)
	}
}
