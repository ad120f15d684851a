// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"fmt"
	"testing"
)

func sequentialIDs() func() ID {
	next := 0
	return func() ID {
		next++
		return ID(fmt.Sprintf("fresh-%d", next))
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for range 100 {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestNormalizeLeavesValidListAlone(t *testing.T) {
	list := testList("a", "b")
	result, repaired := Normalize(list, sequentialIDs())
	if repaired != 0 {
		t.Errorf("repaired = %d, want 0", repaired)
	}
	if !result.Equal(list) {
		t.Errorf("result = %+v", result)
	}
}

func TestNormalizeRepairs(t *testing.T) {
	list := List{
		{ID: "a", Text: "  keep  "},
		{ID: "", Text: "no id"},
		{ID: "a", Text: "duplicate"},
		{ID: "b", Text: "   "},
		{ID: "c", Text: "fine", Done: true},
	}

	result, repaired := Normalize(list, sequentialIDs())
	want := List{
		{ID: "a", Text: "keep"},
		{ID: "fresh-1", Text: "no id"},
		{ID: "fresh-2", Text: "duplicate"},
		{ID: "c", Text: "fine", Done: true},
	}
	if !result.Equal(want) {
		t.Errorf("result = %+v, want %+v", result, want)
	}
	if repaired != 4 {
		t.Errorf("repaired = %d, want 4", repaired)
	}
}

func TestNormalizeNilReturnsEmptyList(t *testing.T) {
	result, repaired := Normalize(nil, nil)
	if result == nil || repaired != 0 {
		t.Errorf("Normalize(nil) = %#v, %d", result, repaired)
	}
}

func TestDoneCount(t *testing.T) {
	list := testList("a", "b", "c")
	list[0].Done = true
	list[2].Done = true
	if got := list.DoneCount(); got != 2 {
		t.Errorf("DoneCount = %d, want 2", got)
	}
}

func TestAt(t *testing.T) {
	list := testList("a")
	if entry, ok := list.At(0); !ok || entry.Text != "a" {
		t.Errorf("At(0) = %+v, %v", entry, ok)
	}
	if _, ok := list.At(1); ok {
		t.Error("At(1) reported in range")
	}
	if _, ok := list.At(-1); ok {
		t.Error("At(-1) reported in range")
	}
}
