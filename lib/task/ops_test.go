// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"errors"
	"fmt"
	"testing"
)

// testList builds a list whose IDs are "t0", "t1", ... and whose text
// is the given strings.
func testList(texts ...string) List {
	list := make(List, len(texts))
	for index, text := range texts {
		list[index] = Task{ID: ID(fmt.Sprintf("t%d", index)), Text: text}
	}
	return list
}

func texts(list List) []string {
	result := make([]string, len(list))
	for index, entry := range list {
		result[index] = entry.Text
	}
	return result
}

func assertTexts(t *testing.T, list List, want ...string) {
	t.Helper()
	got := texts(list)
	if len(got) != len(want) {
		t.Fatalf("list = %q, want %q", got, want)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("list = %q, want %q", got, want)
		}
	}
}

func apply(t *testing.T, list List, op Op) List {
	t.Helper()
	next, _, err := op.Apply(list)
	if err != nil {
		t.Fatalf("%s: %v", op.Name(), err)
	}
	return next
}

func TestAddAppendsTrimmedTask(t *testing.T) {
	list := testList("first")

	next, changed, err := Add{Text: "  buy milk \t", ID: "new"}.Apply(list)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !changed {
		t.Error("changed = false, want true")
	}
	if next.Len() != 2 {
		t.Fatalf("Len = %d, want 2", next.Len())
	}
	last := next[1]
	if last != (Task{ID: "new", Text: "buy milk"}) {
		t.Errorf("appended task = %+v", last)
	}
	if list.Len() != 1 {
		t.Errorf("input list modified: %+v", list)
	}
}

func TestAddAssignsIDWhenMissing(t *testing.T) {
	next := apply(t, nil, Add{Text: "walk dog"})
	if next[0].ID == "" {
		t.Error("added task has empty ID")
	}
}

func TestAddUsesNewIDOnlyForAcceptedText(t *testing.T) {
	calls := 0
	newID := func() ID {
		calls++
		return "generated"
	}

	if _, _, err := (Add{Text: "  ", NewID: newID}).Apply(nil); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("blank Add error = %v", err)
	}
	if calls != 0 {
		t.Errorf("NewID called %d times for blank text", calls)
	}

	next := apply(t, nil, Add{Text: "walk dog", NewID: newID})
	if next[0].ID != "generated" || calls != 1 {
		t.Errorf("ID = %q after %d calls, want generated after 1", next[0].ID, calls)
	}

	next = apply(t, nil, Add{Text: "walk dog", ID: "given", NewID: newID})
	if next[0].ID != "given" || calls != 1 {
		t.Errorf("explicit ID = %q after %d calls, want given after 1", next[0].ID, calls)
	}
}

func TestAddRejectsBlankText(t *testing.T) {
	list := testList("first")
	for _, text := range []string{"", "   ", "\t\n"} {
		next, changed, err := Add{Text: text}.Apply(list)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("Add(%q) error = %v, want ErrEmptyText", text, err)
		}
		if changed {
			t.Errorf("Add(%q) reported a change", text)
		}
		assertTexts(t, next, "first")
	}
}

func TestToggleFlipsOnlyTarget(t *testing.T) {
	list := testList("a", "b", "c")

	next := apply(t, list, Toggle{Index: 1})
	for index, entry := range next {
		if entry.Done != (index == 1) {
			t.Errorf("task %d done = %v", index, entry.Done)
		}
	}
	if list[1].Done {
		t.Error("input list modified")
	}

	restored := apply(t, next, Toggle{Index: 1})
	if !restored.Equal(list) {
		t.Errorf("toggle twice = %+v, want %+v", restored, list)
	}
}

func TestRemoveShiftsLaterTasks(t *testing.T) {
	list := testList("a", "b", "c")

	next := apply(t, list, Remove{Index: 1})
	assertTexts(t, next, "a", "c")
	assertTexts(t, list, "a", "b", "c")

	next = apply(t, next, Remove{Index: 1})
	assertTexts(t, next, "a")
}

func TestOutOfRangeOperations(t *testing.T) {
	list := testList("a", "b")
	ops := []Op{
		Toggle{Index: -1},
		Toggle{Index: 2},
		Remove{Index: -1},
		Remove{Index: 2},
		Move{From: -1, To: 0},
		Move{From: 2, To: 0},
		Move{From: 0, To: -1},
		Move{From: 0, To: 2},
	}
	for _, op := range ops {
		next, changed, err := op.Apply(list)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%s %+v: error = %v, want ErrOutOfRange", op.Name(), op, err)
		}
		if changed {
			t.Errorf("%s %+v reported a change", op.Name(), op)
		}
		if !next.Equal(list) {
			t.Errorf("%s %+v changed the list to %+v", op.Name(), op, next)
		}
	}
}

func TestClear(t *testing.T) {
	next, changed, err := Clear{}.Apply(testList("a", "b"))
	if err != nil || !changed {
		t.Fatalf("Clear = changed %v, err %v", changed, err)
	}
	if next == nil || next.Len() != 0 {
		t.Errorf("Clear result = %#v, want empty non-nil list", next)
	}

	_, changed, _ = Clear{}.Apply(List{})
	if changed {
		t.Error("clearing an empty list reported a change")
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward one", 0, 1, []string{"b", "a", "c", "d"}},
		{"forward to end", 0, 3, []string{"b", "c", "d", "a"}},
		{"backward one", 2, 1, []string{"a", "c", "b", "d"}},
		{"backward to start", 3, 0, []string{"d", "a", "b", "c"}},
		{"middle forward", 1, 2, []string{"a", "c", "b", "d"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			list := testList("a", "b", "c", "d")
			next := apply(t, list, Move{From: test.from, To: test.to})
			assertTexts(t, next, test.want...)
			assertTexts(t, list, "a", "b", "c", "d")

			restored := apply(t, next, Move{From: test.to, To: test.from})
			if !restored.Equal(list) {
				t.Errorf("move back = %q, want original order", texts(restored))
			}
		})
	}
}

func TestMoveOntoItselfIsNoOp(t *testing.T) {
	list := testList("a", "b")
	next, changed, err := Move{From: 1, To: 1}.Apply(list)
	if err != nil || changed {
		t.Fatalf("Move(1,1) = changed %v, err %v", changed, err)
	}
	if !next.Equal(list) {
		t.Errorf("Move(1,1) changed the list")
	}
}

func TestMoveIsPermutation(t *testing.T) {
	list := testList("a", "b", "c", "d", "e")
	for from := range list {
		for to := range list {
			next := apply(t, list, Move{From: from, To: to})
			if next.Len() != list.Len() {
				t.Fatalf("Move(%d,%d) length = %d", from, to, next.Len())
			}
			seen := make(map[ID]int)
			for _, entry := range next {
				seen[entry.ID]++
			}
			for _, entry := range list {
				if seen[entry.ID] != 1 {
					t.Fatalf("Move(%d,%d): %s appears %d times", from, to, entry.ID, seen[entry.ID])
				}
			}
			if next[to].ID != list[from].ID {
				t.Errorf("Move(%d,%d): position %d holds %s, want %s", from, to, to, next[to].ID, list[from].ID)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	list := testList("a", "b")
	index, err := Resolve(list, "t1")
	if err != nil || index != 1 {
		t.Errorf("Resolve(t1) = %d, %v", index, err)
	}
	if _, err := Resolve(list, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(missing) error = %v, want ErrNotFound", err)
	}
}
