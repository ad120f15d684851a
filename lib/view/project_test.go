// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"testing"

	"github.com/bureau-foundation/notepad/lib/task"
)

func testList(texts ...string) task.List {
	list := make(task.List, len(texts))
	for index, text := range texts {
		list[index] = task.Task{ID: task.ID(text), Text: text}
	}
	return list
}

func indices(rows []Row) []int {
	result := make([]int, len(rows))
	for position, row := range rows {
		result[position] = row.Index
	}
	return result
}

func assertIndices(t *testing.T, rows []Row, want ...int) {
	t.Helper()
	got := indices(rows)
	if len(got) != len(want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
	for position := range want {
		if got[position] != want[position] {
			t.Fatalf("indices = %v, want %v", got, want)
		}
	}
}

func TestEmptyQueryIsIdentity(t *testing.T) {
	list := testList("a", "b", "c")
	rows := Project(list, "")
	assertIndices(t, rows, 0, 1, 2)
	if !Tasks(rows).Equal(list) {
		t.Errorf("Tasks = %+v", Tasks(rows))
	}
	for _, row := range rows {
		if row.Positions != nil {
			t.Errorf("row %d has positions %v for empty query", row.Index, row.Positions)
		}
	}
}

func TestSubstringCaseInsensitive(t *testing.T) {
	list := testList("Buy MILK", "walk dog", "milkshake", "oat milk")
	rows := Project(list, "Milk")
	assertIndices(t, rows, 0, 2, 3)

	if positions := rows[2].Positions; len(positions) != 4 || positions[0] != 4 {
		t.Errorf("positions for %q = %v", rows[2].Task.Text, positions)
	}
}

func TestProjectDoesNotMutate(t *testing.T) {
	list := testList("b", "a")
	before := list.Clone()
	Project(list, "a")
	if !list.Equal(before) {
		t.Errorf("list modified: %+v", list)
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	list := testList("alpha", "beta", "gamma", "alphabet")
	once := Tasks(Project(list, "alp"))
	twice := Tasks(Project(once, "alp"))
	if !once.Equal(twice) {
		t.Errorf("Project(Project(l, q), q) = %+v, want %+v", twice, once)
	}
}

func TestNoMatchesIsEmpty(t *testing.T) {
	rows := Project(testList("a", "b"), "zzz")
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %#v, want empty non-nil", rows)
	}
}

func TestScenario(t *testing.T) {
	list := task.List{
		{ID: "2", Text: "walk dog"},
		{ID: "1", Text: "buy milk", Done: true},
	}
	rows := Project(list, "milk")
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Index != 1 || rows[0].Task != list[1] || rows[0].ID() != "1" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestNonASCIIPositions(t *testing.T) {
	// "É" lowercases to a rune of a different byte length.
	list := testList("Écrire à Zoë")
	rows := Project(list, "zoë")
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	runes := []rune(list[0].Text)
	if got := string(runes[rows[0].Positions[0] : rows[0].Positions[2]+1]); got != "Zoë" {
		t.Errorf("positions %v select %q", rows[0].Positions, got)
	}
}

func TestFuzzyProjector(t *testing.T) {
	list := testList("walk the dog", "buy milk", "wash dishes")
	projector := NewProjector(Fuzzy)

	rows := projector.Project(list, "wdg")
	assertIndices(t, rows, 0)
	if len(rows[0].Positions) != 3 {
		t.Errorf("positions = %v", rows[0].Positions)
	}

	// Canonical order, not score order.
	rows = projector.Project(list, "wd")
	assertIndices(t, rows, 0, 2)

	assertIndices(t, projector.Project(list, ""), 0, 1, 2)
}

func TestSubstringProjectorMatchesProject(t *testing.T) {
	list := testList("walk the dog", "buy milk")
	var projector Projector
	assertIndices(t, projector.Project(list, "wdg"))
	assertIndices(t, projector.Project(list, "milk"), 1)
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]Mode{"": Substring, "substring": Substring, "fuzzy": Fuzzy} {
		mode, err := ParseMode(name)
		if err != nil || mode != want {
			t.Errorf("ParseMode(%q) = %v, %v", name, mode, err)
		}
		if name != "" && mode.String() != name {
			t.Errorf("%v.String() = %q", mode, mode.String())
		}
	}
	if _, err := ParseMode("regex"); err == nil {
		t.Error("ParseMode(regex) succeeded")
	}
}

func TestLocate(t *testing.T) {
	rows := Project(testList("a", "b", "ab"), "b")
	if position := Locate(rows, "ab"); position != 1 {
		t.Errorf("Locate(ab) = %d, want 1", position)
	}
	if position := Locate(rows, "a"); position != -1 {
		t.Errorf("Locate(a) = %d, want -1", position)
	}
}
