// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/notepad/lib/clock"
)

// backends returns a constructor for every Store implementation. Each
// constructor registers cleanup with t.
func backends() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemory()
		},
		"file": func(t *testing.T) Store {
			store, err := OpenFile(t.TempDir(), nil)
			if err != nil {
				t.Fatalf("OpenFile: %v", err)
			}
			return store
		},
		"sqlite": func(t *testing.T) Store {
			store, err := OpenSQLite(SQLiteConfig{Path: filepath.Join(t.TempDir(), "kv.db")})
			if err != nil {
				t.Fatalf("OpenSQLite: %v", err)
			}
			t.Cleanup(func() { store.Close() })
			return store
		},
	}
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			store := open(t)

			if _, ok, err := store.Get(ctx, "todo-list"); err != nil || ok {
				t.Fatalf("Get on empty store = ok %v, err %v", ok, err)
			}

			if err := store.Put(ctx, "todo-list", []byte(`[{"text":"a"}]`)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			value, ok, err := store.Get(ctx, "todo-list")
			if err != nil || !ok {
				t.Fatalf("Get = ok %v, err %v", ok, err)
			}
			if string(value) != `[{"text":"a"}]` {
				t.Errorf("Get = %s", value)
			}

			// Put replaces, never appends.
			if err := store.Put(ctx, "todo-list", []byte(`[]`)); err != nil {
				t.Fatalf("second Put: %v", err)
			}
			value, _, _ = store.Get(ctx, "todo-list")
			if string(value) != `[]` {
				t.Errorf("Get after replace = %s", value)
			}

			// Keys are independent.
			if _, ok, _ := store.Get(ctx, "other"); ok {
				t.Error("unwritten key reported present")
			}

			if err := store.Put(ctx, "../escape", []byte("x")); err == nil {
				t.Error("Put accepted a key with a path separator")
			}
		})
	}
}

func TestMemoryFailPuts(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Put(ctx, "todo-list", []byte("old")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	diskFull := errors.New("disk full")
	store.FailPuts(diskFull)
	if err := store.Put(ctx, "todo-list", []byte("new")); !errors.Is(err, diskFull) {
		t.Fatalf("Put error = %v, want %v", err, diskFull)
	}
	value, _, _ := store.Get(ctx, "todo-list")
	if string(value) != "old" {
		t.Errorf("failed Put changed value to %s", value)
	}

	store.FailPuts(nil)
	if err := store.Put(ctx, "todo-list", []byte("new")); err != nil {
		t.Fatalf("Put after recovery: %v", err)
	}
	if store.Puts() != 2 {
		t.Errorf("Puts = %d, want 2", store.Puts())
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	input := []byte("abc")
	store.Put(ctx, "k", input)
	input[0] = 'X'

	value, _, _ := store.Get(ctx, "k")
	value[1] = 'Y'

	again, _, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value aliased caller memory: %s", again)
	}
}

func TestClosedStores(t *testing.T) {
	ctx := context.Background()
	memory := NewMemory()
	memory.Close()
	if err := memory.Put(ctx, "k", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("memory Put after Close = %v", err)
	}

	file, err := OpenFile(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	file.Close()
	if _, _, err := file.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("file Get after Close = %v", err)
	}
}

func TestFileStoreLeavesNoTemporaryFile(t *testing.T) {
	directory := t.TempDir()
	store, err := OpenFile(directory, nil)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := store.Put(context.Background(), "todo-list", []byte("[]")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(directory, "*"))
	if len(matches) != 1 || filepath.Base(matches[0]) != "todo-list.json" {
		t.Errorf("directory contents = %v, want only todo-list.json", matches)
	}
}

func TestSQLiteUpdatedAt(t *testing.T) {
	ctx := context.Background()
	fake := clock.Fake(time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	store, err := OpenSQLite(SQLiteConfig{Path: filepath.Join(t.TempDir(), "notepad.db"), Clock: fake})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if updated, err := store.UpdatedAt(ctx, "todo-list"); err != nil || !updated.IsZero() {
		t.Fatalf("UpdatedAt before write = %v, %v", updated, err)
	}

	if err := store.Put(ctx, "todo-list", []byte("[]")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	updated, err := store.UpdatedAt(ctx, "todo-list")
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if !updated.Equal(fake.Now()) {
		t.Errorf("UpdatedAt = %v, want %v", updated, fake.Now())
	}
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"todo-list", "a", "notes.v2", "A_b-9"} {
		if err := ValidateKey(key); err != nil {
			t.Errorf("ValidateKey(%q) = %v", key, err)
		}
	}
	for _, key := range []string{"", ".hidden", "a/b", `a\b`, "has space"} {
		if err := ValidateKey(key); err == nil {
			t.Errorf("ValidateKey(%q) accepted", key)
		}
	}
}
