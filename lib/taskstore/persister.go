// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskstore

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/notepad/lib/kvstore"
	"github.com/bureau-foundation/notepad/lib/task"
)

// DefaultKey is the storage key the task list is kept under.
const DefaultKey = "todo-list"

// Persister loads and saves an entire task list.
type Persister interface {
	// Load returns the stored list. found is false when nothing has
	// been stored yet. A non-nil error means the stored value exists
	// but could not be read or parsed.
	Load(ctx context.Context) (list task.List, found bool, err error)

	// Save replaces the stored list.
	Save(ctx context.Context, list task.List) error
}

// KVPersister stores the list as a JSON array under a single key of a
// kvstore.Store.
type KVPersister struct {
	store kvstore.Store
	key   string
}

// NewKVPersister returns a Persister writing to key in store. An empty
// key means DefaultKey.
func NewKVPersister(store kvstore.Store, key string) *KVPersister {
	if key == "" {
		key = DefaultKey
	}
	return &KVPersister{store: store, key: key}
}

// Key returns the storage key.
func (persister *KVPersister) Key() string {
	return persister.key
}

func (persister *KVPersister) Load(ctx context.Context) (task.List, bool, error) {
	data, found, err := persister.store.Get(ctx, persister.key)
	if err != nil || !found {
		return nil, found, err
	}
	list, err := task.DecodeJSON(data)
	if err != nil {
		return nil, true, fmt.Errorf("key %s: %w", persister.key, err)
	}
	return list, true, nil
}

func (persister *KVPersister) Save(ctx context.Context, list task.List) error {
	data, err := task.EncodeJSON(list)
	if err != nil {
		return err
	}
	return persister.store.Put(ctx, persister.key, data)
}
