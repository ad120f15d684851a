// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Values are copied on the way in and
// out so callers cannot alias stored bytes.
type Memory struct {
	mutex    sync.Mutex
	values   map[string][]byte
	putError error
	puts     int
	closed   bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (store *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.closed {
		return nil, false, ErrClosed
	}
	value, ok := store.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (store *Memory) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.closed {
		return ErrClosed
	}
	if store.putError != nil {
		return store.putError
	}
	store.values[key] = append([]byte(nil), value...)
	store.puts++
	return nil
}

func (store *Memory) Close() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.closed = true
	return nil
}

// FailPuts makes every subsequent Put return err without storing
// anything. Pass nil to restore normal behavior.
func (store *Memory) FailPuts(err error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.putError = err
}

// Puts returns the number of successful Put calls.
func (store *Memory) Puts() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.puts
}

// Set stores value under key directly, bypassing failure injection.
// Tests use it to seed corrupt or legacy data.
func (store *Memory) Set(key string, value []byte) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.values[key] = append([]byte(nil), value...)
}
