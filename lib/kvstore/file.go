// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// File stores each key as "<key>.json" in a directory. Writes go to a
// temporary file in the same directory, are synced, and then renamed
// over the previous value.
type File struct {
	directory string
	logger    *slog.Logger

	mutex  sync.Mutex
	closed bool
}

// OpenFile returns a File store rooted at directory, creating it with
// mode 0700 if needed. A nil logger discards output.
func OpenFile(directory string, logger *slog.Logger) (*File, error) {
	if directory == "" {
		return nil, fmt.Errorf("kvstore: file store directory is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return nil, fmt.Errorf("kvstore: creating %s: %w", directory, err)
	}
	return &File{directory: directory, logger: logger}, nil
}

func (store *File) path(key string) string {
	return filepath.Join(store.directory, key+".json")
}

func (store *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.closed {
		return nil, false, ErrClosed
	}

	data, err := os.ReadFile(store.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kvstore: reading %s: %w", key, err)
	}
	return data, true, nil
}

func (store *File) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if store.closed {
		return ErrClosed
	}

	path := store.path(key)
	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("kvstore: creating temporary file for %s: %w", key, err)
	}

	// Write, sync, close, rename. On any failure the temporary file is
	// removed and the previous value stays in place.
	if _, err := file.Write(value); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("kvstore: writing %s: %w", key, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("kvstore: syncing %s: %w", key, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("kvstore: closing %s: %w", key, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("kvstore: replacing %s: %w", key, err)
	}

	store.logger.Debug("value written", "key", key, "path", path, "bytes", len(value))
	return nil
}

func (store *File) Close() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.closed = true
	return nil
}
