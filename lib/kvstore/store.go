// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package kvstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Store is a key-value store with whole-value replacement.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put replaces the value stored under key. Either the whole new
	// value is stored or, on error, the previous value is left intact.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases the backend's resources.
	Close() error
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kvstore: store is closed")

// keyPattern restricts keys to characters that are safe as file names
// on every platform the file backend runs on.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateKey returns an error if key is not usable with every backend.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("kvstore: invalid key %q: must match %s", key, keyPattern)
	}
	return nil
}
