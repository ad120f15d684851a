// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the notepad's YAML configuration.
//
// The file is named by the --config flag or the NOTEPAD_CONFIG
// environment variable. With neither, [Default] applies: a desktop
// notepad has to start with zero setup. Values in the file override the
// defaults field by field; unknown keys are rejected.
//
// Example:
//
//	storage:
//	  backend: sqlite            # sqlite | file | memory
//	  path: ${NOTEPAD_DATA}/notepad.db
//	  key: todo-list
//	reorder:
//	  touch_threshold: 30
//	  abort_after: 30s
//	  drag_mode: pointer         # pointer | displacement
//	view:
//	  match: substring           # substring | fuzzy
//	export:
//	  format: json               # json | cbor
//	  compression: none          # none | zstd | lz4
package config
