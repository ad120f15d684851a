// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the notepad binary.
//
// Release builds inject [GitCommit], [GitDirty], [BuildTime], and
// [Version] with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/notepad/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without them, [Info] falls back to the VCS revision the go command
// stamps into the binary, so development builds still identify their
// commit.
package version
