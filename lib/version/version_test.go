// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfoWithInjectedValues(t *testing.T) {
	savedCommit, savedDirty, savedTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedTime })

	GitCommit, GitDirty, BuildTime = "abc1234", "true", "2026-10-01T00:00:00Z"
	if got, want := Info(), Version+" (abc1234-dirty, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "false"
	if got := Info(); strings.Contains(got, "dirty") {
		t.Errorf("Info() = %q, should not be dirty", got)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q does not start with Info()", full)
	}
	if !strings.Contains(full, runtime.Version()) || !strings.Contains(full, runtime.GOOS) {
		t.Errorf("Full() = %q missing runtime details", full)
	}
}

func TestShort(t *testing.T) {
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
