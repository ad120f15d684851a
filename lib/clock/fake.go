// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock whose current time is initial. Time stands
// still until Advance or Set is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a manually driven Clock for tests. It is safe for
// concurrent use.
type FakeClock struct {
	mutex   sync.Mutex
	current time.Time
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.current
}

// Advance moves the fake time forward by d. Negative durations are
// ignored: a fake clock never runs backwards.
func (c *FakeClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.current = c.current.Add(d)
}

// Set jumps the fake time to t, which may be earlier than the current
// fake time. Tests use it to simulate wall clock adjustments.
func (c *FakeClock) Set(t time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.current = t
}
