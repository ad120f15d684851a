// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts reading the current time. Production code injects
// Real(); tests inject Fake() and move time forward explicitly.
//
// Components that compare timestamps (gesture timeouts, write
// bookkeeping) take a Clock in their Config instead of calling
// time.Now directly. Scheduling is left to the UI event loop, so the
// interface carries no timers.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// OrReal returns clock, or Real() when clock is nil. Config structs use
// it to default an unset Clock field.
func OrReal(clock Clock) Clock {
	if clock == nil {
		return Real()
	}
	return clock
}

// Func adapts a function to Clock.
type Func func() time.Time

// Now calls the function.
func (f Func) Now() time.Time { return f() }

// Real returns the wall clock.
func Real() Clock { return Func(time.Now) }
