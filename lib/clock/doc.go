// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// [Real] reads the system clock. [Fake] returns a [FakeClock] that only
// moves when a test calls [FakeClock.Advance] or [FakeClock.Set], which
// makes timeout behavior deterministic: a test can start a drag
// gesture, advance the clock past the abort threshold, and assert that
// the next event finds the gesture gone, without sleeping.
package clock
