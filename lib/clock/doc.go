// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so that
// sampling loops can be driven deterministically in tests.
//
// Production code accepts a Clock parameter instead of calling
// time.Now, time.After, time.NewTicker, or time.Sleep directly.
// Real() is backed by the standard time package. Fake() stands still
// until Advance is called, which fires every pending timer, ticker,
// and sleep whose deadline falls inside the advanced window.
//
// # Wiring Pattern
//
// Add a Clock field to structs that schedule work:
//
//	type Sampler struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	s := &Sampler{clock: clock.Real()}
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	s := &Sampler{clock: c}
//	// ... start the sampling goroutine ...
//	c.WaitForTimers(1)         // block until the loop arms its ticker
//	c.Advance(2 * time.Second) // fire the tick deterministically
//
// # FakeClock Synchronization
//
// When a goroutine calls After, NewTicker, or Sleep on a FakeClock it
// registers a pending waiter. WaitForTimers blocks until a given
// number of waiters are registered, eliminating the race between a
// goroutine arming a timer and the test advancing the clock.
package clock
