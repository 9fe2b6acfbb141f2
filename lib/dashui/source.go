// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"time"

	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/poller"
)

// Source abstracts metric data access for the TUI. The normal
// implementation is a *poller.Poller; tests substitute an in-memory
// stub. The TUI code is identical regardless of backend.
type Source interface {
	// Latest returns the most recent snapshot and whether one exists
	// yet. Used to seed the model before the first subscription
	// update arrives.
	Latest() (*metric.Snapshot, bool)

	// Subscribe returns a channel that receives an update per poll.
	// The model listens on this channel through a re-armed bubbletea
	// command, one receive at a time.
	Subscribe() <-chan poller.Update
}

// IntervalController is an optional interface a Source can provide to
// support retuning the poll cadence at runtime. The TUI checks for it
// via type assertion; when present, the inline interval entry (the
// `i` key) is enabled and the current cadence appears in the header
// stats.
type IntervalController interface {
	// Interval returns the current poll cadence.
	Interval() time.Duration

	// SetInterval changes the poll cadence. Implementations clamp
	// unreasonable values rather than erroring.
	SetInterval(interval time.Duration)
}

// Refresher is an optional interface a Source can provide to trigger
// an immediate out-of-schedule poll. Wired to the `r` key when
// present.
type Refresher interface {
	Refresh()
}

// PauseController is an optional interface a Source can provide to
// stop and restart scheduled polling. Wired to the `p` key when
// present; the header shows a PAUSED marker while polling is stopped.
type PauseController interface {
	Pause()
	Resume()
	Paused() bool
}
