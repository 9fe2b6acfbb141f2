// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package poller drives a metric provider on a single repeating timer.
//
// One background goroutine owns the whole poll schedule: [Poller.Run]
// polls once immediately, then once per tick, and every poll runs
// synchronously on that goroutine so polls never overlap. The UI
// retunes the schedule through [Poller.SetInterval],
// [Poller.Pause]/[Poller.Resume], and [Poller.Refresh]; snapshots flow
// back through [Poller.Subscribe] channels and [Poller.Latest].
//
// Time is injected via lib/clock: production callers use clock.Real(),
// tests drive the loop deterministically with clock.Fake.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sysvitals/vitals/lib/clock"
	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/provider"
)

// MinInterval is the fastest allowed poll cadence. Intervals below it
// are clamped: polling the engine faster than this only burns CPU on
// readings that cannot meaningfully change.
const MinInterval = 250 * time.Millisecond

// Update is one poll outcome delivered to subscribers. Exactly one
// field is set: Snapshot on success, Err on failure. A failed poll
// does not clear the poller's Latest snapshot, so the UI can keep
// showing the previous values while flagging them stale.
type Update struct {
	Snapshot *metric.Snapshot
	Err      error
}

// Options configures a Poller.
type Options struct {
	// Interval overrides the provider's default poll cadence. Zero
	// keeps the provider default. Clamped to MinInterval.
	Interval time.Duration

	// Clock provides the repeating timer. If nil, defaults to
	// clock.Real(); tests pass clock.Fake for deterministic control.
	Clock clock.Clock

	// Logger receives poll diagnostics. If nil, a no-op logger is
	// used.
	Logger *slog.Logger
}

// Poller owns the poll schedule for one provider.
type Poller struct {
	source provider.Provider
	clock  clock.Clock
	logger *slog.Logger

	// refresh carries at most one pending manual poll request;
	// further requests coalesce into it.
	refresh chan struct{}

	mu          sync.Mutex
	interval    time.Duration
	paused      bool
	latest      *metric.Snapshot
	subscribers []chan Update
	ticker      *clock.Ticker
}

// New creates a poller for the given provider. The provider must be
// non-nil; the poller does not close it.
func New(source provider.Provider, options Options) *Poller {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	interval := options.Interval
	if interval == 0 {
		interval = source.DefaultInterval()
	}
	if interval < MinInterval {
		interval = MinInterval
	}
	return &Poller{
		source:   source,
		clock:    options.Clock,
		logger:   options.Logger,
		refresh:  make(chan struct{}, 1),
		interval: interval,
	}
}

// Run polls once immediately, then on every tick until ctx is done.
// Returns ctx.Err(). Must be called at most once.
func (poller *Poller) Run(ctx context.Context) error {
	poller.mu.Lock()
	ticker := poller.clock.NewTicker(poller.interval)
	if poller.paused {
		ticker.Stop()
	}
	poller.ticker = ticker
	poller.mu.Unlock()
	defer ticker.Stop()

	poller.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poller.pollOnce(ctx)
		case <-poller.refresh:
			poller.pollOnce(ctx)
		}
	}
}

// Subscribe registers a new update channel. The poll loop never blocks
// on it: if the subscriber has not consumed the previous update, the
// new one is dropped, since subscribers only need the latest. Safe to
// call while Run is active.
func (poller *Poller) Subscribe() <-chan Update {
	channel := make(chan Update, 1)
	poller.mu.Lock()
	poller.subscribers = append(poller.subscribers, channel)
	poller.mu.Unlock()
	return channel
}

// Latest returns the most recent successful snapshot, if any. Failed
// polls do not clear it.
func (poller *Poller) Latest() (*metric.Snapshot, bool) {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	return poller.latest, poller.latest != nil
}

// Interval reports the current poll cadence.
func (poller *Poller) Interval() time.Duration {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	return poller.interval
}

// SetInterval retunes the repeating timer, clamping to MinInterval.
// The next tick fires one full interval from now. While paused, only
// the stored cadence changes; Resume applies it.
func (poller *Poller) SetInterval(interval time.Duration) {
	if interval < MinInterval {
		interval = MinInterval
	}
	poller.mu.Lock()
	defer poller.mu.Unlock()
	poller.interval = interval
	if poller.ticker != nil && !poller.paused {
		poller.ticker.Reset(interval)
	}
}

// Refresh requests an immediate poll. Requests made while one is
// already pending coalesce. Polls triggered this way work while
// paused; a Refresh before Run starts is honored once it does.
func (poller *Poller) Refresh() {
	select {
	case poller.refresh <- struct{}{}:
	default:
	}
}

// Pause suspends automatic ticks. Manual Refresh still polls.
func (poller *Poller) Pause() {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	if poller.paused {
		return
	}
	poller.paused = true
	if poller.ticker != nil {
		poller.ticker.Stop()
	}
}

// Resume restarts automatic ticks at the current interval.
func (poller *Poller) Resume() {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	if !poller.paused {
		return
	}
	poller.paused = false
	if poller.ticker != nil {
		poller.ticker.Reset(poller.interval)
	}
}

// Paused reports whether automatic ticks are suspended.
func (poller *Poller) Paused() bool {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	return poller.paused
}

func (poller *Poller) pollOnce(ctx context.Context) {
	snapshot, err := poller.source.Poll(ctx)
	if err != nil {
		// A poll cut short by shutdown is not a failure worth
		// reporting.
		if ctx.Err() != nil {
			return
		}
		poller.logger.Warn("poll failed",
			"provider", poller.source.Name(),
			"error", err,
		)
		poller.publish(Update{Err: err})
		return
	}

	poller.mu.Lock()
	poller.latest = snapshot
	poller.mu.Unlock()
	poller.publish(Update{Snapshot: snapshot})
}

func (poller *Poller) publish(update Update) {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	for _, subscriber := range poller.subscribers {
		select {
		case subscriber <- update:
		default:
		}
	}
}
