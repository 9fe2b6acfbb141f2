// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// FlashDecayDuration is how long a row glows after its metric crosses
// a severity threshold. Intensity starts at 1.0 and decays linearly
// to 0.0 over this duration.
const FlashDecayDuration = 5 * time.Second

// FlashTickInterval is the re-render interval while any rows are
// glowing. 100ms gives ~10fps animation for smooth color decay.
const FlashTickInterval = 100 * time.Millisecond

// FlashKind distinguishes which threshold was crossed, for color
// selection.
type FlashKind int

const (
	// FlashWarn indicates a metric escalated into warning (amber glow).
	FlashWarn FlashKind = iota
	// FlashCrit indicates a metric escalated into critical (red glow).
	FlashCrit
)

// flashEntry records when and how a metric last escalated.
type flashEntry struct {
	ignition time.Time
	kind     FlashKind
}

// FlashTracker maps metric names to ignition timestamps for animated
// threshold-crossing highlights. Each escalation "ignites" a row,
// which then decays from full intensity to zero over
// [FlashDecayDuration]. De-escalations do not ignite: a metric
// returning to normal should calm the display, not light it up.
type FlashTracker struct {
	entries map[string]flashEntry
}

// NewFlashTracker creates an empty flash tracker.
func NewFlashTracker() *FlashTracker {
	return &FlashTracker{
		entries: make(map[string]flashEntry),
	}
}

// Ignite records an escalation for a metric. Resets the decay timer
// if the row was already glowing.
func (tracker *FlashTracker) Ignite(name string, kind FlashKind, now time.Time) {
	tracker.entries[name] = flashEntry{ignition: now, kind: kind}
}

// Intensity returns the current glow for a metric: 1.0 at ignition,
// linearly decaying to 0.0 over [FlashDecayDuration]. Returns 0.0 for
// metrics that never escalated or have fully decayed.
func (tracker *FlashTracker) Intensity(name string, now time.Time) float64 {
	entry, exists := tracker.entries[name]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= FlashDecayDuration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(FlashDecayDuration)
}

// Kind returns the flash kind for a metric (warn or crit). Only
// meaningful when Intensity() returns > 0.
func (tracker *FlashTracker) Kind(name string) FlashKind {
	entry, exists := tracker.entries[name]
	if !exists {
		return FlashWarn
	}
	return entry.kind
}

// HasActive returns true if any tracked metric still glows, meaning
// the tick timer should keep running for animation.
func (tracker *FlashTracker) HasActive(now time.Time) bool {
	for name, entry := range tracker.entries {
		if now.Sub(entry.ignition) < FlashDecayDuration {
			return true
		}
		// Garbage-collect fully decayed entries.
		delete(tracker.entries, name)
	}
	return false
}
