// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"math"
	"testing"
	"time"

	"github.com/sysvitals/vitals/lib/metric"
)

// observeOne records a single cpu.total sample.
func observeOne(history *History, number float64) {
	history.Observe(&metric.Snapshot{
		Taken: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Values: []metric.Value{
			metric.Num(metric.CategoryCPU, "cpu.total", "%", number),
		},
	})
}

func TestHistoryObserve(t *testing.T) {
	history := NewHistory()
	observeOne(history, 10)
	observeOne(history, 20)
	observeOne(history, 30)

	samples := history.Samples("cpu.total")
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	// Oldest first.
	if samples[0] != 10 || samples[1] != 20 || samples[2] != 30 {
		t.Errorf("expected [10 20 30], got %v", samples)
	}
}

func TestHistorySkipsTextValues(t *testing.T) {
	history := NewHistory()
	history.Observe(&metric.Snapshot{
		Values: []metric.Value{
			metric.Txt(metric.CategoryHost, "host.hostname", "box"),
		},
	})

	if samples := history.Samples("host.hostname"); samples != nil {
		t.Errorf("text values should not accumulate, got %v", samples)
	}
}

func TestHistorySkipsNonFinite(t *testing.T) {
	history := NewHistory()
	observeOne(history, math.NaN())
	observeOne(history, math.Inf(1))
	observeOne(history, 50)

	samples := history.Samples("cpu.total")
	if len(samples) != 1 || samples[0] != 50 {
		t.Errorf("non-finite samples should be dropped, got %v", samples)
	}
}

func TestHistoryStats(t *testing.T) {
	history := NewHistory()
	observeOne(history, 10)
	observeOne(history, 30)
	observeOne(history, 20)

	stats, ok := history.Stats("cpu.total")
	if !ok {
		t.Fatal("Stats should succeed for an observed metric")
	}
	if stats.Min != 10 {
		t.Errorf("expected min 10, got %v", stats.Min)
	}
	if stats.Max != 30 {
		t.Errorf("expected max 30, got %v", stats.Max)
	}
	if stats.Avg != 20 {
		t.Errorf("expected avg 20, got %v", stats.Avg)
	}
	if stats.Last != 20 {
		t.Errorf("expected last 20, got %v", stats.Last)
	}
	if stats.Count != 3 {
		t.Errorf("expected count 3, got %d", stats.Count)
	}
}

func TestHistoryUnknownMetric(t *testing.T) {
	history := NewHistory()
	if samples := history.Samples("never.seen"); samples != nil {
		t.Errorf("unknown metric should return nil samples, got %v", samples)
	}
	if _, ok := history.Stats("never.seen"); ok {
		t.Error("unknown metric should report no stats")
	}
}

func TestHistoryNilSnapshot(t *testing.T) {
	history := NewHistory()
	history.Observe(nil) // Must not panic.
	if samples := history.Samples("cpu.total"); samples != nil {
		t.Errorf("nil snapshot should record nothing, got %v", samples)
	}
}

func TestHistoryRingWraps(t *testing.T) {
	history := NewHistory()
	total := historyCapacity + 5
	for index := 0; index < total; index++ {
		observeOne(history, float64(index))
	}

	samples := history.Samples("cpu.total")
	if len(samples) != historyCapacity {
		t.Fatalf("ring should cap at %d samples, got %d", historyCapacity, len(samples))
	}
	// The 5 oldest samples were overwritten.
	if samples[0] != 5 {
		t.Errorf("oldest surviving sample should be 5, got %v", samples[0])
	}
	if samples[len(samples)-1] != float64(total-1) {
		t.Errorf("newest sample should be %d, got %v", total-1, samples[len(samples)-1])
	}

	stats, ok := history.Stats("cpu.total")
	if !ok {
		t.Fatal("Stats should succeed after wrapping")
	}
	if stats.Min != 5 {
		t.Errorf("min should reflect only retained samples, got %v", stats.Min)
	}
	if stats.Last != float64(total-1) {
		t.Errorf("last should be the newest sample, got %v", stats.Last)
	}
}
