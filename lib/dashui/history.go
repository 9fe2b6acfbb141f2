// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"math"

	"github.com/sysvitals/vitals/lib/metric"
)

// historyCapacity is how many samples each metric's ring buffer holds.
// At the default 2s poll cadence this covers the last 12 minutes,
// which is plenty for the sparkline windows and detail statistics.
const historyCapacity = 360

// History accumulates per-metric numeric samples for the current
// session. It feeds the list sparklines and the detail pane's
// min/avg/max/last statistics. Nothing is persisted: the buffers live
// and die with the process.
//
// Metrics that disappear from a snapshot (an unplugged battery, a
// removed disk) simply stop accumulating; their existing samples
// remain until the process exits.
type History struct {
	series map[string]*ring
}

// ring is a fixed-capacity circular buffer of samples.
type ring struct {
	samples [historyCapacity]float64
	start   int
	count   int
}

func (r *ring) push(sample float64) {
	if r.count < historyCapacity {
		r.samples[(r.start+r.count)%historyCapacity] = sample
		r.count++
		return
	}
	r.samples[r.start] = sample
	r.start = (r.start + 1) % historyCapacity
}

// at returns the sample at position index, oldest first.
func (r *ring) at(index int) float64 {
	return r.samples[(r.start+index)%historyCapacity]
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{series: make(map[string]*ring)}
}

// Observe appends every numeric value in the snapshot to its metric's
// ring buffer. Text values and non-finite numbers are skipped.
func (history *History) Observe(snapshot *metric.Snapshot) {
	if snapshot == nil {
		return
	}
	for _, value := range snapshot.Values {
		if value.Kind != metric.KindNumber {
			continue
		}
		if math.IsNaN(value.Number) || math.IsInf(value.Number, 0) {
			continue
		}
		r, exists := history.series[value.Name]
		if !exists {
			r = &ring{}
			history.series[value.Name] = r
		}
		r.push(value.Number)
	}
}

// Samples returns the accumulated samples for a metric, oldest first.
// Returns nil when the metric has never been observed.
func (history *History) Samples(name string) []float64 {
	r, exists := history.series[name]
	if !exists || r.count == 0 {
		return nil
	}
	samples := make([]float64, r.count)
	for index := range samples {
		samples[index] = r.at(index)
	}
	return samples
}

// SeriesStats summarizes one metric's session history.
type SeriesStats struct {
	Min   float64
	Max   float64
	Avg   float64
	Last  float64
	Count int
}

// Stats computes summary statistics over a metric's accumulated
// samples. Returns false when the metric has never been observed.
func (history *History) Stats(name string) (SeriesStats, bool) {
	r, exists := history.series[name]
	if !exists || r.count == 0 {
		return SeriesStats{}, false
	}

	stats := SeriesStats{
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
		Count: r.count,
	}
	sum := 0.0
	for index := 0; index < r.count; index++ {
		sample := r.at(index)
		if sample < stats.Min {
			stats.Min = sample
		}
		if sample > stats.Max {
			stats.Max = sample
		}
		sum += sample
	}
	stats.Avg = sum / float64(r.count)
	stats.Last = r.at(r.count - 1)
	return stats, true
}
