// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkGlyphs are the eight block heights of a sparkline column, from
// lowest to highest.
var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline renders the trailing window of samples as a one-line
// bar chart, right-aligned so the newest sample hugs the right edge
// and new data appears to push in from the right.
//
// Columns scale between lo and hi. When hi <= lo the scale is derived
// from the window itself: zero to the window maximum, which suits
// rates and other unbounded series. Percent-style series should pass
// fixed bounds (0, 100) so the scale doesn't breathe between polls.
// NaN samples render as gaps.
func RenderSparkline(theme Theme, width int, samples []float64, lo, hi float64) string {
	if width <= 0 {
		return ""
	}

	window := samples
	if len(window) > width {
		window = window[len(window)-width:]
	}

	if hi <= lo {
		lo = 0
		hi = 0
		for _, sample := range window {
			if !math.IsNaN(sample) && sample > hi {
				hi = sample
			}
		}
	}
	span := hi - lo

	var bar strings.Builder
	for pad := len(window); pad < width; pad++ {
		bar.WriteRune(' ')
	}
	for _, sample := range window {
		switch {
		case math.IsNaN(sample):
			bar.WriteRune(' ')
		case span <= 0:
			bar.WriteRune(sparkGlyphs[0])
		default:
			normalized := (sample - lo) / span
			if normalized < 0 {
				normalized = 0
			}
			if normalized > 1 {
				normalized = 1
			}
			index := int(normalized*float64(len(sparkGlyphs)-1) + 0.5)
			bar.WriteRune(sparkGlyphs[index])
		}
	}

	return lipgloss.NewStyle().Foreground(theme.Sparkline).Render(bar.String())
}
