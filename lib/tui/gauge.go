// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// partialBlocks are the left-aligned eighth blocks used for the
// fractional cell at the end of a gauge fill. Index is eighths (1-7);
// zero eighths renders nothing.
var partialBlocks = [8]string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// RenderGauge produces a horizontal bar of the given width filled in
// proportion to fraction (clamped to 0..1). The filled portion uses
// fillColor (callers pass the severity color of the metric) and the
// empty remainder is a dim shaded track. Fractional cells use eighth
// blocks for smoother steps.
func RenderGauge(theme Theme, width int, fraction float64, fillColor lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	cells := fraction * float64(width)
	full := int(cells)
	if full > width {
		full = width
	}
	eighths := int((cells - float64(full)) * 8)

	var bar strings.Builder
	bar.WriteString(strings.Repeat("█", full))
	used := full
	if eighths > 0 && used < width {
		bar.WriteString(partialBlocks[eighths])
		used++
	}

	fillStyle := lipgloss.NewStyle().Foreground(fillColor)
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	return fillStyle.Render(bar.String()) + trackStyle.Render(strings.Repeat("░", width-used))
}
