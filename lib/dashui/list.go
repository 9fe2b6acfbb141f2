// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/tui"
)

// Column widths for the metric list. The name column fills remaining
// space; all others are fixed.
const (
	columnWidthGauge = 10 // Percent bar, rendered only for "%" metrics.
	columnWidthValue = 12 // Right-aligned formatted reading.
	columnWidthSpark = 14 // Trailing sparkline window.

	// Rows narrower than these thresholds shed their rightmost
	// decorations instead of truncating the metric name away.
	minWidthForSpark = 44
	minWidthForGauge = 30
)

// ListItem is a single row in the rendered list: either a category
// group header or a metric row.
type ListItem struct {
	// IsHeader is true for category group headers.
	IsHeader bool

	// For headers: the category, its collapsed state, how many values
	// it holds, and a one-line summary (current CPU %, combined
	// network rates, and so on).
	Category  metric.Category
	Collapsed bool
	Count     int
	Summary   string

	// For metric rows: the value and its classified severity.
	Value    metric.Value
	Severity alert.Severity
}

// ListRenderer renders metric rows and category headers within a given
// width.
type ListRenderer struct {
	theme tui.Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given row width.
func NewListRenderer(theme tui.Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// RenderRow renders one metric as a table row: name, optional percent
// gauge, right-aligned formatted value, and a sparkline of the recent
// session history. Severity colors the value cell. matchPositions
// holds rune indices in the name matched by the active filter; those
// characters get the search highlight background.
func (renderer ListRenderer) RenderRow(item ListItem, selected bool, samples []float64, matchPositions []int) string {
	value := item.Value

	showSpark := renderer.width >= minWidthForSpark
	showGauge := renderer.width >= minWidthForGauge

	nameWidth := renderer.width - 2 - columnWidthValue - 1
	if showGauge {
		nameWidth -= columnWidthGauge + 1
	}
	if showSpark {
		nameWidth -= columnWidthSpark + 1
	}
	if nameWidth < 8 {
		nameWidth = 8
	}

	baseStyle := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	valueStyle := lipgloss.NewStyle().Foreground(renderer.theme.SeverityColor(item.Severity))
	if selected {
		baseStyle = lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		valueStyle = baseStyle.Foreground(renderer.theme.SeverityColor(item.Severity))
		if item.Severity == alert.SeverityOK {
			valueStyle = baseStyle
		}
	}

	name := value.Name
	if lipgloss.Width(name) > nameWidth {
		name = truncateName(name, nameWidth-1) + "…"
	}
	namePadding := nameWidth - lipgloss.Width(name)

	var nameRendered string
	if len(matchPositions) > 0 {
		highlightStyle := baseStyle.Background(renderer.theme.SearchHighlightBackground)
		if selected {
			highlightStyle = baseStyle.Bold(true).Underline(true)
		}
		nameRendered = highlightName(name, matchPositions, baseStyle, highlightStyle)
	} else {
		nameRendered = baseStyle.Render(name)
	}
	nameRendered += baseStyle.Render(strings.Repeat(" ", namePadding))

	var columns []string
	columns = append(columns, " "+nameRendered)

	if showGauge {
		gauge := strings.Repeat(" ", columnWidthGauge)
		if value.Unit == "%" && value.Kind == metric.KindNumber {
			gauge = tui.RenderGauge(
				renderer.theme, columnWidthGauge, value.Number/100,
				renderer.theme.SeverityColor(item.Severity),
			)
		} else if selected {
			gauge = baseStyle.Render(gauge)
		}
		columns = append(columns, gauge)
	}

	display := value.Display()
	if lipgloss.Width(display) > columnWidthValue {
		display = truncateName(display, columnWidthValue-1) + "…"
	}
	valuePadding := columnWidthValue - lipgloss.Width(display)
	columns = append(columns, strings.Repeat(" ", valuePadding)+valueStyle.Render(display))

	if showSpark {
		spark := strings.Repeat(" ", columnWidthSpark)
		if value.Kind == metric.KindNumber && len(samples) > 0 {
			lo, hi := sparkBounds(value.Unit)
			spark = tui.RenderSparkline(renderer.theme, columnWidthSpark, samples, lo, hi)
		} else if selected {
			spark = baseStyle.Render(spark)
		}
		columns = append(columns, spark)
	}

	row := strings.Join(columns, " ") + " "
	if selected {
		return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
	}
	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// sparkBounds returns the sparkline scale for a unit. Percent series
// use a fixed 0-100 scale so the bar heights stay comparable across
// polls; everything else auto-scales to its own window.
func sparkBounds(unit string) (lo, hi float64) {
	if unit == "%" {
		return 0, 100
	}
	return 0, 0
}

// RenderGroupHeader renders a category header row: collapse indicator,
// category label, value count, and the one-line summary.
//
//	▼ CPU (14)  ── 43.2%
//	▶ Network (9)  ── ↓ 1.2 MiB/s ↑ 340 KiB/s
func (renderer ListRenderer) RenderGroupHeader(item ListItem, selected bool) string {
	color := renderer.theme.HeaderForeground
	indicator := "▼"
	if item.Collapsed {
		color = renderer.theme.FaintText
		indicator = "▶"
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Width(renderer.width).
		MaxWidth(renderer.width)
	summaryStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)
	if selected {
		headerStyle = headerStyle.
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		summaryStyle = lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
	}

	label := fmt.Sprintf(" %s %s (%d)", indicator, item.Category.String(), item.Count)

	summary := ""
	if item.Summary != "" {
		available := renderer.width - lipgloss.Width(label) - 4
		text := item.Summary
		if available > 0 && lipgloss.Width(text) > available {
			text = truncateName(text, available-1) + "…"
		}
		if available > 0 {
			summary = "  " + summaryStyle.Render(text)
		}
	}

	return headerStyle.Render(label + summary)
}

// categorySummary builds the one-line summary shown on a category
// header. Returns empty string when the values needed for a summary
// are absent.
func categorySummary(category metric.Category, values []metric.Value) string {
	find := func(name string) (metric.Value, bool) {
		for _, value := range values {
			if value.Name == name {
				return value, true
			}
		}
		return metric.Value{}, false
	}

	switch category {
	case metric.CategoryCPU:
		if total, ok := find("cpu.total"); ok {
			return total.Display()
		}
	case metric.CategoryMemory:
		if used, ok := find("mem.used_percent"); ok {
			return used.Display()
		}
	case metric.CategoryDisk:
		if summary := maxOfPrefix(values, "disk.used_percent."); summary != "" {
			return "fullest " + summary
		}
	case metric.CategoryNetwork:
		rx, haveRx := find("net.rx_rate")
		tx, haveTx := find("net.tx_rate")
		if haveRx && haveTx {
			return "↓ " + rx.Display() + " ↑ " + tx.Display()
		}
	case metric.CategoryTemperature:
		if summary := maxOf(values); summary != "" {
			return "hottest " + summary
		}
	case metric.CategoryFan:
		if summary := maxOf(values); summary != "" {
			return "fastest " + summary
		}
	case metric.CategoryBattery:
		for _, value := range values {
			if strings.HasSuffix(value.Name, ".percent") {
				return value.Display()
			}
		}
	case metric.CategoryHost:
		if hostname, ok := find("host.hostname"); ok {
			return hostname.Text
		}
	}
	return ""
}

// maxOf returns the display string of the numerically largest value,
// or empty when there are no numeric values.
func maxOf(values []metric.Value) string {
	best, found := metric.Value{}, false
	for _, value := range values {
		if value.Kind != metric.KindNumber {
			continue
		}
		if !found || value.Number > best.Number {
			best, found = value, true
		}
	}
	if !found {
		return ""
	}
	return best.Display()
}

// maxOfPrefix is maxOf restricted to names with the given prefix.
func maxOfPrefix(values []metric.Value, prefix string) string {
	var matching []metric.Value
	for _, value := range values {
		if strings.HasPrefix(value.Name, prefix) {
			matching = append(matching, value)
		}
	}
	return maxOf(matching)
}

// highlightName renders a metric name with character-level
// highlighting at the given rune positions. Consecutive runs of
// same-style characters are batched into a single Render call to keep
// ANSI output compact.
func highlightName(name string, positions []int, baseStyle, highlightStyle lipgloss.Style) string {
	if len(positions) == 0 {
		return baseStyle.Render(name)
	}

	positionSet := make(map[int]bool, len(positions))
	for _, position := range positions {
		positionSet[position] = true
	}

	runes := []rune(name)
	var result strings.Builder
	runStart := 0
	isHighlighted := positionSet[0]

	for index := 1; index <= len(runes); index++ {
		currentHighlighted := index < len(runes) && positionSet[index]
		if currentHighlighted != isHighlighted || index == len(runes) {
			chunk := string(runes[runStart:index])
			if isHighlighted {
				result.WriteString(highlightStyle.Render(chunk))
			} else {
				result.WriteString(baseStyle.Render(chunk))
			}
			runStart = index
			isHighlighted = currentHighlighted
		}
	}

	return result.String()
}

// truncateName truncates a string to maxWidth visual columns.
func truncateName(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
