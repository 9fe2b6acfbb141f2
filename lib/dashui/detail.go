// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/tui"
)

// detailHeaderLines is the fixed header height of the detail pane:
// metric name row, current reading row, and a separator rule.
const detailHeaderLines = 3

// DetailPane wraps a bubbles viewport for scrollable detail content.
// The pane has a fixed header ([detailHeaderLines] tall) rendered
// above the viewport and a scrollable body below: session statistics,
// a full-width history sparkline, the threshold rule classifying the
// metric, and a prose description.
type DetailPane struct {
	viewport viewport.Model
	theme    tui.Theme
	width    int
	height   int

	// Retained for re-rendering on resize and theme change. Set by
	// SetContent, cleared by Clear.
	hasValue  bool
	value     metric.Value
	severity  alert.Severity
	rule      alert.Rule
	ruleKnown bool
	stats     SeriesStats
	statsOK   bool
	samples   []float64

	// Pre-rendered header string, set by SetContent and rerender.
	header string
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(theme tui.Theme) DetailPane {
	return DetailPane{
		theme: theme,
	}
}

// bodyHeight returns the number of lines available for the scrollable
// viewport body (total height minus the fixed header).
func (pane DetailPane) bodyHeight() int {
	result := pane.height - detailHeaderLines
	if result < 1 {
		result = 1
	}
	return result
}

// contentWidth returns the usable width for text content (total width
// minus the left padding column and right scrollbar column).
func (pane DetailPane) contentWidth() int {
	return pane.width - 2
}

// SetSize updates the detail pane dimensions. If the width changed and
// there is content displayed, the content is re-rendered at the new
// width so the sparkline and wrapped text adapt to splitter changes.
func (pane *DetailPane) SetSize(width, height int) {
	previousWidth := pane.width
	pane.width = width
	pane.height = height
	pane.viewport.Width = pane.contentWidth()
	pane.viewport.Height = pane.bodyHeight()

	if pane.hasValue && width != previousWidth {
		pane.rerender()
	}
}

// SetTheme switches the pane's color theme and re-renders any
// displayed content with the new palette.
func (pane *DetailPane) SetTheme(theme tui.Theme) {
	pane.theme = theme
	if pane.hasValue {
		pane.rerender()
	}
}

// SetContent updates the detail pane for a metric. Called both when
// the selection moves and when a new snapshot refreshes the selected
// metric in place. Scroll position is preserved for in-place
// refreshes; selecting a different metric jumps back to the top.
func (pane *DetailPane) SetContent(value metric.Value, severity alert.Severity, rule alert.Rule, ruleKnown bool, stats SeriesStats, statsOK bool, samples []float64) {
	changed := !pane.hasValue || value.Name != pane.value.Name

	pane.hasValue = true
	pane.value = value
	pane.severity = severity
	pane.rule = rule
	pane.ruleKnown = ruleKnown
	pane.stats = stats
	pane.statsOK = statsOK
	pane.samples = samples

	pane.rerender()
	if changed {
		pane.viewport.GotoTop()
	}
}

// Clear removes the detail pane content.
func (pane *DetailPane) Clear() {
	pane.hasValue = false
	pane.value = metric.Value{}
	pane.severity = alert.SeverityOK
	pane.ruleKnown = false
	pane.statsOK = false
	pane.samples = nil
	pane.header = ""
	pane.viewport.SetContent("")
}

// rerender regenerates the header and body at the current width,
// preserving the scroll position as closely as possible.
func (pane *DetailPane) rerender() {
	previousOffset := pane.viewport.YOffset

	pane.header = pane.renderHeader()
	pane.viewport.SetContent(pane.renderBody())

	maxOffset := pane.viewport.TotalLineCount() - pane.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if previousOffset > maxOffset {
		previousOffset = maxOffset
	}
	pane.viewport.SetYOffset(previousOffset)
}

// renderHeader produces the fixed header: bold metric name with the
// category right-aligned, the current reading colored by severity,
// and a horizontal rule.
func (pane *DetailPane) renderHeader() string {
	contentWidth := pane.contentWidth()
	theme := pane.theme

	nameStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	categoryStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	name := pane.value.Name
	category := pane.value.Category.String()
	gap := contentWidth - lipgloss.Width(name) - lipgloss.Width(category)
	if gap < 1 {
		// Narrow pane: drop the category label rather than the name.
		category = ""
		gap = contentWidth - lipgloss.Width(name)
		if gap < 0 {
			name = truncateName(name, contentWidth)
			gap = 0
		}
	}
	nameLine := nameStyle.Render(name) + strings.Repeat(" ", gap) + categoryStyle.Render(category)

	readingStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true)
	reading := pane.value.Display()
	if pane.value.Kind == metric.KindNumber && pane.severity != alert.SeverityOK {
		readingStyle = readingStyle.Foreground(theme.SeverityColor(pane.severity))
		reading += "  [" + pane.severity.String() + "]"
	}
	readingLine := readingStyle.Render(reading)

	separator := lipgloss.NewStyle().
		Foreground(theme.BorderColor).
		Render(strings.Repeat("─", max(contentWidth, 0)))

	return nameLine + "\n" + readingLine + "\n" + separator
}

// renderBody produces the scrollable body: session statistics and a
// sparkline for numeric metrics, the threshold rule, and the catalog
// description.
func (pane *DetailPane) renderBody() string {
	contentWidth := pane.contentWidth()
	theme := pane.theme

	sectionStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)

	var lines []string

	if pane.value.Kind == metric.KindNumber {
		if pane.statsOK && pane.stats.Count > 0 {
			lines = append(lines,
				sectionStyle.Render(fmt.Sprintf("Session (%d samples)", pane.stats.Count)),
				statRow(labelStyle, valueStyle, "last", pane.displayNumber(pane.stats.Last)),
				statRow(labelStyle, valueStyle, "min", pane.displayNumber(pane.stats.Min)),
				statRow(labelStyle, valueStyle, "avg", pane.displayNumber(pane.stats.Avg)),
				statRow(labelStyle, valueStyle, "max", pane.displayNumber(pane.stats.Max)),
			)
		}
		if len(pane.samples) >= 2 && contentWidth > 0 {
			lo, hi := sparkBounds(pane.value.Unit)
			lines = append(lines,
				"",
				tui.RenderSparkline(theme, contentWidth, pane.samples, lo, hi),
			)
		}
		lines = append(lines, "", sectionStyle.Render("Thresholds"))
		if pane.ruleKnown {
			lines = append(lines, pane.renderRule()...)
		} else {
			lines = append(lines, labelStyle.Render("no rule matches this metric"))
		}
	} else {
		// Text metrics have no history or thresholds; show the full
		// value since list rows truncate long text.
		lines = append(lines,
			sectionStyle.Render("Value"),
			valueStyle.Render(pane.value.Text),
		)
	}

	if description := describeMetric(pane.value.Name); description != "" {
		wrapped := lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.NormalText).
			Render(description)
		lines = append(lines, "", sectionStyle.Render("About"), wrapped)
	}

	return strings.Join(lines, "\n")
}

// renderRule formats the matched threshold rule as body lines: the
// warn and crit boundaries in the metric's own unit, and the match
// pattern that selected the rule.
func (pane *DetailPane) renderRule() []string {
	theme := pane.theme
	warnStyle := lipgloss.NewStyle().Foreground(theme.SeverityWarn)
	critStyle := lipgloss.NewStyle().Foreground(theme.SeverityCrit)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	direction := "≥"
	if pane.rule.Below {
		direction = "≤"
	}
	boundaries := warnStyle.Render(fmt.Sprintf("warn %s %s", direction, pane.displayNumber(pane.rule.Warn))) +
		"   " +
		critStyle.Render(fmt.Sprintf("crit %s %s", direction, pane.displayNumber(pane.rule.Crit)))

	return []string{
		boundaries,
		faintStyle.Render("rule " + pane.rule.Match),
	}
}

// ScrollUp scrolls the detail pane up by half a page.
func (pane *DetailPane) ScrollUp() {
	pane.viewport.HalfViewUp()
}

// ScrollDown scrolls the detail pane down by half a page.
func (pane *DetailPane) ScrollDown() {
	pane.viewport.HalfViewDown()
}

// displayNumber formats an arbitrary number in the displayed metric's
// unit, reusing the value formatting rules (percent precision, IEC
// byte sizes, and so on).
func (pane *DetailPane) displayNumber(number float64) string {
	sample := pane.value
	sample.Kind = metric.KindNumber
	sample.Number = number
	return sample.Display()
}

// statRow renders one "label value" statistics line with the label
// padded to a fixed column.
func statRow(labelStyle, valueStyle lipgloss.Style, label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-6s", label)) + valueStyle.Render(value)
}

// View renders the detail pane as a docked panel with a fixed header,
// scrollable body, left padding, and a right scrollbar.
func (pane DetailPane) View(focused bool) string {
	contentWidth := pane.contentWidth()

	if !pane.hasValue {
		emptyStyle := lipgloss.NewStyle().
			Foreground(pane.theme.FaintText)

		contentStyle := lipgloss.NewStyle().
			PaddingLeft(1).
			Width(pane.width - 1).
			Height(pane.height)

		content := contentStyle.Render(
			lipgloss.Place(
				contentWidth, pane.height,
				lipgloss.Center, lipgloss.Center,
				emptyStyle.Render("Select a metric to inspect"),
			),
		)

		scrollbar := tui.RenderScrollbar(
			pane.theme, pane.height,
			0, pane.height, 0,
			focused,
		)
		return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
	}

	// Content column is exactly pane.height lines: fixed header
	// (detailHeaderLines) + scrollable body (remainder).
	paddingStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		Width(pane.width - 1)

	headerView := paddingStyle.Height(detailHeaderLines).Render(pane.header)
	bodyView := paddingStyle.Height(pane.bodyHeight()).Render(pane.viewport.View())
	content := headerView + "\n" + bodyView

	// Scrollbar: blank column for the header rows, actual scrollbar
	// for the body rows, so the thumb only covers the region it
	// scrolls.
	headerColumn := lipgloss.NewStyle().
		Width(1).
		Height(detailHeaderLines).
		Render("")
	bodyScrollbar := tui.RenderScrollbar(
		pane.theme, pane.bodyHeight(),
		pane.viewport.TotalLineCount(), pane.viewport.Height, pane.viewport.YOffset,
		focused,
	)
	scrollColumn := headerColumn + "\n" + bodyScrollbar

	return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollColumn)
}
