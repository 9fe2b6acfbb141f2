// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"testing"

	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/tui"
)

// testDetailPane builds a sized pane ready for content.
func testDetailPane() DetailPane {
	pane := NewDetailPane(tui.DarkTheme)
	pane.SetSize(60, 20)
	return pane
}

// cpuStats is a plausible session summary for cpu.total.
var cpuStats = SeriesStats{Min: 12.0, Max: 88.5, Avg: 45.2, Last: 42.5, Count: 30}

func TestDetailPaneEmptyState(t *testing.T) {
	pane := testDetailPane()
	view := pane.View(false)
	if !strings.Contains(view, "Select a metric to inspect") {
		t.Error("an empty pane should show the placeholder")
	}
}

func TestDetailPaneNumberContent(t *testing.T) {
	pane := testDetailPane()
	value := metric.Num(metric.CategoryCPU, "cpu.total", "%", 42.5)
	rule := alert.Rule{Match: "cpu.total", Warn: 85, Crit: 95}
	samples := []float64{40, 41, 42.5}

	pane.SetContent(value, alert.SeverityOK, rule, true, cpuStats, true, samples)
	view := pane.View(true)

	if !strings.Contains(view, "cpu.total") {
		t.Error("header should show the metric name")
	}
	if !strings.Contains(view, "CPU") {
		t.Error("header should show the category")
	}
	if !strings.Contains(view, "42.5%") {
		t.Error("header should show the current reading")
	}
	if strings.Contains(view, "[warn]") || strings.Contains(view, "[crit]") {
		t.Error("an OK reading should carry no severity tag")
	}
	if !strings.Contains(view, "Session (30 samples)") {
		t.Error("body should show the session statistics section")
	}
	if !strings.Contains(view, "88.5%") {
		t.Error("body should show the session max")
	}
	if !strings.Contains(view, "Thresholds") {
		t.Error("body should show the thresholds section")
	}
	if !strings.Contains(view, "warn ≥ 85.0%") {
		t.Error("body should show the warn boundary")
	}
	if !strings.Contains(view, "crit ≥ 95.0%") {
		t.Error("body should show the crit boundary")
	}
	if !strings.Contains(view, "rule cpu.total") {
		t.Error("body should name the matching rule")
	}
	if !strings.Contains(view, "About") {
		t.Error("body should show the catalog description section")
	}
}

func TestDetailPaneSeverityTag(t *testing.T) {
	pane := testDetailPane()
	value := metric.Num(metric.CategoryCPU, "cpu.total", "%", 90.0)
	rule := alert.Rule{Match: "cpu.total", Warn: 85, Crit: 95}

	pane.SetContent(value, alert.SeverityWarn, rule, true, cpuStats, true, nil)
	if !strings.Contains(pane.View(true), "[warn]") {
		t.Error("a warn reading should be tagged in the header")
	}

	pane.SetContent(value, alert.SeverityCrit, rule, true, cpuStats, true, nil)
	if !strings.Contains(pane.View(true), "[crit]") {
		t.Error("a crit reading should be tagged in the header")
	}
}

func TestDetailPaneBelowRule(t *testing.T) {
	pane := testDetailPane()
	value := metric.Num(metric.CategoryBattery, "battery.charge_percent", "%", 55.0)
	rule := alert.Rule{Match: "battery.*", Warn: 20, Crit: 10, Below: true}
	stats := SeriesStats{Min: 55, Max: 80, Avg: 65, Last: 55, Count: 10}

	pane.SetContent(value, alert.SeverityOK, rule, true, stats, true, nil)
	view := pane.View(true)

	// Below rules flip the comparison direction.
	if !strings.Contains(view, "warn ≤ 20.0%") {
		t.Error("a below rule should render the inverted warn boundary")
	}
	if !strings.Contains(view, "crit ≤ 10.0%") {
		t.Error("a below rule should render the inverted crit boundary")
	}
}

func TestDetailPaneNoRule(t *testing.T) {
	pane := testDetailPane()
	value := metric.Num(metric.CategoryNetwork, "net.rx_rate.eth0", "B/s", 1024)
	stats := SeriesStats{Min: 512, Max: 2048, Avg: 1024, Last: 1024, Count: 5}

	pane.SetContent(value, alert.SeverityOK, alert.Rule{}, false, stats, true, nil)
	view := pane.View(true)

	if !strings.Contains(view, "no rule matches this metric") {
		t.Error("an unruled metric should say so in the thresholds section")
	}
}

func TestDetailPaneTextContent(t *testing.T) {
	pane := testDetailPane()
	value := metric.Txt(metric.CategoryHost, "host.uptime", "3d 4h 12m")

	pane.SetContent(value, alert.SeverityOK, alert.Rule{}, false, SeriesStats{}, false, nil)
	view := pane.View(true)

	if !strings.Contains(view, "host.uptime") {
		t.Error("header should show the metric name")
	}
	if !strings.Contains(view, "3d 4h 12m") {
		t.Error("body should show the text reading")
	}
	if strings.Contains(view, "Session") {
		t.Error("text values have no session statistics")
	}
	if strings.Contains(view, "Thresholds") {
		t.Error("text values have no thresholds section")
	}
}

func TestDetailPaneScrollPreservedOnRefresh(t *testing.T) {
	pane := NewDetailPane(tui.DarkTheme)
	pane.SetSize(40, 8) // Small body so the content scrolls.

	value := metric.Num(metric.CategoryCPU, "cpu.total", "%", 42.5)
	rule := alert.Rule{Match: "cpu.total", Warn: 85, Crit: 95}
	samples := []float64{40, 41, 42.5}

	pane.SetContent(value, alert.SeverityOK, rule, true, cpuStats, true, samples)
	pane.viewport.LineDown(2)
	scrolled := pane.viewport.YOffset
	if scrolled == 0 {
		t.Fatal("test content should be tall enough to scroll")
	}

	// A refresh of the same metric keeps the reading position.
	next := value
	next.Number = 43.1
	pane.SetContent(next, alert.SeverityOK, rule, true, cpuStats, true, samples)
	if pane.viewport.YOffset != scrolled {
		t.Errorf("refresh should preserve scroll, was %d now %d",
			scrolled, pane.viewport.YOffset)
	}

	// Selecting a different metric resets to the top.
	other := metric.Num(metric.CategoryMemory, "mem.used_percent", "%", 61.0)
	pane.SetContent(other, alert.SeverityOK, alert.Rule{}, false, SeriesStats{}, false, nil)
	if pane.viewport.YOffset != 0 {
		t.Errorf("a new metric should reset scroll, got %d", pane.viewport.YOffset)
	}
}

func TestDetailPaneClear(t *testing.T) {
	pane := testDetailPane()
	value := metric.Num(metric.CategoryCPU, "cpu.total", "%", 42.5)
	pane.SetContent(value, alert.SeverityOK, alert.Rule{}, false, cpuStats, true, nil)

	pane.Clear()
	view := pane.View(false)
	if !strings.Contains(view, "Select a metric to inspect") {
		t.Error("Clear should restore the placeholder")
	}
	if strings.Contains(view, "cpu.total") {
		t.Error("Clear should drop the previous content")
	}
}
