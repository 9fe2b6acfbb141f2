// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"testing"

	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/tui"
)

func TestFilterMatchesName(t *testing.T) {
	filter := FilterModel{Input: "cpu"}
	if !filter.Matches(metric.Num(metric.CategoryCPU, "cpu.total", "%", 42)) {
		t.Error("filter 'cpu' should match cpu.total by name")
	}
	if filter.Matches(metric.Num(metric.CategoryMemory, "mem.used", "B", 1024)) {
		t.Error("filter 'cpu' should not match mem.used")
	}
}

func TestFilterMatchesCategory(t *testing.T) {
	filter := FilterModel{Input: "temperature"}
	if !filter.Matches(metric.Num(metric.CategoryTemperature, "temp.coretemp.core0", "°C", 55)) {
		t.Error("filter 'temperature' should match by category label")
	}
}

func TestFilterMatchesUnit(t *testing.T) {
	filter := FilterModel{Input: "rpm"}
	if !filter.Matches(metric.Num(metric.CategoryFan, "fan.cpu_fan", "RPM", 1200)) {
		t.Error("filter 'rpm' should match by unit")
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	filter := FilterModel{Input: "CPU"}
	if !filter.Matches(metric.Num(metric.CategoryCPU, "cpu.total", "%", 42)) {
		t.Error("filter matching should ignore case")
	}
}

func TestFilterNoMatch(t *testing.T) {
	filter := FilterModel{Input: "nonexistent"}
	if filter.Matches(metric.Num(metric.CategoryCPU, "cpu.total", "%", 42)) {
		t.Error("filter should not match an unrelated value")
	}
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	filter := FilterModel{}
	if !filter.Matches(metric.Txt(metric.CategoryHost, "host.hostname", "box")) {
		t.Error("an empty filter should match everything")
	}
}

func TestFilterApplyFuzzyNarrowsAndOrders(t *testing.T) {
	filter := FilterModel{Input: "mem"}
	values := []metric.Value{
		metric.Num(metric.CategoryCPU, "cpu.total", "%", 42),
		metric.Num(metric.CategoryMemory, "swap.used_percent", "%", 12),
		metric.Num(metric.CategoryMemory, "mem.used_percent", "%", 60),
	}

	results := filter.ApplyFuzzy(values)

	// cpu.total matches nothing; swap.used_percent survives via its
	// Memory category but has no name match, so it sorts after
	// mem.used_percent.
	if len(results) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(results))
	}
	if results[0].Value.Name != "mem.used_percent" {
		t.Errorf("name match should sort first, got %s", results[0].Value.Name)
	}
	if results[1].Value.Name != "swap.used_percent" {
		t.Errorf("category-only match should sort last, got %s", results[1].Value.Name)
	}
	if len(results[0].NamePositions) == 0 {
		t.Error("name match should carry highlight positions")
	}
	if len(results[1].NamePositions) != 0 {
		t.Error("category-only match should carry no highlight positions")
	}
}

func TestFilterApplyFuzzyEmptyInput(t *testing.T) {
	filter := FilterModel{}
	values := []metric.Value{
		metric.Num(metric.CategoryCPU, "cpu.total", "%", 42),
		metric.Num(metric.CategoryMemory, "mem.used", "B", 1024),
	}

	results := filter.ApplyFuzzy(values)
	if len(results) != 2 {
		t.Fatalf("empty filter should keep everything, got %d", len(results))
	}
	// Snapshot order is preserved.
	if results[0].Value.Name != "cpu.total" || results[1].Value.Name != "mem.used" {
		t.Error("empty filter should preserve input order")
	}
}

func TestFilterHandleRune(t *testing.T) {
	filter := FilterModel{}
	if !filter.HandleRune('c') {
		t.Error("HandleRune should report a change")
	}
	filter.HandleRune('p')
	filter.HandleRune('u')
	if filter.Input != "cpu" {
		t.Errorf("expected input 'cpu', got %q", filter.Input)
	}
}

func TestFilterHandleBackspace(t *testing.T) {
	filter := FilterModel{Input: "cpu"}
	if !filter.HandleBackspace() {
		t.Error("backspace on text should report a change")
	}
	if filter.Input != "cp" {
		t.Errorf("expected 'cp' after backspace, got %q", filter.Input)
	}

	filter.Input = ""
	if filter.HandleBackspace() {
		t.Error("backspace on empty input should report no change")
	}
}

func TestFilterClear(t *testing.T) {
	filter := FilterModel{Input: "cpu", Active: true}
	filter.Clear()
	if filter.Input != "" {
		t.Errorf("Clear should empty the input, got %q", filter.Input)
	}
	if filter.Active {
		t.Error("Clear should deactivate the filter")
	}
}

func TestFilterViewHiddenWhenIdle(t *testing.T) {
	filter := FilterModel{}
	if view := filter.View(tui.DarkTheme, 80); view != "" {
		t.Errorf("idle filter should render nothing, got %q", view)
	}
}

func TestFilterViewActive(t *testing.T) {
	filter := FilterModel{Input: "cpu", Active: true}
	view := filter.View(tui.DarkTheme, 80)
	if !strings.Contains(view, "cpu") {
		t.Error("active filter should render its input text")
	}
}

func TestFilterViewInactiveWithText(t *testing.T) {
	filter := FilterModel{Input: "cpu"}
	view := filter.View(tui.DarkTheme, 80)
	if !strings.Contains(view, "filter:") {
		t.Error("a confirmed filter should render the applied text")
	}
	if !strings.Contains(view, "cpu") {
		t.Error("a confirmed filter should include the query")
	}
}
