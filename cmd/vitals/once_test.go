// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/metric"
)

func onceSnapshot() *metric.Snapshot {
	return &metric.Snapshot{
		Taken: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Values: []metric.Value{
			metric.Num(metric.CategoryCPU, "cpu.total", "%", 42.5),
			metric.Num(metric.CategoryMemory, "mem.used_percent", "%", 96.0),
			metric.Num(metric.CategoryNetwork, "net.rx_rate.eth0", "B/s", 1536),
			metric.Txt(metric.CategoryHost, "host.hostname", "testbox"),
		},
	}
}

func TestPrintSnapshotGroupsByCategory(t *testing.T) {
	var buffer bytes.Buffer
	printSnapshot(&buffer, onceSnapshot(), alert.Defaults(), nil)
	output := buffer.String()

	if !strings.Contains(output, "system metrics at 2026-03-14 09:26:53 (4 values)") {
		t.Errorf("missing header line in output:\n%s", output)
	}
	for _, heading := range []string{"CPU", "Memory", "Network", "Host"} {
		if !strings.Contains(output, "\n"+heading+"\n") {
			t.Errorf("missing %s heading in output:\n%s", heading, output)
		}
	}
	if strings.Contains(output, "\nDisk\n") {
		t.Errorf("empty category should be omitted:\n%s", output)
	}
	if strings.Index(output, "\nCPU\n") > strings.Index(output, "\nMemory\n") {
		t.Errorf("categories out of order:\n%s", output)
	}
}

func TestPrintSnapshotFormatsValues(t *testing.T) {
	var buffer bytes.Buffer
	printSnapshot(&buffer, onceSnapshot(), alert.Defaults(), nil)
	output := buffer.String()

	// Names pad to the longest visible name so values align.
	if !strings.Contains(output, "  mem.used_percent  96.0%  [crit]") {
		t.Errorf("missing aligned crit line in output:\n%s", output)
	}
	if !strings.Contains(output, "  net.rx_rate.eth0  1.5 KiB/s") {
		t.Errorf("missing humanized rate line in output:\n%s", output)
	}
	if !strings.Contains(output, "testbox") {
		t.Errorf("missing text value in output:\n%s", output)
	}
}

func TestPrintSnapshotSeverityMarkers(t *testing.T) {
	var buffer bytes.Buffer
	printSnapshot(&buffer, onceSnapshot(), alert.Defaults(), nil)

	for _, line := range strings.Split(buffer.String(), "\n") {
		switch {
		case strings.Contains(line, "cpu.total"):
			if strings.Contains(line, "[") {
				t.Errorf("healthy value should carry no marker: %q", line)
			}
		case strings.Contains(line, "mem.used_percent"):
			if !strings.Contains(line, "[crit]") {
				t.Errorf("crit value should carry a [crit] marker: %q", line)
			}
		case strings.Contains(line, "host.hostname"):
			if strings.Contains(line, "[") {
				t.Errorf("text value should never carry a marker: %q", line)
			}
		}
	}
}

func TestPrintSnapshotDisabledCategories(t *testing.T) {
	var buffer bytes.Buffer
	disabled := map[metric.Category]bool{metric.CategoryNetwork: true}
	printSnapshot(&buffer, onceSnapshot(), alert.Defaults(), disabled)
	output := buffer.String()

	if strings.Contains(output, "Network") || strings.Contains(output, "net.rx_rate.eth0") {
		t.Errorf("disabled category should be omitted:\n%s", output)
	}
	if !strings.Contains(output, "(3 values)") {
		t.Errorf("header count should exclude disabled values:\n%s", output)
	}
}

func TestDisabledSet(t *testing.T) {
	set := disabledSet([]string{"network", "HOST", "nonsense"})
	if !set[metric.CategoryNetwork] {
		t.Error("lowercase name should resolve")
	}
	if !set[metric.CategoryHost] {
		t.Error("uppercase name should resolve")
	}
	if len(set) != 2 {
		t.Errorf("set has %d entries, want 2 (unknown names skipped)", len(set))
	}
}
