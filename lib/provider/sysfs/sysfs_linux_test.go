// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package sysfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sysvitals/vitals/lib/metric"
)

// writeSyntheticFile creates a file at the given path within root,
// creating parent directories as needed.
func writeSyntheticFile(t *testing.T, root, path, content string) {
	t.Helper()
	fullPath := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}
}

func TestCollectFromBatteries(t *testing.T) {
	root := t.TempDir()
	writeSyntheticFile(t, root, "class/power_supply/BAT0/capacity", "87\n")
	writeSyntheticFile(t, root, "class/power_supply/BAT0/status", "Discharging\n")
	// BAT1 has no status file.
	writeSyntheticFile(t, root, "class/power_supply/BAT1/capacity", "52\n")
	// AC adapters are not batteries.
	writeSyntheticFile(t, root, "class/power_supply/AC/online", "1\n")

	values := New(nil).collectFrom(root)

	if len(values) != 4 {
		t.Fatalf("expected 4 values, got %d: %v", len(values), values)
	}
	if values[0].Name != "battery.bat0.percent" || values[0].Number != 87 {
		t.Errorf("values[0] = %v %v, want battery.bat0.percent 87", values[0].Name, values[0].Number)
	}
	if values[0].Unit != "%" {
		t.Errorf("capacity unit = %q, want %%", values[0].Unit)
	}
	if values[1].Name != "battery.bat0.status" || values[1].Text != "Discharging" {
		t.Errorf("values[1] = %v %q, want battery.bat0.status Discharging", values[1].Name, values[1].Text)
	}
	if values[1].Kind != metric.KindText {
		t.Error("status should be a text value")
	}
	if values[3].Name != "battery.bat1.status" || values[3].Text != "Unknown" {
		t.Errorf("missing status file should read Unknown, got %v %q", values[3].Name, values[3].Text)
	}
}

func TestCollectFromMalformedBattery(t *testing.T) {
	root := t.TempDir()
	writeSyntheticFile(t, root, "class/power_supply/BAT0/capacity", "not-a-number\n")
	writeSyntheticFile(t, root, "class/power_supply/BAT0/status", "Charging\n")
	// A battery directory without a capacity file at all.
	if err := os.MkdirAll(filepath.Join(root, "class/power_supply/BAT1"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	values := New(nil).collectFrom(root)

	if len(values) != 0 {
		t.Errorf("unreadable batteries should be skipped entirely, got %v", values)
	}
}

func TestCollectFromFans(t *testing.T) {
	root := t.TempDir()
	writeSyntheticFile(t, root, "class/hwmon/hwmon0/name", "thinkpad\n")
	writeSyntheticFile(t, root, "class/hwmon/hwmon0/fan1_input", "2800\n")
	writeSyntheticFile(t, root, "class/hwmon/hwmon0/fan2_input", "0\n")
	// A chip without a name file falls back to the directory name.
	writeSyntheticFile(t, root, "class/hwmon/hwmon1/fan1_input", "1200\n")

	values := New(nil).collectFrom(root)

	byName := make(map[string]metric.Value)
	for _, value := range values {
		byName[value.Name] = value
	}

	if got := byName["fan.thinkpad_fan1"]; got.Number != 2800 || got.Unit != "RPM" {
		t.Errorf("fan.thinkpad_fan1 = %v %q, want 2800 RPM", got.Number, got.Unit)
	}
	// A stopped fan is a real reading.
	stopped, present := byName["fan.thinkpad_fan2"]
	if !present {
		t.Fatal("zero RPM reading should be kept")
	}
	if stopped.Number != 0 {
		t.Errorf("fan.thinkpad_fan2 = %v, want 0", stopped.Number)
	}
	if got := byName["fan.hwmon1_fan1"]; got.Number != 1200 {
		t.Errorf("fan.hwmon1_fan1 = %v, want 1200 (directory-name fallback)", got.Number)
	}
}

func TestCollectFromDuplicateChipNames(t *testing.T) {
	root := t.TempDir()
	writeSyntheticFile(t, root, "class/hwmon/hwmon0/name", "nvme\n")
	writeSyntheticFile(t, root, "class/hwmon/hwmon0/fan1_input", "100\n")
	writeSyntheticFile(t, root, "class/hwmon/hwmon1/name", "nvme\n")
	writeSyntheticFile(t, root, "class/hwmon/hwmon1/fan1_input", "200\n")

	values := New(nil).collectFrom(root)

	byName := make(map[string]float64)
	for _, value := range values {
		byName[value.Name] = value.Number
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 fans, got %d: %v", len(values), values)
	}
	if byName["fan.nvme_fan1"] != 100 {
		t.Errorf("fan.nvme_fan1 = %v, want 100", byName["fan.nvme_fan1"])
	}
	if byName["fan.hwmon1_fan1"] != 200 {
		t.Errorf("duplicate chip should fall back to fan.hwmon1_fan1 = 200, got %v", byName["fan.hwmon1_fan1"])
	}
}

func TestCollectFromMalformedFan(t *testing.T) {
	root := t.TempDir()
	writeSyntheticFile(t, root, "class/hwmon/hwmon0/name", "dell_smm\n")
	writeSyntheticFile(t, root, "class/hwmon/hwmon0/fan1_input", "fast\n")

	if values := New(nil).collectFrom(root); len(values) != 0 {
		t.Errorf("malformed fan reading should be skipped, got %v", values)
	}
}

func TestCollectFromEmptyRoot(t *testing.T) {
	if values := New(nil).collectFrom(t.TempDir()); len(values) != 0 {
		t.Errorf("empty tree should yield no values, got %v", values)
	}
}

func TestCollectLiveSystem(t *testing.T) {
	// Whatever hardware the host has, Collect must not fail.
	values, err := New(nil).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	for _, value := range values {
		if value.Category != metric.CategoryBattery && value.Category != metric.CategoryFan {
			t.Errorf("unexpected category %v for %q", value.Category, value.Name)
		}
	}
}
