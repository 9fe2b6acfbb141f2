// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package metric

import (
	"math"
	"testing"
	"time"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{
			name:  "percent one decimal",
			value: Num(CategoryCPU, "cpu.total", "%", 42.25),
			want:  "42.2%",
		},
		{
			name:  "percent rounds",
			value: Num(CategoryMemory, "mem.used_percent", "%", 99.96),
			want:  "100.0%",
		},
		{
			name:  "bytes IEC",
			value: Num(CategoryMemory, "mem.total", "B", 16*1024*1024*1024),
			want:  "16 GiB",
		},
		{
			name:  "byte rate",
			value: Num(CategoryNetwork, "net.rx_rate.eth0", "B/s", 1536*1024),
			want:  "1.5 MiB/s",
		},
		{
			name:  "negative bytes are unrenderable",
			value: Num(CategoryDisk, "disk.read_rate", "B/s", -1),
			want:  "—",
		},
		{
			name:  "temperature",
			value: Num(CategoryTemperature, "temp.coretemp_core_0", "°C", 61.5),
			want:  "61.5°C",
		},
		{
			name:  "fan whole rpm",
			value: Num(CategoryFan, "fan.hwmon1_fan1", "RPM", 1243.7),
			want:  "1244 RPM",
		},
		{
			name:  "bare number trims trailing zeros",
			value: Num(CategoryCPU, "cpu.load1", "", 0.50),
			want:  "0.5",
		},
		{
			name:  "bare integer drops the point",
			value: Num(CategoryCPU, "cpu.load15", "", 8),
			want:  "8",
		},
		{
			name:  "unknown unit appended",
			value: Num(CategoryHost, "host.procs", "procs", 312),
			want:  "312 procs",
		},
		{
			name:  "nan",
			value: Num(CategoryCPU, "cpu.total", "%", math.NaN()),
			want:  "—",
		},
		{
			name:  "positive infinity",
			value: Num(CategoryCPU, "cpu.total", "%", math.Inf(1)),
			want:  "—",
		},
		{
			name:  "text verbatim",
			value: Txt(CategoryBattery, "battery.bat0.status", "Discharging"),
			want:  "Discharging",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.value.Display()
			if got != test.want {
				t.Errorf("Display() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSnapshotFind(t *testing.T) {
	snapshot := &Snapshot{
		Taken: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Values: []Value{
			Num(CategoryCPU, "cpu.total", "%", 17.0),
			Txt(CategoryHost, "host.hostname", "workstation"),
		},
	}

	value, ok := snapshot.Find("host.hostname")
	if !ok {
		t.Fatal("Find(host.hostname) should succeed")
	}
	if value.Text != "workstation" {
		t.Errorf("found value text = %q, want %q", value.Text, "workstation")
	}

	if _, ok := snapshot.Find("missing"); ok {
		t.Error("Find(missing) should report absence")
	}
}

func TestSnapshotByCategory(t *testing.T) {
	snapshot := &Snapshot{
		Values: []Value{
			Num(CategoryCPU, "cpu.total", "%", 10),
			Num(CategoryMemory, "mem.used_percent", "%", 40),
			Num(CategoryCPU, "cpu.core.0", "%", 12),
			Num(CategoryCPU, "cpu.core.1", "%", 8),
		},
	}

	grouped := snapshot.ByCategory()

	if len(grouped) != 2 {
		t.Fatalf("expected 2 populated categories, got %d", len(grouped))
	}

	cpu := grouped[CategoryCPU]
	if len(cpu) != 3 {
		t.Fatalf("expected 3 CPU values, got %d", len(cpu))
	}

	// Emission order preserved within the group.
	wantOrder := []string{"cpu.total", "cpu.core.0", "cpu.core.1"}
	for index, want := range wantOrder {
		if cpu[index].Name != want {
			t.Errorf("cpu[%d] = %q, want %q", index, cpu[index].Name, want)
		}
	}

	if _, present := grouped[CategoryBattery]; present {
		t.Error("empty categories should be absent from the map")
	}
}

func TestCategoriesOrder(t *testing.T) {
	categories := Categories()
	if len(categories) != int(categoryCount) {
		t.Fatalf("expected %d categories, got %d", categoryCount, len(categories))
	}
	if categories[0] != CategoryCPU {
		t.Errorf("first category should be CPU, got %s", categories[0])
	}
	if categories[len(categories)-1] != CategoryHost {
		t.Errorf("last category should be Host, got %s", categories[len(categories)-1])
	}
}

func TestCategoryByName(t *testing.T) {
	for _, category := range Categories() {
		resolved, ok := CategoryByName(category.String())
		if !ok {
			t.Errorf("CategoryByName(%q) should resolve", category.String())
			continue
		}
		if resolved != category {
			t.Errorf("CategoryByName(%q) = %v, want %v", category.String(), resolved, category)
		}
	}

	if resolved, ok := CategoryByName("cpu"); !ok || resolved != CategoryCPU {
		t.Errorf("CategoryByName should ignore case, got (%v, %v)", resolved, ok)
	}

	if _, ok := CategoryByName("GPU"); ok {
		t.Error("unknown category name should not resolve")
	}
}
