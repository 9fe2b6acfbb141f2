// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package sysfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sysvitals/vitals/lib/metric"
)

// Collect reads battery and fan values from the prober's sysfs tree.
// Never returns an error: a machine without batteries or fans is a
// valid machine that reports nothing for these categories.
func (prober *Prober) Collect(ctx context.Context) ([]metric.Value, error) {
	return prober.collectFrom(prober.root), nil
}

// collectFrom is the testable implementation of Collect. It accepts a
// root path so tests can point at synthetic /sys trees.
func (prober *Prober) collectFrom(root string) []metric.Value {
	values := prober.batteryValues(filepath.Join(root, "class/power_supply"))
	return append(values, prober.fanValues(filepath.Join(root, "class/hwmon"))...)
}

// batteryValues reads capacity and charge status for every BAT*
// power supply. An absent status file reads as "Unknown"; a battery
// whose capacity cannot be parsed is skipped entirely.
func (prober *Prober) batteryValues(supplyDir string) []metric.Value {
	entries, err := os.ReadDir(supplyDir)
	if err != nil {
		return nil
	}
	var values []metric.Value
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "BAT") {
			continue
		}
		batteryDir := filepath.Join(supplyDir, name)
		capacityPath := filepath.Join(batteryDir, "capacity")
		raw, err := os.ReadFile(capacityPath)
		if err != nil {
			prober.logger.Debug("skipping battery", "path", capacityPath, "error", err)
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
		if err != nil {
			prober.logger.Debug("malformed battery capacity", "path", capacityPath, "error", err)
			continue
		}

		status := "Unknown"
		if raw, err := os.ReadFile(filepath.Join(batteryDir, "status")); err == nil {
			if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
				status = trimmed
			}
		}

		key := strings.ToLower(name)
		values = append(values,
			metric.Num(metric.CategoryBattery, "battery."+key+".percent", "%", percent),
			metric.Txt(metric.CategoryBattery, "battery."+key+".status", status),
		)
	}
	return values
}

// fanValues reads fan*_input tachometer files from every hwmon chip,
// labeled by the chip's name file (falling back to the hwmon directory
// name). Zero RPM is a real reading (a stopped fan) and is kept.
func (prober *Prober) fanValues(hwmonDir string) []metric.Value {
	entries, err := os.ReadDir(hwmonDir)
	if err != nil {
		return nil
	}
	var values []metric.Value
	seen := make(map[string]bool)
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "hwmon") {
			continue
		}
		chipDir := filepath.Join(hwmonDir, entry.Name())
		chip := entry.Name()
		if raw, err := os.ReadFile(filepath.Join(chipDir, "name")); err == nil {
			if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
				chip = trimmed
			}
		}
		chip = strings.ReplaceAll(strings.ToLower(chip), " ", "_")

		inputs, err := filepath.Glob(filepath.Join(chipDir, "fan*_input"))
		if err != nil {
			continue
		}
		for _, inputPath := range inputs {
			raw, err := os.ReadFile(inputPath)
			if err != nil {
				prober.logger.Debug("skipping fan", "path", inputPath, "error", err)
				continue
			}
			rpm, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
			if err != nil {
				prober.logger.Debug("malformed fan reading", "path", inputPath, "error", err)
				continue
			}
			fan := strings.TrimSuffix(filepath.Base(inputPath), "_input")
			name := fmt.Sprintf("fan.%s_%s", chip, fan)
			if seen[name] {
				// Two chips with the same name file: fall back to the
				// unique hwmon directory name.
				name = fmt.Sprintf("fan.%s_%s", strings.ToLower(entry.Name()), fan)
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			values = append(values, metric.Num(metric.CategoryFan, name, "RPM", rpm))
		}
	}
	return values
}
