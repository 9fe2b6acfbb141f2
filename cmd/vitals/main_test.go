// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/config"
	"github.com/sysvitals/vitals/lib/metric"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadConfigDefaultsWhenUnset(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Theme != "auto" {
		t.Errorf("Theme = %q, want the built-in default %q", cfg.Theme, "auto")
	}
}

func TestLoadConfigFlagPath(t *testing.T) {
	path := writeTestFile(t, "vitals.yaml", "interval: 5s\ntheme: light\n")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Interval != "5s" {
		t.Errorf("Interval = %q, want %q", cfg.Interval, "5s")
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "light")
	}
}

func TestLoadConfigEnvFallback(t *testing.T) {
	path := writeTestFile(t, "vitals.yaml", "interval: 3s\n")
	t.Setenv(config.EnvVar, path)
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Interval != "3s" {
		t.Errorf("Interval = %q, want %q", cfg.Interval, "3s")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig("/nonexistent/vitals.yaml")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error is %T, want *ToolError", err)
	}
	if toolErr.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryNotFound)
	}
	if toolErr.Hint == "" {
		t.Error("missing config file should carry a hint")
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := writeTestFile(t, "vitals.yaml", "theme: neon\n")
	_, err := loadConfig(path)
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error is %T, want *ToolError", err)
	}
	if toolErr.Category != CategoryValidation {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryValidation)
	}
}

func TestLoadRulesDefaultsWhenUnset(t *testing.T) {
	rules, err := loadRules("")
	if err != nil {
		t.Fatalf("loadRules: %v", err)
	}
	if len(rules) != len(alert.Defaults()) {
		t.Errorf("got %d rules, want the %d built-ins", len(rules), len(alert.Defaults()))
	}
}

func TestLoadRulesFilePrecedence(t *testing.T) {
	path := writeTestFile(t, "rules.jsonc", `{
	// stricter CPU ceiling than the built-in rule
	"rules": [
		{"match": "cpu.total", "warn": 50, "crit": 70},
	],
}`)
	rules, err := loadRules(path)
	if err != nil {
		t.Fatalf("loadRules: %v", err)
	}

	severity, rule, ok := rules.Classify(metric.Num(metric.CategoryCPU, "cpu.total", "%", 60))
	if !ok || severity != alert.SeverityWarn {
		t.Errorf("cpu.total at 60 classified %v (matched %v), want warn under the file rule", severity, ok)
	}
	if rule.Warn != 50 {
		t.Errorf("matched rule warn = %v, want the file's 50 ahead of the built-in", rule.Warn)
	}

	// Built-ins still cover metrics the file does not mention.
	severity, _, ok = rules.Classify(metric.Num(metric.CategoryMemory, "mem.used_percent", "%", 95))
	if !ok || severity != alert.SeverityCrit {
		t.Errorf("mem.used_percent at 95 classified %v (matched %v), want crit from the built-ins", severity, ok)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := loadRules("/nonexistent/rules.jsonc")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error is %T, want *ToolError", err)
	}
	if toolErr.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryNotFound)
	}
}

func TestLoadRulesStructuralIssues(t *testing.T) {
	path := writeTestFile(t, "rules.jsonc", `{"rules": [{"match": "cpu.total", "warn": 90, "crit": 50}]}`)
	_, err := loadRules(path)
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error is %T, want *ToolError", err)
	}
	if toolErr.Category != CategoryValidation {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryValidation)
	}
	if !strings.Contains(err.Error(), "crit must be >= warn") {
		t.Errorf("error should list the structural issue, got: %v", err)
	}
}

func TestLoadRulesMalformedFile(t *testing.T) {
	path := writeTestFile(t, "rules.jsonc", `{"rules": [`)
	_, err := loadRules(path)
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error is %T, want *ToolError", err)
	}
	if toolErr.Category != CategoryValidation {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryValidation)
	}
}
