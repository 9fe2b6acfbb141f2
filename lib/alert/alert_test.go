// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package alert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sysvitals/vitals/lib/metric"
)

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value metric.Value
		want  bool
	}{
		{
			name:  "exact name",
			rule:  Rule{Match: "cpu.total"},
			value: metric.Num(metric.CategoryCPU, "cpu.total", "%", 50),
			want:  true,
		},
		{
			name:  "exact name miss",
			rule:  Rule{Match: "cpu.total"},
			value: metric.Num(metric.CategoryCPU, "cpu.core.0", "%", 50),
			want:  false,
		},
		{
			name:  "prefix",
			rule:  Rule{Match: "disk.used_percent.*"},
			value: metric.Num(metric.CategoryDisk, "disk.used_percent./home", "%", 50),
			want:  true,
		},
		{
			name:  "prefix does not match sibling",
			rule:  Rule{Match: "disk.used_percent.*"},
			value: metric.Num(metric.CategoryDisk, "disk.read_rate", "B/s", 1024),
			want:  false,
		},
		{
			name:  "category",
			rule:  Rule{Match: "category:temperature"},
			value: metric.Num(metric.CategoryTemperature, "temp.coretemp", "°C", 60),
			want:  true,
		},
		{
			name:  "category miss",
			rule:  Rule{Match: "category:temperature"},
			value: metric.Num(metric.CategoryCPU, "cpu.total", "%", 60),
			want:  false,
		},
		{
			name:  "unknown category matches nothing",
			rule:  Rule{Match: "category:gpu"},
			value: metric.Num(metric.CategoryCPU, "cpu.total", "%", 60),
			want:  false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.rule.Matches(test.value); got != test.want {
				t.Errorf("Matches(%q) = %v, want %v", test.value.Name, got, test.want)
			}
		})
	}
}

func TestRuleSeverityAbove(t *testing.T) {
	rule := Rule{Match: "cpu.total", Warn: 85, Crit: 95}

	tests := []struct {
		number float64
		want   Severity
	}{
		{50, SeverityOK},
		{84.9, SeverityOK},
		{85, SeverityWarn},
		{94.9, SeverityWarn},
		{95, SeverityCrit},
		{100, SeverityCrit},
	}

	for _, test := range tests {
		if got := rule.Severity(test.number); got != test.want {
			t.Errorf("Severity(%v) = %v, want %v", test.number, got, test.want)
		}
	}
}

func TestRuleSeverityBelow(t *testing.T) {
	rule := Rule{Match: "battery.*", Warn: 20, Crit: 10, Below: true}

	tests := []struct {
		number float64
		want   Severity
	}{
		{100, SeverityOK},
		{20.1, SeverityOK},
		{20, SeverityWarn},
		{10.1, SeverityWarn},
		{10, SeverityCrit},
		{2, SeverityCrit},
	}

	for _, test := range tests {
		if got := rule.Severity(test.number); got != test.want {
			t.Errorf("Severity(%v) = %v, want %v", test.number, got, test.want)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	rules := RuleSet{
		{Match: "cpu.total", Warn: 50, Crit: 60},
		{Match: "category:cpu", Warn: 85, Crit: 95},
	}

	severity, applied, matched := rules.Classify(metric.Num(metric.CategoryCPU, "cpu.total", "%", 55))
	if !matched {
		t.Fatal("expected a rule to match cpu.total")
	}
	if severity != SeverityWarn {
		t.Errorf("severity = %v, want warn (first rule's thresholds)", severity)
	}
	if applied.Warn != 50 {
		t.Errorf("applied rule warn = %v, want 50", applied.Warn)
	}
}

func TestClassifyTextValueNeverMatches(t *testing.T) {
	rules := RuleSet{{Match: "category:battery", Warn: 20, Crit: 10, Below: true}}

	severity, _, matched := rules.Classify(metric.Txt(metric.CategoryBattery, "battery.bat0.status", "Discharging"))
	if matched {
		t.Error("text values should never be classified")
	}
	if severity != SeverityOK {
		t.Errorf("severity = %v, want ok", severity)
	}
}

func TestClassifyNoMatchingRule(t *testing.T) {
	rules := RuleSet{{Match: "cpu.total", Warn: 85, Crit: 95}}

	severity, _, matched := rules.Classify(metric.Num(metric.CategoryNetwork, "net.rx_rate.eth0", "B/s", 1e9))
	if matched {
		t.Error("no rule should match a network rate")
	}
	if severity != SeverityOK {
		t.Errorf("severity = %v, want ok", severity)
	}
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()

	severity, _, matched := defaults.Classify(metric.Num(metric.CategoryCPU, "cpu.total", "%", 96))
	if !matched || severity != SeverityCrit {
		t.Errorf("cpu.total at 96%% = %v (matched %v), want crit", severity, matched)
	}

	severity, _, matched = defaults.Classify(metric.Num(metric.CategoryBattery, "battery.bat0.percent", "%", 5))
	if !matched || severity != SeverityCrit {
		t.Errorf("battery at 5%% = %v (matched %v), want crit", severity, matched)
	}

	severity, _, matched = defaults.Classify(metric.Num(metric.CategoryTemperature, "temp.nvme", "°C", 82))
	if !matched || severity != SeverityWarn {
		t.Errorf("temperature at 82°C = %v (matched %v), want warn", severity, matched)
	}

	if issues := Validate(defaults); len(issues) != 0 {
		t.Errorf("built-in defaults should validate cleanly, got %v", issues)
	}
}

func TestParseJSONC(t *testing.T) {
	data := []byte(`{
		// Tighter CPU bounds for a build box.
		"rules": [
			{"match": "cpu.total", "warn": 70, "crit": 90},
			{"match": "category:temperature", "warn": 75, "crit": 85}, // trailing comma below
		],
	}`)

	rules, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Match != "cpu.total" || rules[0].Warn != 70 {
		t.Errorf("unexpected first rule: %+v", rules[0])
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"rules": [{"match": }]}`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.jsonc")
	content := `{
		"rules": [
			{"match": "mem.used_percent", "warn": 70, "crit": 85},
		],
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rules) != 1 || rules[0].Match != "mem.used_percent" {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.jsonc")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		rules     RuleSet
		wantIssue string
	}{
		{
			name:      "empty match",
			rules:     RuleSet{{Warn: 10, Crit: 20}},
			wantIssue: "match is required",
		},
		{
			name:      "unknown category",
			rules:     RuleSet{{Match: "category:gpu", Warn: 10, Crit: 20}},
			wantIssue: `unknown category "gpu"`,
		},
		{
			name:      "zero thresholds",
			rules:     RuleSet{{Match: "cpu.total"}},
			wantIssue: "both zero",
		},
		{
			name:      "inverted thresholds",
			rules:     RuleSet{{Match: "cpu.total", Warn: 95, Crit: 85}},
			wantIssue: "crit must be >= warn",
		},
		{
			name:      "inverted below thresholds",
			rules:     RuleSet{{Match: "battery.*", Warn: 10, Crit: 20, Below: true}},
			wantIssue: "crit <= warn",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := Validate(test.rules)
			if len(issues) == 0 {
				t.Fatalf("expected an issue containing %q, got none", test.wantIssue)
			}
			found := false
			for _, issue := range issues {
				if strings.Contains(issue, test.wantIssue) {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue contains %q: %v", test.wantIssue, issues)
			}
		})
	}

	if issues := Validate(RuleSet{{Match: "cpu.total", Warn: 85, Crit: 95}}); len(issues) != 0 {
		t.Errorf("valid rule should produce no issues, got %v", issues)
	}
}
