// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package alert classifies metric values against warning and critical
// thresholds. A RuleSet is an ordered list of rules; the first rule
// whose match pattern selects a metric decides its severity. User
// rules are authored as JSONC files (JSON extended with comments and
// trailing commas) and are consulted ahead of the built-in defaults.
package alert

import (
	"strings"

	"github.com/sysvitals/vitals/lib/metric"
)

// Severity classifies a metric value against its thresholds.
type Severity int

const (
	// SeverityOK means the value is within normal bounds, or no rule
	// applies to it.
	SeverityOK Severity = iota
	// SeverityWarn means the value crossed the warning threshold.
	SeverityWarn
	// SeverityCrit means the value crossed the critical threshold.
	SeverityCrit
)

// String returns the lowercase severity name.
func (severity Severity) String() string {
	switch severity {
	case SeverityWarn:
		return "warn"
	case SeverityCrit:
		return "crit"
	default:
		return "ok"
	}
}

// Rule binds warning and critical thresholds to a set of metrics.
//
// Match selects the metrics the rule applies to:
//   - an exact metric name ("cpu.total")
//   - a name prefix ending in ".*" ("disk.used_percent.*")
//   - a whole category ("category:temperature")
type Rule struct {
	Match string  `json:"match"`
	Warn  float64 `json:"warn"`
	Crit  float64 `json:"crit"`

	// Below inverts the comparison: the value is unhealthy when it
	// falls at or below the thresholds. Used for metrics where low is
	// bad, such as battery charge.
	Below bool `json:"below,omitempty"`
}

// Matches reports whether the rule selects the given value.
func (rule Rule) Matches(value metric.Value) bool {
	if categoryName, isCategory := strings.CutPrefix(rule.Match, "category:"); isCategory {
		category, known := metric.CategoryByName(categoryName)
		return known && value.Category == category
	}
	if strings.HasSuffix(rule.Match, ".*") {
		return strings.HasPrefix(value.Name, strings.TrimSuffix(rule.Match, "*"))
	}
	return value.Name == rule.Match
}

// Severity classifies number against the rule's thresholds.
func (rule Rule) Severity(number float64) Severity {
	if rule.Below {
		switch {
		case number <= rule.Crit:
			return SeverityCrit
		case number <= rule.Warn:
			return SeverityWarn
		}
		return SeverityOK
	}
	switch {
	case number >= rule.Crit:
		return SeverityCrit
	case number >= rule.Warn:
		return SeverityWarn
	}
	return SeverityOK
}

// RuleSet is an ordered list of rules. Earlier rules win: compose user
// rules ahead of Defaults so a file rule can override a built-in one
// for the same metric.
type RuleSet []Rule

// Classify returns the severity of value under the first matching
// rule, the rule that decided it, and whether any rule matched. Text
// values are never classified.
func (rules RuleSet) Classify(value metric.Value) (Severity, Rule, bool) {
	if value.Kind != metric.KindNumber {
		return SeverityOK, Rule{}, false
	}
	for _, rule := range rules {
		if rule.Matches(value) {
			return rule.Severity(value.Number), rule, true
		}
	}
	return SeverityOK, Rule{}, false
}

// Defaults returns the built-in thresholds applied when no user rule
// matches a metric. Percent thresholds follow common operational
// practice; battery uses Below since low charge is the unhealthy
// direction.
func Defaults() RuleSet {
	return RuleSet{
		{Match: "cpu.total", Warn: 85, Crit: 95},
		{Match: "mem.used_percent", Warn: 80, Crit: 92},
		{Match: "swap.used_percent", Warn: 60, Crit: 85},
		{Match: "disk.used_percent.*", Warn: 85, Crit: 95},
		{Match: "category:temperature", Warn: 80, Crit: 95},
		{Match: "battery.*", Warn: 20, Crit: 10, Below: true},
	}
}
