// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package alert

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/sysvitals/vitals/lib/metric"
)

// ruleFile is the on-disk document shape: a single "rules" array so
// the file can grow other sections later without breaking.
type ruleFile struct {
	Rules []Rule `json:"rules"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a RuleSet. Rules keep their file order.
func Parse(data []byte) (RuleSet, error) {
	stripped := jsonc.ToJSON(data)

	var file ruleFile
	if err := json.Unmarshal(stripped, &file); err != nil {
		return nil, fmt.Errorf("parsing threshold rules: %w", err)
	}

	return RuleSet(file.Rules), nil
}

// Load reads a JSONC threshold file from disk and parses it. Returns
// a descriptive error if the file cannot be read or the JSON is
// malformed.
func Load(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rules, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rules, nil
}

// Validate checks a RuleSet for structural issues. Returns a list of
// human-readable issue descriptions. An empty list means the rules
// are valid.
//
// Structural checks include:
//   - Each rule must have a non-empty match pattern
//   - "category:" patterns must name a known category
//   - Warn and crit cannot both be zero (the rule would never fire)
//   - Thresholds must be ordered: crit >= warn, or crit <= warn for
//     below rules
func Validate(rules RuleSet) []string {
	var issues []string

	for index, rule := range rules {
		prefix := fmt.Sprintf("rules[%d]", index)
		if rule.Match == "" {
			issues = append(issues, fmt.Sprintf("%s: match is required", prefix))
			continue
		}
		prefix = fmt.Sprintf("%s %q", prefix, rule.Match)

		if categoryName, isCategory := strings.CutPrefix(rule.Match, "category:"); isCategory {
			if _, known := metric.CategoryByName(categoryName); !known {
				issues = append(issues, fmt.Sprintf("%s: unknown category %q", prefix, categoryName))
			}
		}

		if rule.Warn == 0 && rule.Crit == 0 {
			issues = append(issues, fmt.Sprintf("%s: warn and crit thresholds are both zero", prefix))
			continue
		}

		if rule.Below {
			if rule.Crit > rule.Warn {
				issues = append(issues, fmt.Sprintf(
					"%s: below rules need crit <= warn (got warn %v, crit %v)",
					prefix, rule.Warn, rule.Crit,
				))
			}
		} else if rule.Crit < rule.Warn {
			issues = append(issues, fmt.Sprintf(
				"%s: crit must be >= warn (got warn %v, crit %v)",
				prefix, rule.Warn, rule.Crit,
			))
		}
	}

	return issues
}
