// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/tui"
)

// FilterModel implements the metric filter: a case-insensitive
// substring match across name, category label, and unit decides which
// values stay visible, and fzf's fuzzy scorer orders the survivors and
// supplies highlight positions for the name column. The filter
// composes with tabs: the tab chooses the base set (Overview/Alerts)
// and the filter narrows it.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus (the
	// user pressed / to start typing).
	Active bool

	// slab is fzf's reusable matcher scratch space, allocated on
	// first use and shared across every match in a scoring pass.
	slab *util.Slab
}

// Matches reports whether a value survives the current filter. An
// empty filter matches everything. The query matches against the
// metric name, its category label, and its unit.
func (filter *FilterModel) Matches(value metric.Value) bool {
	if filter.Input == "" {
		return true
	}
	query := strings.ToLower(filter.Input)

	if strings.Contains(strings.ToLower(value.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(value.Category.String()), query) {
		return true
	}
	if value.Unit != "" && strings.Contains(strings.ToLower(value.Unit), query) {
		return true
	}
	return false
}

// FilterResult pairs a surviving value with its fuzzy score and the
// matched rune positions in its name. Values kept by a category or
// unit match (but whose name did not fuzzy-match) carry a zero score
// and no positions; they sort after name matches.
type FilterResult struct {
	Value         metric.Value
	Score         int
	NamePositions []int
}

// ApplyFuzzy filters values and orders the survivors by descending
// fuzzy score against the metric name. Survivors with equal scores
// keep their snapshot order, so an empty filter returns the input
// unchanged (with zero scores).
func (filter *FilterModel) ApplyFuzzy(values []metric.Value) []FilterResult {
	results := make([]FilterResult, 0, len(values))
	if filter.Input == "" {
		for _, value := range values {
			results = append(results, FilterResult{Value: value})
		}
		return results
	}

	if filter.slab == nil {
		filter.slab = tui.NewSlab()
	}
	pattern := []rune(filter.Input)

	for _, value := range values {
		if !filter.Matches(value) {
			continue
		}
		matched := tui.FuzzyMatch(value.Name, pattern, filter.slab)
		results = append(results, FilterResult{
			Value:         value,
			Score:         matched.Score,
			NamePositions: matched.Positions,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// HandleRune processes a character typed while the filter is active.
// Returns true if the input changed.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. It replaces the tab bar line while the
// filter is active or has text, so the layout never shifts. Returns
// empty string when the filter is hidden.
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}
