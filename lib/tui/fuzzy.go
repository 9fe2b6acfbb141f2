// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult carries the outcome of a fuzzy match: a relevance score
// and the rune positions that matched, for highlight rendering. A
// zero FuzzyResult means no match.
type FuzzyResult struct {
	// Score is fzf's relevance score. Higher is better; zero means
	// the pattern did not match.
	Score int

	// Positions are the matched rune indices into the text, sorted
	// ascending.
	Positions []int
}

// NewSlab allocates the scratch space fzf's matcher reuses across
// calls. Sized to fzf's own per-worker defaults. Pass the same slab
// to every FuzzyMatch call in a scoring pass; pass nil for one-off
// matches.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch scores pattern against text using fzf's V2 algorithm
// (the same scoring interactive fzf uses: boundary bonuses, gap
// penalties, smart ordering). Matching is case-insensitive: the
// pattern is lowercased here and the matcher folds the text. Latin
// accents are normalized on both sides. An empty pattern matches
// nothing.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = unicode.ToLower(character)
	}
	lowered = algo.NormalizeRunes(lowered)

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil && len(*positions) > 0 {
		matched.Positions = *positions
		sort.Ints(matched.Positions)
	}
	return matched
}
