// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one string against a pattern.
type FuzzyResult struct {
	// Score is positive for a match and zero otherwise. Higher is a
	// tighter match.
	Score int

	// Positions are the rune offsets in the text that matched pattern
	// characters, in ascending order. Nil when there is no match.
	Positions []int
}

var initAlgo sync.Once

// FuzzyMatch matches pattern against text with fzf's V2 algorithm,
// case-insensitively. An empty pattern scores zero. slab may be nil;
// callers matching many strings in a row pass a reused slab to avoid
// allocating scoring matrices per call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	initAlgo.Do(func() { algo.Init("default") })

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = unicode.ToLower(character)
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, false, true, &chars, lowered, true, slab)
	if result.Score <= 0 || result.Start < 0 {
		return FuzzyResult{}
	}

	var sorted []int
	if positions != nil {
		sorted = make([]int, len(*positions))
		copy(sorted, *positions)
		slices.Sort(sorted)
	}
	return FuzzyResult{Score: result.Score, Positions: sorted}
}

// NewSlab returns a scoring slab sized for matching short strings.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}
