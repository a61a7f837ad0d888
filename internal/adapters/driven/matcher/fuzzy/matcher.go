// Package fuzzy adapts the sahilm/fuzzy library to the engine's
// approximate matcher port. The library does case-insensitive
// subsequence matching and reports matched byte positions, which the
// adapter converts into the insertion counts the engine scores with.
package fuzzy

import (
	"fmt"
	"sort"

	sahilm "github.com/sahilm/fuzzy"

	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// typoMinTermLength is the shortest term the typo retry applies to.
// Deleting a rune from a two-character term matches far too much.
const typoMinTermLength = 3

// Ensure Matcher implements the interface.
var _ driven.ApproximateMatcher = (*Matcher)(nil)

// Matcher finds approximate term occurrences in haystack strings.
// The zero value is ready to use; a Matcher is stateless and safe for
// concurrent use.
type Matcher struct{}

// New creates a fuzzy matcher.
func New() *Matcher {
	return &Matcher{}
}

// Match returns a hit for every haystack string the term matches as a
// subsequence with at most opts.Tolerance characters inserted between
// the first and last matched character. With opts.TypoTolerance,
// strings rejected outright are retried against one-rune-deletion
// variants of the term, charged one extra insertion.
//
// Hits come back in ascending haystack order. Panics inside the
// underlying library surface as errors.
func (m *Matcher) Match(term string, haystack []string, opts driven.MatchOptions) (hits []driven.ApproximateHit, err error) {
	defer func() {
		if r := recover(); r != nil {
			hits = nil
			err = fmt.Errorf("fuzzy matcher panic on term %q: %v", term, r)
		}
	}()

	if term == "" || len(haystack) == 0 {
		return nil, nil
	}

	byIndex := make(map[int]driven.ApproximateHit, len(haystack))
	for _, match := range sahilm.Find(term, haystack) {
		ins := insertions(match.MatchedIndexes)
		if ins > opts.Tolerance {
			continue
		}
		byIndex[match.Index] = driven.ApproximateHit{
			Index:      match.Index,
			Insertions: ins,
			Positions:  append([]int(nil), match.MatchedIndexes...),
		}
	}

	if opts.TypoTolerance && len([]rune(term)) >= typoMinTermLength {
		m.typoPass(term, haystack, opts, byIndex)
	}

	hits = make([]driven.ApproximateHit, 0, len(byIndex))
	for _, h := range byIndex {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Index < hits[j].Index })
	return hits, nil
}

// typoPass retries haystack strings without a hit using every
// one-rune-deletion variant of the term. A variant hit costs one extra
// insertion so clean matches always outrank typo matches.
func (m *Matcher) typoPass(term string, haystack []string, opts driven.MatchOptions, byIndex map[int]driven.ApproximateHit) {
	var retryIdx []int
	for i := range haystack {
		if _, ok := byIndex[i]; !ok {
			retryIdx = append(retryIdx, i)
		}
	}
	if len(retryIdx) == 0 {
		return
	}

	retry := make([]string, len(retryIdx))
	for i, idx := range retryIdx {
		retry[i] = haystack[idx]
	}

	for _, variant := range deletionVariants(term) {
		for _, match := range sahilm.Find(variant, retry) {
			ins := insertions(match.MatchedIndexes) + 1
			if ins > opts.Tolerance+1 {
				continue
			}
			idx := retryIdx[match.Index]
			if prev, ok := byIndex[idx]; ok && prev.Insertions <= ins {
				continue
			}
			byIndex[idx] = driven.ApproximateHit{
				Index:      idx,
				Insertions: ins,
				Positions:  append([]int(nil), match.MatchedIndexes...),
			}
		}
	}
}

// insertions counts the unmatched characters strictly between the first
// and last matched position. The library reports positions ascending.
func insertions(positions []int) int {
	if len(positions) < 2 {
		return 0
	}
	span := positions[len(positions)-1] - positions[0] + 1
	return span - len(positions)
}

// deletionVariants returns the term with each rune removed once.
func deletionVariants(term string) []string {
	runes := []rune(term)
	variants := make([]string, 0, len(runes))
	for i := range runes {
		v := make([]rune, 0, len(runes)-1)
		v = append(v, runes[:i]...)
		v = append(v, runes[i+1:]...)
		variants = append(variants, string(v))
	}
	return variants
}
