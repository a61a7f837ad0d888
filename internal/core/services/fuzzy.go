package services

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// typoToleranceThreshold is the fuzziness level from which one-typo
// variants of the term are also tried.
const typoToleranceThreshold = 0.8

// insertionPenaltyDivisor turns an insertion count into a match quality:
// searchScore = max(0, 1 - insertions/5).
const insertionPenaltyDivisor = 5.0

// fuzzyHit is one approximate match against the cache snapshot.
type fuzzyHit struct {
	// idx is the item's position in the cache snapshot.
	idx int

	// insertions is the worst insertion count across all sub-terms.
	insertions int

	// positions are matched byte offsets within the item's SearchString.
	positions []int
}

// searchScore converts the insertion count into a quality in [0, 1].
func (h fuzzyHit) searchScore() float64 {
	return math.Max(0, 1-float64(h.insertions)/insertionPenaltyDivisor)
}

// fuzzyTolerance converts the configured fuzziness into the insertion
// budget handed to the matcher.
func fuzzyTolerance(fuzziness float64) int {
	return int(math.Round(fuzziness * 4.2))
}

// fuzzySearch finds items approximately matching every whitespace
// separated sub-term. Hits come back in ascending snapshot order.
//
// Like the precise matcher it narrows the previous result set when the
// query is a prefix extension, but only for pure ASCII terms: multibyte
// input shifts byte positions, so it always rescans the full snapshot.
func (s *SearchService) fuzzySearch(term string, c *modeCache) ([]fuzzyHit, error) {
	subterms := strings.Fields(term)
	if len(subterms) == 0 {
		return nil, nil
	}

	if term == c.lastTerm && c.lastHits != nil {
		logger.Debug("Fuzzy: identical term %q, serving cached %d hits", term, len(c.lastHits))
		return c.lastHits, nil
	}

	working := c.lastIdx
	if !isASCII(term) || !strings.HasPrefix(term, c.lastTerm) {
		working = nil
		logger.Debug("Fuzzy: full scan of %d items", len(c.haystack))
	} else if c.lastTerm != "" {
		logger.Debug("Fuzzy: narrowing %d candidates carried from %q", len(working), c.lastTerm)
	}

	opts := driven.MatchOptions{
		Tolerance:     fuzzyTolerance(s.cfg.Fuzziness),
		TypoTolerance: s.cfg.Fuzziness >= typoToleranceThreshold,
	}

	hits, err := s.fuzzyPass(subterms, working, c.haystack, opts)
	if err != nil {
		return nil, err
	}

	c.lastTerm = term
	c.lastIdx = indexesOf(hits)
	c.lastHits = hits
	logger.Debug("Fuzzy: %d hits for %q (tolerance=%d typo=%t)", len(hits), term, opts.Tolerance, opts.TypoTolerance)
	return hits, nil
}

// fuzzyPass runs the matcher once per sub-term, intersecting the
// candidate set as it goes. Positions accumulate across sub-terms and
// the worst insertion count wins.
func (s *SearchService) fuzzyPass(
	subterms []string, working []int, haystack []string, opts driven.MatchOptions,
) ([]fuzzyHit, error) {
	var hits []fuzzyHit

	for round, sub := range subterms {
		var selection []int
		if round > 0 {
			selection = indexesOf(hits)
		} else {
			selection = working
		}

		subHaystack := haystack
		if selection != nil {
			subHaystack = make([]string, len(selection))
			for i, idx := range selection {
				subHaystack[i] = haystack[idx]
			}
		}

		matches, err := s.matcher.Match(sub, subHaystack, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: sub-term %q: %v", domain.ErrMatcherFailure, sub, err)
		}

		next := make([]fuzzyHit, 0, len(matches))
		for _, m := range matches {
			if round == 0 {
				idx := m.Index
				if selection != nil {
					idx = selection[m.Index]
				}
				next = append(next, fuzzyHit{idx: idx, insertions: m.Insertions, positions: m.Positions})
				continue
			}

			prev := hits[m.Index]
			merged := fuzzyHit{
				idx:        prev.idx,
				insertions: prev.insertions,
				positions:  append(append([]int(nil), prev.positions...), m.Positions...),
			}
			if m.Insertions > merged.insertions {
				merged.insertions = m.Insertions
			}
			next = append(next, merged)
		}

		hits = next
		if len(hits) == 0 {
			break
		}
	}

	return hits, nil
}

// indexesOf projects hits onto their snapshot indexes.
func indexesOf(hits []fuzzyHit) []int {
	idx := make([]int, len(hits))
	for i, h := range hits {
		idx[i] = h.idx
	}
	return idx
}

// isASCII reports whether s contains only single-byte characters.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// dominantField returns the logical field holding the most matched
// positions, falling back to the title on ties or empty input.
func dominantField(it *domain.SearchItem, positions []int) domain.ItemField {
	counts := make(map[domain.ItemField]int, 4)
	for _, p := range positions {
		if f, _, ok := it.FieldAt(p); ok {
			counts[f]++
		}
	}

	best := domain.FieldTitle
	bestCount := counts[domain.FieldTitle]
	for _, f := range []domain.ItemField{domain.FieldURL, domain.FieldTags, domain.FieldFolder} {
		if counts[f] > bestCount {
			best, bestCount = f, counts[f]
		}
	}
	return best
}
