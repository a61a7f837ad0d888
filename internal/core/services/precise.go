package services

import (
	"strings"

	"github.com/custodia-labs/omnibar/internal/logger"
)

// preciseSearch finds items whose search string contains every
// whitespace-separated sub-term of the query, case-insensitively.
// Returned indexes are ascending positions into the cache snapshot.
//
// The query is compared against the cache's previous term: an identical
// term returns the previous result set unchanged, and a prefix-extended
// term narrows the previous result set instead of rescanning the whole
// haystack.
func (s *SearchService) preciseSearch(term string, c *modeCache) []int {
	subterms := strings.Fields(strings.ToLower(term))
	if len(subterms) == 0 {
		return nil
	}

	if term == c.lastTerm {
		logger.Debug("Precise: identical term %q, serving cached %d hits", term, len(c.lastIdx))
		return c.lastIdx
	}

	working := c.lastIdx
	if strings.HasPrefix(term, c.lastTerm) {
		if c.lastTerm != "" {
			logger.Debug("Precise: narrowing %d candidates carried from %q", len(working), c.lastTerm)
		}
	} else {
		working = nil
		logger.Debug("Precise: full scan of %d items", len(c.haystack))
	}

	for _, sub := range subterms {
		working = filterContains(c.haystack, working, sub)
		if len(working) == 0 {
			break
		}
	}
	if working == nil {
		working = []int{}
	}

	c.lastTerm = term
	c.lastIdx = working
	logger.Debug("Precise: %d hits for %q", len(working), term)
	return working
}

// filterContains keeps the candidate indexes whose haystack entry
// contains sub. A nil candidate set means every index is a candidate.
func filterContains(haystack []string, candidates []int, sub string) []int {
	if candidates == nil {
		out := make([]int, 0, len(haystack)/4+1)
		for i, h := range haystack {
			if strings.Contains(h, sub) {
				out = append(out, i)
			}
		}
		return out
	}

	out := make([]int, 0, len(candidates))
	for _, i := range candidates {
		if strings.Contains(haystack[i], sub) {
			out = append(out, i)
		}
	}
	return out
}
