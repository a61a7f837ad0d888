package services

import (
	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// cacheKey identifies one incremental matching cache. Precise and fuzzy
// narrowing state never mix, so each approach gets its own cache per
// mode.
type cacheKey struct {
	mode     domain.SearchMode
	approach domain.SearchApproach
}

// modeCache holds the per-mode matching state. The haystack is a
// projection of the mode's items at snapshot time; lastTerm and lastIdx
// let a prefix-extended query narrow the previous result set instead of
// rescanning everything.
type modeCache struct {
	// gens records the dataset generations the snapshot was built from.
	gens map[domain.Dataset]uint64

	// items is the snapshot the haystack indexes into.
	items []domain.SearchItem

	// haystack is one match string per item.
	haystack []string

	// lastTerm is the previous query. Empty means no query ran yet.
	lastTerm string

	// lastIdx are the item indexes the previous query matched. nil is
	// the "every item" sentinel; a full index set is never materialised.
	lastIdx []int

	// lastHits carries the previous fuzzy hits so an identical query can
	// reuse scores and positions. Unused by the precise cache.
	lastHits []fuzzyHit
}

// cacheFor returns the live cache for a mode and approach, rebuilding
// the snapshot when any spanned dataset has been replaced since.
func (s *SearchService) cacheFor(mode domain.SearchMode, approach domain.SearchApproach) *modeCache {
	key := cacheKey{mode: mode, approach: approach}
	c := s.caches[key]
	if c != nil && !s.stale(mode, c.gens) {
		return c
	}

	items := s.store.Items(mode)
	c = &modeCache{
		gens:     s.generations(mode),
		items:    items,
		haystack: make([]string, len(items)),
	}
	for i := range items {
		if approach == domain.ApproachFuzzy {
			c.haystack[i] = items[i].SearchString
		} else {
			c.haystack[i] = items[i].SearchStringLower
		}
	}
	s.caches[key] = c
	logger.Debug("Cache rebuilt: mode=%s approach=%s items=%d", mode, approach, len(items))
	return c
}

// generations snapshots the store generation of every dataset the mode
// spans.
func (s *SearchService) generations(mode domain.SearchMode) map[domain.Dataset]uint64 {
	gens := make(map[domain.Dataset]uint64, 3)
	for _, d := range mode.Datasets() {
		gens[d] = s.store.Generation(d)
	}
	return gens
}

// stale reports whether any spanned dataset moved past the recorded
// generation.
func (s *SearchService) stale(mode domain.SearchMode, gens map[domain.Dataset]uint64) bool {
	for _, d := range mode.Datasets() {
		if s.store.Generation(d) != gens[d] {
			return true
		}
	}
	return false
}

// ResetCache drops incremental matching state for the given mode and
// every mode sharing a dataset with it.
func (s *SearchService) ResetCache(mode domain.SearchMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for key := range s.caches {
		if sharesDataset(key.mode, mode) {
			delete(s.caches, key)
			dropped++
		}
	}
	if mode.Includes(domain.DatasetBookmarks) {
		s.taxonomy = nil
	}
	logger.Debug("Cache reset: mode=%s dropped=%d", mode, dropped)
}

// ResetAllCaches drops all incremental matching state.
func (s *SearchService) ResetAllCaches() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.caches = make(map[cacheKey]*modeCache)
	s.taxonomy = nil
	logger.Debug("All caches reset")
}

// sharesDataset reports whether two modes span a common dataset.
func sharesDataset(a, b domain.SearchMode) bool {
	for _, d := range a.Datasets() {
		if b.Includes(d) {
			return true
		}
	}
	return false
}
