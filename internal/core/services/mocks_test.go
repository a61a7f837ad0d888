package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnibar/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// substringMatcher is a deterministic stand-in for the fuzzy library:
// it hits exactly when the term occurs as a literal substring, with
// zero insertions. It records the haystack sizes it was handed so
// tests can observe incremental narrowing.
type substringMatcher struct {
	err           error
	haystackSizes []int
}

func (m *substringMatcher) Match(term string, haystack []string, _ driven.MatchOptions) ([]driven.ApproximateHit, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.haystackSizes = append(m.haystackSizes, len(haystack))

	lt := strings.ToLower(term)
	var hits []driven.ApproximateHit
	for i, h := range haystack {
		at := strings.Index(strings.ToLower(h), lt)
		if at < 0 {
			continue
		}
		positions := make([]int, len(lt))
		for j := range positions {
			positions[j] = at + j
		}
		hits = append(hits, driven.ApproximateHit{Index: i, Positions: positions})
	}
	return hits, nil
}

// testConfig is the default configuration without web-search fallbacks,
// so matcher tests see only corpus hits.
func testConfig() domain.SearchConfig {
	cfg := domain.DefaultSearchConfig()
	cfg.SearchEngines = nil
	return cfg
}

// seedStore fills a store with a small browsing corpus.
func seedStore() *memory.ItemStore {
	store := memory.NewItemStore()
	store.Replace(domain.DatasetBookmarks, []domain.SearchItem{
		domain.NewBookmark("b1", "GitHub", "https://github.com", []string{"Dev"}, time.Time{}),
		domain.NewBookmark("b2", "My Gist", "https://gist.github.com", []string{"Dev", "Snippets"}, time.Time{}),
		domain.NewBookmark("b3", "Vue Docs +20 #frontend #vue", "https://vuejs.org/guide", []string{"Dev"}, time.Time{}),
	})
	store.Replace(domain.DatasetTabs, []domain.SearchItem{
		domain.NewTab("t1", "Hacker News", "https://news.ycombinator.com", time.Time{}),
	})
	store.Replace(domain.DatasetHistory, []domain.SearchItem{
		domain.NewHistoryEntry("h1", "The Go Blog", "https://go.dev/blog", 12, time.Now().Add(-time.Hour)),
	})
	return store
}

// newTestService builds a search service over the store with the
// substring stand-in matcher.
func newTestService(t *testing.T, store driven.ItemStore, cfg domain.SearchConfig) (*SearchService, *substringMatcher) {
	t.Helper()
	matcher := &substringMatcher{}
	svc, err := NewSearchService(store, matcher, cfg)
	require.NoError(t, err)
	return svc, matcher
}
