package memory

import (
	"sync"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// Ensure ItemStore implements the interface.
var _ driven.ItemStore = (*ItemStore)(nil)

// ItemStore is an in-memory implementation of driven.ItemStore. It
// keeps the items exactly as ingested and re-derives the annotated
// snapshots (duplicate flags, open-tab flags, history metadata) every
// time a dataset is replaced.
type ItemStore struct {
	mu sync.RWMutex

	// raw holds the items as handed to Replace, before annotation.
	raw map[domain.Dataset][]domain.SearchItem

	// annotated holds the cross-referenced snapshots served to readers.
	annotated map[domain.Dataset][]domain.SearchItem

	// gens counts replacements per dataset.
	gens map[domain.Dataset]uint64
}

// NewItemStore creates an empty in-memory item store.
func NewItemStore() *ItemStore {
	return &ItemStore{
		raw:       make(map[domain.Dataset][]domain.SearchItem),
		annotated: make(map[domain.Dataset][]domain.SearchItem),
		gens:      make(map[domain.Dataset]uint64),
	}
}

// Replace swaps the full contents of one dataset and re-runs the
// annotation pass across all datasets.
func (s *ItemStore) Replace(d domain.Dataset, items []domain.SearchItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw[d] = append([]domain.SearchItem(nil), items...)
	s.gens[d]++
	s.annotate()
}

// Items returns the items a mode spans, concatenated in the mode's
// dataset order. The returned slice is a fresh snapshot.
func (s *ItemStore) Items(mode domain.SearchMode) []domain.SearchItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	datasets := mode.Datasets()
	total := 0
	for _, d := range datasets {
		total += len(s.annotated[d])
	}

	out := make([]domain.SearchItem, 0, total)
	for _, d := range datasets {
		out = append(out, s.annotated[d]...)
	}
	return out
}

// Dataset returns a snapshot of a single dataset.
func (s *ItemStore) Dataset(d domain.Dataset) []domain.SearchItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.SearchItem(nil), s.annotated[d]...)
}

// Generation returns a counter that increases whenever the dataset is
// replaced.
func (s *ItemStore) Generation(d domain.Dataset) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.gens[d]
}

// annotate rebuilds the annotated snapshots from the raw items. Caller
// must hold the write lock.
//
// Three cross-references are derived:
//   - bookmarks sharing a normalised URL are flagged Dupe
//   - bookmarks whose URL is open in a tab are flagged OpenTab
//   - bookmarks and tabs without visit metadata absorb VisitCount and
//     LastVisit from the history entry with the same URL
func (s *ItemStore) annotate() {
	bookmarks := append([]domain.SearchItem(nil), s.raw[domain.DatasetBookmarks]...)
	tabs := append([]domain.SearchItem(nil), s.raw[domain.DatasetTabs]...)
	history := append([]domain.SearchItem(nil), s.raw[domain.DatasetHistory]...)

	urlCount := make(map[string]int, len(bookmarks))
	for i := range bookmarks {
		if bookmarks[i].URL != "" {
			urlCount[bookmarks[i].URL]++
		}
	}
	for i := range bookmarks {
		bookmarks[i].Dupe = urlCount[bookmarks[i].URL] > 1
	}

	openURLs := make(map[string]bool, len(tabs))
	for i := range tabs {
		if tabs[i].URL != "" {
			openURLs[tabs[i].URL] = true
		}
	}
	for i := range bookmarks {
		bookmarks[i].OpenTab = openURLs[bookmarks[i].URL]
	}

	visits := make(map[string]domain.SearchItem, len(history))
	for i := range history {
		if history[i].URL != "" {
			visits[history[i].URL] = history[i]
		}
	}
	absorb := func(it *domain.SearchItem) {
		h, ok := visits[it.URL]
		if !ok {
			return
		}
		if it.VisitCount == 0 {
			it.VisitCount = h.VisitCount
		}
		if it.LastVisit.IsZero() {
			it.LastVisit = h.LastVisit
		}
	}
	for i := range bookmarks {
		absorb(&bookmarks[i])
	}
	for i := range tabs {
		absorb(&tabs[i])
	}

	s.annotated[domain.DatasetBookmarks] = bookmarks
	s.annotated[domain.DatasetTabs] = tabs
	s.annotated[domain.DatasetHistory] = history
}
