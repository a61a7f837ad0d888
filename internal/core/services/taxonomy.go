package services

import (
	"strings"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// taxonomyIndex memoises the tag and folder inventories of the bookmark
// dataset. It is rebuilt whenever the dataset generation moves.
type taxonomyIndex struct {
	gen     uint64
	tags    map[string][]string
	folders map[string][]string
}

// taxonomySearch finds items whose taxonomy string contains every
// marker-prefixed sub-term of the query. A bare marker matches every
// item that has the taxonomy at all.
func (s *SearchService) taxonomySearch(term string, field domain.TaxonomyField, items []domain.SearchItem) []int {
	marker := field.Marker()

	parts := strings.Split(strings.ToLower(term), marker)
	subterms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			subterms = append(subterms, marker+p)
		}
	}

	var out []int
	for i := range items {
		hay := items[i].TagMarksLower
		if field == domain.TaxonomyFolders {
			hay = items[i].FolderMarksLower
		}
		if hay == "" {
			continue
		}

		matched := true
		for _, sub := range subterms {
			if !strings.Contains(hay, sub) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, i)
		}
	}

	logger.Debug("Taxonomy: %d hits for %q in %s", len(out), term, field)
	return out
}

// ensureTaxonomy returns the memoised taxonomy index, rebuilding it when
// the bookmark dataset has been replaced.
func (s *SearchService) ensureTaxonomy() *taxonomyIndex {
	gen := s.store.Generation(domain.DatasetBookmarks)
	if s.taxonomy != nil && s.taxonomy.gen == gen {
		return s.taxonomy
	}

	idx := &taxonomyIndex{
		gen:     gen,
		tags:    make(map[string][]string),
		folders: make(map[string][]string),
	}
	for _, it := range s.store.Dataset(domain.DatasetBookmarks) {
		seenTags := make(map[string]bool, len(it.Tags))
		for _, tag := range it.Tags {
			key := strings.ToLower(tag)
			if !seenTags[key] {
				seenTags[key] = true
				idx.tags[key] = append(idx.tags[key], it.ID)
			}
		}

		seenFolders := make(map[string]bool, len(it.FolderPath))
		for _, folder := range it.FolderPath {
			key := strings.ToLower(folder)
			if !seenFolders[key] {
				seenFolders[key] = true
				idx.folders[key] = append(idx.folders[key], it.ID)
			}
		}
	}

	s.taxonomy = idx
	logger.Debug("Taxonomy index rebuilt: %d tags, %d folders (generation %d)", len(idx.tags), len(idx.folders), gen)
	return idx
}

// UniqueTags returns every known tag mapped to the IDs of the bookmarks
// carrying it. Keys are lowercased.
func (s *SearchService) UniqueTags() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyTaxonomy(s.ensureTaxonomy().tags)
}

// UniqueFolders returns every known folder name mapped to the IDs of
// the bookmarks filed under it. Keys are lowercased.
func (s *SearchService) UniqueFolders() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyTaxonomy(s.ensureTaxonomy().folders)
}

// copyTaxonomy clones the memoised map so callers cannot mutate it.
func copyTaxonomy(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, ids := range src {
		out[k] = append([]string(nil), ids...)
	}
	return out
}
