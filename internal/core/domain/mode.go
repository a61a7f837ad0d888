package domain

import "strings"

const unknownDescription = "Unknown"

// SearchMode selects which datasets a query runs against.
type SearchMode string

// Available search modes.
const (
	// SearchModeBookmarks searches saved bookmarks only.
	SearchModeBookmarks SearchMode = "bookmarks"

	// SearchModeTabs searches currently open tabs only.
	SearchModeTabs SearchMode = "tabs"

	// SearchModeHistory searches browsing history. Open tabs are included:
	// a tab that is open now is also the most recently visited thing.
	SearchModeHistory SearchMode = "history"

	// SearchModeAll searches bookmarks, tabs and history together.
	SearchModeAll SearchMode = "all"
)

// IsValid reports whether the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeBookmarks, SearchModeTabs, SearchModeHistory, SearchModeAll:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeBookmarks:
		return "Bookmarks"
	case SearchModeTabs:
		return "Open Tabs"
	case SearchModeHistory:
		return "History (and open tabs)"
	case SearchModeAll:
		return "Bookmarks, Tabs and History"
	default:
		return unknownDescription
	}
}

// Datasets returns the datasets the mode spans, in scan order.
func (m SearchMode) Datasets() []Dataset {
	switch m {
	case SearchModeBookmarks:
		return []Dataset{DatasetBookmarks}
	case SearchModeTabs:
		return []Dataset{DatasetTabs}
	case SearchModeHistory:
		return []Dataset{DatasetTabs, DatasetHistory}
	case SearchModeAll:
		return []Dataset{DatasetBookmarks, DatasetTabs, DatasetHistory}
	default:
		return nil
	}
}

// Includes reports whether the mode spans the given dataset.
func (m SearchMode) Includes(d Dataset) bool {
	for _, ds := range m.Datasets() {
		if ds == d {
			return true
		}
	}
	return false
}

// AllSearchModes returns all available search modes.
func AllSearchModes() []SearchMode {
	return []SearchMode{
		SearchModeBookmarks,
		SearchModeTabs,
		SearchModeHistory,
		SearchModeAll,
	}
}

// Dataset identifies one of the item collections held by the store.
// A SearchMode expands to one or more datasets.
type Dataset string

// Available datasets.
const (
	DatasetBookmarks Dataset = "bookmarks"
	DatasetTabs      Dataset = "tabs"
	DatasetHistory   Dataset = "history"
)

// SearchStrategy selects the text matching algorithm.
type SearchStrategy string

// Available search strategies.
const (
	// StrategyPrecise requires every whitespace-separated term to appear
	// as an exact substring.
	StrategyPrecise SearchStrategy = "precise"

	// StrategyFuzzy tolerates gaps and, at high fuzziness, single typos.
	StrategyFuzzy SearchStrategy = "fuzzy"
)

// IsValid reports whether the strategy is recognised.
func (s SearchStrategy) IsValid() bool {
	return s == StrategyPrecise || s == StrategyFuzzy
}

// String returns the string representation.
func (s SearchStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s SearchStrategy) Description() string {
	switch s {
	case StrategyPrecise:
		return "Precise (exact substrings)"
	case StrategyFuzzy:
		return "Fuzzy (typo tolerant)"
	default:
		return unknownDescription
	}
}

// SearchApproach records which matcher produced a result.
type SearchApproach string

// Available search approaches.
const (
	ApproachPrecise  SearchApproach = "precise"
	ApproachFuzzy    SearchApproach = "fuzzy"
	ApproachTaxonomy SearchApproach = "taxonomy"

	// ApproachDefault marks entries surfaced without a usable search term,
	// such as the items matching the active tab URL.
	ApproachDefault SearchApproach = "default"
)

// String returns the string representation.
func (a SearchApproach) String() string {
	return string(a)
}

// TaxonomyField identifies which taxonomy a marker query addresses.
type TaxonomyField string

// Available taxonomy fields.
const (
	TaxonomyTags    TaxonomyField = "tags"
	TaxonomyFolders TaxonomyField = "folders"
)

// String returns the string representation.
func (f TaxonomyField) String() string {
	return string(f)
}

// Marker returns the character that routes a query to this taxonomy.
func (f TaxonomyField) Marker() string {
	if f == TaxonomyFolders {
		return FolderMarker
	}
	return TagMarker
}

// TaxonomyFor returns the taxonomy field a term addresses. A term whose
// first character is the tag marker searches tags, the folder marker
// searches folders. Other terms address no taxonomy.
func TaxonomyFor(term string) (TaxonomyField, bool) {
	switch {
	case strings.HasPrefix(term, TagMarker):
		return TaxonomyTags, true
	case strings.HasPrefix(term, FolderMarker):
		return TaxonomyFolders, true
	default:
		return "", false
	}
}
