package driven

import (
	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// ItemStore holds the ingested search items. Implementations must be
// safe for concurrent use: the engine reads while ingestion replaces
// whole datasets.
type ItemStore interface {
	// Items returns the items a mode spans, concatenated in the mode's
	// dataset order. The returned slice is a stable snapshot; callers
	// must not mutate it.
	Items(mode domain.SearchMode) []domain.SearchItem

	// Dataset returns the items of a single dataset.
	Dataset(d domain.Dataset) []domain.SearchItem

	// Replace swaps the full contents of one dataset and re-runs the
	// annotation pass (duplicate flags, open-tab flags, history
	// metadata absorption) across all datasets.
	Replace(d domain.Dataset, items []domain.SearchItem)

	// Generation returns a counter that increases whenever the dataset
	// is replaced. Callers use it to detect staleness.
	Generation(d domain.Dataset) uint64
}
