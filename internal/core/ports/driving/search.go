package driving

import (
	"context"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search runs one query and returns scored results, best first.
	// Terms shorter than the configured minimum surface default entries
	// for the active tab instead of matching.
	Search(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.Result, error)

	// UniqueTags returns every known tag mapped to the IDs of the
	// bookmarks carrying it.
	UniqueTags() map[string][]string

	// UniqueFolders returns every known folder name mapped to the IDs
	// of the bookmarks filed under it.
	UniqueFolders() map[string][]string

	// ResetCache drops incremental matching state for the given mode and
	// every mode sharing a dataset with it.
	ResetCache(mode domain.SearchMode)

	// ResetAllCaches drops all incremental matching state.
	ResetAllCaches()

	// Config returns the engine's active configuration.
	Config() domain.SearchConfig
}
