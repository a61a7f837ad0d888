package driving

import (
	"context"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// IngestService loads browser profile data into the item store.
type IngestService interface {
	// IngestAll loads bookmarks, tabs and history from every source.
	// Partial failures are logged, not fatal: one unreadable profile
	// must not blank the others.
	IngestAll(ctx context.Context) error

	// IngestDataset reloads a single dataset from every source.
	IngestDataset(ctx context.Context, d domain.Dataset) error

	// Watch blocks until ctx is done, reloading datasets whenever their
	// profile files change.
	Watch(ctx context.Context) error

	// Browsers returns the browser names of the registered sources.
	Browsers() []string
}
