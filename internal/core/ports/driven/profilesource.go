package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// HistoryQuery bounds a history read.
type HistoryQuery struct {
	// Since excludes visits older than this instant.
	Since time.Time

	// Limit caps the number of rows, newest first. Zero means no cap.
	Limit int
}

// ProfileSource reads searchable items out of one browser profile.
// Implementations wrap a concrete browser's on-disk formats.
type ProfileSource interface {
	// Browser identifies the backing browser ("chromium", "firefox").
	Browser() string

	// Validate checks that the profile exists and is readable.
	Validate(ctx context.Context) error

	// Bookmarks reads all bookmarks.
	Bookmarks(ctx context.Context) ([]domain.SearchItem, error)

	// Tabs reads the currently open tabs. Sources without tab data
	// return an empty slice.
	Tabs(ctx context.Context) ([]domain.SearchItem, error)

	// History reads visits within the query bounds.
	History(ctx context.Context, q HistoryQuery) ([]domain.SearchItem, error)

	// WatchPaths returns the profile files to watch for changes, keyed
	// by the dataset each file feeds.
	WatchPaths() map[string]domain.Dataset

	// Close releases resources.
	Close() error
}
