// Package firefox reads bookmarks and history out of a Firefox
// profile's places.sqlite database. The database is copied before
// reading because a running Firefox holds it locked.
package firefox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ProfileSource = (*Source)(nil)

// Source reads one Firefox profile directory.
type Source struct {
	profileDir string
	mu         sync.Mutex
	closed     bool
}

// New creates a source for the given profile directory.
func New(profileDir string) *Source {
	return &Source{profileDir: profileDir}
}

// Browser returns the connector type identifier.
func (s *Source) Browser() string {
	return "firefox"
}

// Validate checks that the profile directory holds a places database.
func (s *Source) Validate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSourceClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(s.placesPath()); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", s.profileDir, domain.ErrProfileNotFound)
		}
		return fmt.Errorf("checking profile: %w", err)
	}
	return nil
}

// Tabs returns an empty slice. Firefox keeps its session in an
// lz4-compressed sessionstore blob; open tabs come from a session
// export file via the tabexport source instead.
func (s *Source) Tabs(ctx context.Context) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	return []domain.SearchItem{}, nil
}

// WatchPaths returns the profile files to watch for changes. Bookmark
// edits and visits both land in places.sqlite; the file is mapped to
// the history dataset because visits dominate its write traffic.
func (s *Source) WatchPaths() map[string]domain.Dataset {
	return map[string]domain.Dataset{
		s.placesPath(): domain.DatasetHistory,
	}
}

// Close releases the source.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Source) placesPath() string {
	return filepath.Join(s.profileDir, "places.sqlite")
}

func (s *Source) checkOpen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSourceClosed
	}
	return ctx.Err()
}

// prTime converts a Firefox timestamp (microseconds since the Unix
// epoch) to time.Time. Zero and negative values map to the zero time.
func prTime(micros int64) time.Time {
	if micros <= 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}

// toPRMicros converts a time.Time to a Firefox timestamp for use in
// query bounds.
func toPRMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}
