// Package chromium reads bookmarks and history out of a Chromium
// family profile (Chrome, Chromium, Brave, Edge). Bookmarks live in
// the profile's Bookmarks JSON file; history in the History SQLite
// database, which is copied before reading because a running browser
// holds an exclusive lock on it.
package chromium

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

// Chromium timestamps count microseconds since 1601-01-01 (the Windows
// FILETIME epoch), 11644473600 seconds before the Unix epoch.
const webkitEpochOffset = 11644473600

// Source reads one Chromium profile directory.
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
	return "chromium"
}

// Validate checks that the profile directory holds a readable
// Bookmarks file.
func (s *Source) Validate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSourceClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(s.bookmarksPath()); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", s.profileDir, domain.ErrProfileNotFound)
		}
		return fmt.Errorf("checking profile: %w", err)
	}
	return nil
}

// Tabs returns an empty slice. Chromium's on-disk session format is a
// proprietary SNSS blob; open tabs come from a session export file via
// the tabexport source instead.
func (s *Source) Tabs(ctx context.Context) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	return []domain.SearchItem{}, nil
}

// WatchPaths returns the profile files to watch for changes.
func (s *Source) WatchPaths() map[string]domain.Dataset {
	return map[string]domain.Dataset{
		s.bookmarksPath(): domain.DatasetBookmarks,
		s.historyPath():   domain.DatasetHistory,
	}
}

// Close releases the source.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Source) bookmarksPath() string {
	return filepath.Join(s.profileDir, "Bookmarks")
}

func (s *Source) historyPath() string {
	return filepath.Join(s.profileDir, "History")
}

func (s *Source) checkOpen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSourceClosed
	}
	return ctx.Err()
}

// webkitTime converts a Chromium timestamp to time.Time. Zero and
// negative values map to the zero time.
func webkitTime(micros int64) time.Time {
	if micros <= 0 {
		return time.Time{}
	}
	unixMicros := micros - webkitEpochOffset*1e6
	if unixMicros <= 0 {
		return time.Time{}
	}
	return time.UnixMicro(unixMicros).UTC()
}

// toWebkitMicros converts a time.Time to a Chromium timestamp for use
// in query bounds.
func toWebkitMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro() + webkitEpochOffset*1e6
}
