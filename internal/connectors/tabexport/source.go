// Package tabexport reads open tabs from a JSON session export file,
// the interchange shape produced by tab-export browser extensions
// (an array of {id, title, url, windowId, lastAccessed} objects).
// Browsers do not expose their live session in a readable on-disk
// format, so exports are the portable way to get tabs into the index.
package tabexport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ProfileSource = (*Source)(nil)

// exportedTab is one entry of the export file. lastAccessed is
// milliseconds since the Unix epoch, as produced by the webextension
// tabs API.
type exportedTab struct {
	ID           *int64 `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	WindowID     int64  `json:"windowId"`
	LastAccessed int64  `json:"lastAccessed"`
}

// Source reads one tab export file.
type Source struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// New creates a source for the given export file.
func New(path string) *Source {
	return &Source{path: path}
}

// Browser returns the connector type identifier.
func (s *Source) Browser() string {
	return "tabexport"
}

// Validate checks that the export file exists.
func (s *Source) Validate(ctx context.Context) error {
	if err := s.checkOpen(ctx); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", s.path, domain.ErrProfileNotFound)
		}
		return fmt.Errorf("checking export file: %w", err)
	}
	return nil
}

// Bookmarks returns an empty slice; exports carry only tabs.
func (s *Source) Bookmarks(ctx context.Context) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	return []domain.SearchItem{}, nil
}

// Tabs reads the exported tabs. Entries without an id (some export
// extensions omit it for discarded tabs) get a generated one so every
// item stays addressable.
func (s *Source) Tabs(ctx context.Context) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, domain.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("reading tab export: %w", err)
	}

	var tabs []exportedTab
	if err := json.Unmarshal(raw, &tabs); err != nil {
		return nil, fmt.Errorf("parsing tab export: %w", err)
	}

	items := make([]domain.SearchItem, 0, len(tabs))
	for _, tab := range tabs {
		if tab.URL == "" {
			continue
		}
		id := uuid.NewString()
		if tab.ID != nil {
			id = strconv.FormatInt(*tab.ID, 10)
		}
		var lastAccess time.Time
		if tab.LastAccessed > 0 {
			lastAccess = time.UnixMilli(tab.LastAccessed).UTC()
		}
		items = append(items, domain.NewTab(id, tab.Title, tab.URL, lastAccess))
	}
	return items, nil
}

// History returns an empty slice; exports carry only tabs.
func (s *Source) History(ctx context.Context, _ driven.HistoryQuery) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}
	return []domain.SearchItem{}, nil
}

// WatchPaths returns the export file keyed by the tabs dataset.
func (s *Source) WatchPaths() map[string]domain.Dataset {
	return map[string]domain.Dataset{
		s.path: domain.DatasetTabs,
	}
}

// Close releases the source.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Source) checkOpen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSourceClosed
	}
	return ctx.Err()
}
