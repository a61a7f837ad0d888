package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
	"github.com/custodia-labs/omnibar/internal/core/ports/driving"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads browser profile data into the item store and
// keeps it fresh while watching profile files.
type IngestService struct {
	store   driven.ItemStore
	search  driving.SearchService
	watcher driven.ProfileWatcher
	sources []driven.ProfileSource
	cfg     domain.SearchConfig
}

// NewIngestService creates an ingest service. The watcher may be nil;
// Watch then blocks idle until the context ends.
func NewIngestService(
	store driven.ItemStore,
	search driving.SearchService,
	watcher driven.ProfileWatcher,
	sources []driven.ProfileSource,
	cfg domain.SearchConfig,
) *IngestService {
	return &IngestService{
		store:   store,
		search:  search,
		watcher: watcher,
		sources: sources,
		cfg:     cfg,
	}
}

// Browsers returns the browser names of the registered sources.
func (s *IngestService) Browsers() []string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Browser())
	}
	return names
}

// IngestAll loads bookmarks, tabs and history from every source
// concurrently. A failing source loses only its own data; whatever
// loaded is stored and the matching caches are reset.
func (s *IngestService) IngestAll(ctx context.Context) error {
	logger.Section("Ingestion")

	var g errgroup.Group
	loads := make(map[domain.Dataset][][]domain.SearchItem, 3)
	datasets := []domain.Dataset{domain.DatasetBookmarks, domain.DatasetTabs, domain.DatasetHistory}

	var mu sync.Mutex
	for _, d := range datasets {
		loads[d] = make([][]domain.SearchItem, len(s.sources))
	}
	for i, src := range s.sources {
		for _, d := range datasets {
			g.Go(func() error {
				items, err := s.load(ctx, src, d)
				if err != nil {
					logger.Warn("Loading %s from %s failed: %v", d, src.Browser(), err)
					return nil
				}
				mu.Lock()
				loads[d][i] = items
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("ingesting profiles: %w", err)
	}

	for _, d := range datasets {
		var merged []domain.SearchItem
		for _, items := range loads[d] {
			merged = append(merged, items...)
		}
		s.store.Replace(d, merged)
		logger.Info("Ingested %d %s", len(merged), d)
	}

	s.search.ResetAllCaches()
	return ctx.Err()
}

// IngestDataset reloads a single dataset from every source and resets
// the caches of every mode spanning it.
func (s *IngestService) IngestDataset(ctx context.Context, d domain.Dataset) error {
	var merged []domain.SearchItem
	for _, src := range s.sources {
		items, err := s.load(ctx, src, d)
		if err != nil {
			logger.Warn("Reloading %s from %s failed: %v", d, src.Browser(), err)
			continue
		}
		merged = append(merged, items...)
	}

	s.store.Replace(d, merged)
	s.search.ResetCache(modeFor(d))
	logger.Info("Reloaded %d %s", len(merged), d)
	return ctx.Err()
}

// Watch blocks until ctx is done, reloading datasets whenever their
// profile files change. Without a watcher it idles until ctx ends.
func (s *IngestService) Watch(ctx context.Context) error {
	if s.watcher == nil {
		logger.Debug("No watcher configured, live reload disabled")
		<-ctx.Done()
		return nil
	}

	watched := make(map[string]domain.Dataset)
	for _, src := range s.sources {
		for path, d := range src.WatchPaths() {
			if err := s.watcher.Add(path); err != nil {
				logger.Warn("Watching %s failed: %v", path, err)
				continue
			}
			watched[path] = d
			logger.Debug("Watching %s for %s changes", path, d)
		}
	}

	return s.watcher.Start(ctx, func(path string) {
		d, ok := watched[path]
		if !ok {
			return
		}
		logger.Debug("Profile change: %s (%s)", path, d)
		if err := s.IngestDataset(ctx, d); err != nil {
			logger.Warn("Reload after change failed: %v", err)
		}
	})
}

// load reads one dataset from one source.
func (s *IngestService) load(ctx context.Context, src driven.ProfileSource, d domain.Dataset) ([]domain.SearchItem, error) {
	switch d {
	case domain.DatasetBookmarks:
		return src.Bookmarks(ctx)
	case domain.DatasetTabs:
		return src.Tabs(ctx)
	case domain.DatasetHistory:
		q := driven.HistoryQuery{Limit: s.cfg.HistoryMaxItems}
		if s.cfg.HistoryDaysAgo > 0 {
			q.Since = time.Now().AddDate(0, 0, -s.cfg.HistoryDaysAgo)
		}
		return src.History(ctx, q)
	default:
		return nil, fmt.Errorf("%w: unknown dataset %q", domain.ErrInvalidInput, d)
	}
}

// modeFor maps a dataset to the narrowest search mode spanning it.
func modeFor(d domain.Dataset) domain.SearchMode {
	switch d {
	case domain.DatasetBookmarks:
		return domain.SearchModeBookmarks
	case domain.DatasetTabs:
		return domain.SearchModeTabs
	default:
		return domain.SearchModeHistory
	}
}
