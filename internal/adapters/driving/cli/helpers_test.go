package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// mockSearchService returns canned results and records the last call.
type mockSearchService struct {
	lastTerm string
	lastOpts domain.SearchOptions
	results  []domain.Result
	err      error
}

func (m *mockSearchService) Search(_ context.Context, term string, opts domain.SearchOptions) ([]domain.Result, error) {
	m.lastTerm = term
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) UniqueTags() map[string][]string {
	return map[string][]string{
		"dev": {"b1", "b2"},
		"go":  {"b1"},
	}
}

func (m *mockSearchService) UniqueFolders() map[string][]string {
	return map[string][]string{"Dev": {"b1", "b2", "b3"}}
}

func (m *mockSearchService) ResetCache(domain.SearchMode) {}
func (m *mockSearchService) ResetAllCaches()              {}

func (m *mockSearchService) Config() domain.SearchConfig {
	return domain.DefaultSearchConfig()
}

type mockIngestService struct {
	watched bool
}

func (m *mockIngestService) IngestAll(context.Context) error                  { return nil }
func (m *mockIngestService) IngestDataset(context.Context, domain.Dataset) error { return nil }
func (m *mockIngestService) Browsers() []string                               { return []string{"chromium"} }

func (m *mockIngestService) Watch(ctx context.Context) error {
	m.watched = true
	<-ctx.Done()
	return nil
}

type mockActionService struct {
	opened []string
	copied []string
}

func (m *mockActionService) Open(_ context.Context, r *domain.Result) error {
	m.opened = append(m.opened, r.Item.OriginalURL)
	return nil
}

func (m *mockActionService) CopyURL(_ context.Context, r *domain.Result) error {
	m.copied = append(m.copied, r.Item.OriginalURL)
	return nil
}

// mockResults builds a small canned result list.
func mockResults() []domain.Result {
	bookmark := domain.NewBookmark("b1", "GitHub #dev", "https://github.com/", []string{"Dev"}, time.Time{})
	bookmark.LastVisit = time.Now().Add(-2 * time.Hour)
	bookmark.Dupe = true
	tab := domain.NewTab("t1", "Hacker News", "https://news.ycombinator.com/", time.Time{})
	return []domain.Result{
		{Item: bookmark, Score: 111, SearchScore: 1, Approach: domain.ApproachPrecise},
		{Item: tab, Score: 71, SearchScore: 1, Approach: domain.ApproachPrecise},
	}
}

// setupTestServices injects mocks and returns a cleanup restoring the
// previous services.
func setupTestServices() (search *mockSearchService, cleanup func()) {
	oldSearch, oldIngest, oldAction := searchService, ingestService, actionService
	search = &mockSearchService{results: mockResults()}
	SetServices(&Services{
		Search:       search,
		Ingest:       &mockIngestService{},
		ResultAction: &mockActionService{},
	})
	return search, func() {
		searchService, ingestService, actionService = oldSearch, oldIngest, oldAction
	}
}
