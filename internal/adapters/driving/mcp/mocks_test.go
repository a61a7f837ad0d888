package mcp

import (
	"context"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	lastTerm string
	lastOpts domain.SearchOptions
	results  []domain.Result
	tags     map[string][]string
	folders  map[string][]string
	err      error
}

func (m *mockSearchService) Search(
	_ context.Context,
	term string,
	opts domain.SearchOptions,
) ([]domain.Result, error) {
	m.lastTerm = term
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) UniqueTags() map[string][]string {
	return m.tags
}

func (m *mockSearchService) UniqueFolders() map[string][]string {
	return m.folders
}

func (m *mockSearchService) ResetCache(domain.SearchMode) {}

func (m *mockSearchService) ResetAllCaches() {}

func (m *mockSearchService) Config() domain.SearchConfig {
	return domain.DefaultSearchConfig()
}

// mockActionService is a mock implementation of driving.ResultActionService.
type mockActionService struct {
	opened []string
	copied []string
	err    error
}

func (m *mockActionService) Open(_ context.Context, r *domain.Result) error {
	if m.err != nil {
		return m.err
	}
	m.opened = append(m.opened, r.Item.URL)
	return nil
}

func (m *mockActionService) CopyURL(_ context.Context, r *domain.Result) error {
	if m.err != nil {
		return m.err
	}
	m.copied = append(m.copied, r.Item.URL)
	return nil
}
