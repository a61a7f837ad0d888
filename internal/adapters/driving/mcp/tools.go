package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// errNoActionService is surfaced when the open tool is invoked without
// a configured result action service.
var errNoActionService = errors.New("mcp: result action service is not configured")

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Term     string `json:"term" jsonschema:"the search term; supports #tag and ~folder markers"`
	Mode     string `json:"mode,omitempty" jsonschema:"datasets to search: bookmarks, tabs, history or all (default all)"`
	Strategy string `json:"strategy,omitempty" jsonschema:"text matcher: precise or fuzzy (default configured)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Kind        string   `json:"kind"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`
	Folders     []string `json:"folders,omitempty"`
	Score       float64  `json:"score"`
	SearchScore float64  `json:"searchScore"`
	Approach    string   `json:"approach"`
	LastVisit   string   `json:"lastVisit,omitempty"`
	OpenTab     bool     `json:"openTab,omitempty"`
	Dupe        bool     `json:"dupe,omitempty"`
}

// TaxonomyInput is the (empty) input schema for the listing tools.
type TaxonomyInput struct{}

// TaxonomyOutput is the output schema for the listing tools.
type TaxonomyOutput struct {
	Values map[string][]string `json:"values"`
	Count  int                 `json:"count"`
}

// OpenInput is the input schema for the open tool.
type OpenInput struct {
	URL string `json:"url" jsonschema:"the URL to open in the default browser"`
}

// OpenOutput is the output schema for the open tool.
type OpenOutput struct {
	Opened string `json:"opened"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search bookmarks, open tabs and browsing history",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List all bookmark tags with the IDs of the items carrying them",
	}, s.handleListTags)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_folders",
		Description: "List all bookmark folders with the IDs of the items inside them",
	}, s.handleListFolders)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open",
		Description: "Open a URL in the default browser",
	}, s.handleOpen)
}

// handleListTags handles the list_tags tool invocation.
func (s *Server) handleListTags(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ TaxonomyInput,
) (*mcp.CallToolResult, TaxonomyOutput, error) {
	return nil, taxonomyOutput(s.ports.Search.UniqueTags()), nil
}

// handleListFolders handles the list_folders tool invocation.
func (s *Server) handleListFolders(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ TaxonomyInput,
) (*mcp.CallToolResult, TaxonomyOutput, error) {
	return nil, taxonomyOutput(s.ports.Search.UniqueFolders()), nil
}

func taxonomyOutput(values map[string][]string) TaxonomyOutput {
	if values == nil {
		values = map[string][]string{}
	}
	return TaxonomyOutput{Values: values, Count: len(values)}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	mode := domain.SearchMode(input.Mode)
	if input.Mode == "" {
		mode = domain.SearchModeAll
	}
	if !mode.IsValid() {
		return nil, SearchOutput{}, domain.ErrUnsupportedMode
	}

	opts := domain.SearchOptions{
		Mode:       mode,
		Strategy:   domain.SearchStrategy(input.Strategy),
		MaxResults: limit,
	}
	results, err := s.ports.Search.Search(ctx, input.Term, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		it := &results[i].Item
		out := SearchResultOutput{
			Kind:        it.Kind.String(),
			ID:          it.ID,
			Title:       it.Title,
			URL:         it.URL,
			Tags:        it.Tags,
			Folders:     it.FolderPath,
			Score:       results[i].Score,
			SearchScore: results[i].SearchScore,
			Approach:    string(results[i].Approach),
			OpenTab:     it.OpenTab,
			Dupe:        it.Dupe,
		}
		if !it.LastVisit.IsZero() {
			out.LastVisit = it.LastVisit.UTC().Format(time.RFC3339)
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// handleOpen handles the open tool invocation.
func (s *Server) handleOpen(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenInput,
) (*mcp.CallToolResult, OpenOutput, error) {
	if s.ports.ResultAction == nil {
		return nil, OpenOutput{}, errNoActionService
	}
	if input.URL == "" {
		return nil, OpenOutput{}, domain.ErrInvalidInput
	}

	result := domain.Result{Item: domain.NewDirectURLEntry(input.URL)}
	if err := s.ports.ResultAction.Open(ctx, &result); err != nil {
		return nil, OpenOutput{}, err
	}

	return nil, OpenOutput{Opened: result.Item.OriginalURL}, nil
}
