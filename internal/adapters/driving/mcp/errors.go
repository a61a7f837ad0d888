// Package mcp provides an MCP (Model Context Protocol) server adapter for omnibar.
// It lets AI assistants search bookmarks, tabs and history and open results.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
