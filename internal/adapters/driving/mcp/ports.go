package mcp

import (
	"github.com/custodia-labs/omnibar/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// ResultAction opens results in the browser.
	ResultAction driving.ResultActionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// ResultAction is optional; the open tool reports an error without it.
	return nil
}
