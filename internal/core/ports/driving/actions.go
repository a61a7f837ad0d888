package driving

import (
	"context"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// ResultActionService provides actions on search results for external
// actors. This is used by TUI, CLI, and MCP adapters.
type ResultActionService interface {
	// Open opens the result's target in the default browser.
	Open(ctx context.Context, result *domain.Result) error

	// CopyURL copies the result's original URL to the system clipboard.
	CopyURL(ctx context.Context, result *domain.Result) error
}
