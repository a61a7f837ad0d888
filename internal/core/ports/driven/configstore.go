package driven

import (
	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// ConfigStore persists the search configuration.
// Implementations handle serialisation (e.g. TOML files) and defaults.
type ConfigStore interface {
	// Load reads the stored configuration. A missing store yields the
	// defaults rather than an error; a malformed one returns an error.
	Load() (domain.SearchConfig, error)

	// Save persists the configuration.
	Save(cfg domain.SearchConfig) error

	// Path returns the configuration file path.
	Path() string
}
