package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore
// using TOML. Configuration lives in the omnibar config directory; a
// missing file yields the defaults. Fields absent from the file keep
// their default values, so a config file only has to name what it
// overrides.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.omnibar/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".omnibar")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the stored configuration, layered over the defaults. A
// missing file returns the defaults; a malformed or invalid one
// returns an error.
func (s *ConfigStore) Load() (domain.SearchConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repr := fromConfig(domain.DefaultSearchConfig())

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return repr.toConfig(), nil
		}
		return domain.SearchConfig{}, fmt.Errorf("reading %s: %w", s.filePath, err)
	}

	if err := toml.Unmarshal(data, &repr); err != nil {
		return domain.SearchConfig{}, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	cfg := repr.toConfig()
	if err := cfg.Validate(); err != nil {
		return domain.SearchConfig{}, fmt.Errorf("%s: %w", s.filePath, err)
	}
	return cfg, nil
}

// Save persists the configuration with restricted permissions.
func (s *ConfigStore) Save(cfg domain.SearchConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(fromConfig(cfg))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// tomlConfig is the on-disk shape of domain.SearchConfig.
type tomlConfig struct {
	Search struct {
		Strategy           string  `toml:"strategy"`
		Fuzziness          float64 `toml:"fuzziness"`
		MinMatchCharLength int     `toml:"min_match_char_length"`
		DebounceMS         int     `toml:"debounce_ms"`
		MaxResults         int     `toml:"max_results"`
	} `toml:"search"`

	Scoring struct {
		MinScore              float64 `toml:"min_score"`
		BookmarkBase          float64 `toml:"bookmark_base"`
		TabBase               float64 `toml:"tab_base"`
		HistoryBase           float64 `toml:"history_base"`
		SearchEngineBase      float64 `toml:"search_engine_base"`
		TitleWeight           float64 `toml:"title_weight"`
		TagWeight             float64 `toml:"tag_weight"`
		URLWeight             float64 `toml:"url_weight"`
		FolderWeight          float64 `toml:"folder_weight"`
		ExactEqualsBonus      float64 `toml:"exact_equals_bonus"`
		ExactStartsWithBonus  float64 `toml:"exact_starts_with_bonus"`
		ExactIncludesBonus    float64 `toml:"exact_includes_bonus"`
		ExactIncludesMinChars int     `toml:"exact_includes_min_chars"`
		ExactTagMatchBonus    float64 `toml:"exact_tag_match_bonus"`
		ExactFolderMatchBonus float64 `toml:"exact_folder_match_bonus"`
		PhraseTitleBonus      float64 `toml:"phrase_title_bonus"`
		PhraseURLBonus        float64 `toml:"phrase_url_bonus"`
		OpenTabBonus          float64 `toml:"open_tab_bonus"`
		CustomBonusEnabled    bool    `toml:"custom_bonus_enabled"`
		VisitedBonus          float64 `toml:"visited_bonus"`
		VisitedBonusMax       float64 `toml:"visited_bonus_max"`
		RecentBonusMax        float64 `toml:"recent_bonus_max"`
	} `toml:"scoring"`

	History struct {
		DaysAgo  int `toml:"days_ago"`
		MaxItems int `toml:"max_items"`
	} `toml:"history"`

	SearchEngines []tomlSearchEngine       `toml:"search_engines"`
	CustomEngines []tomlCustomSearchEngine `toml:"custom_search_engines"`
}

type tomlSearchEngine struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

type tomlCustomSearchEngine struct {
	Alias string `toml:"alias"`
	Name  string `toml:"name"`
	URL   string `toml:"url"`
}

// fromConfig converts a domain config into its on-disk shape.
func fromConfig(cfg domain.SearchConfig) tomlConfig {
	var r tomlConfig

	r.Search.Strategy = cfg.Strategy.String()
	r.Search.Fuzziness = cfg.Fuzziness
	r.Search.MinMatchCharLength = cfg.MinMatchCharLength
	r.Search.DebounceMS = cfg.DebounceMS
	r.Search.MaxResults = cfg.MaxResults

	r.Scoring.MinScore = cfg.MinScore
	r.Scoring.BookmarkBase = cfg.BookmarkBaseScore
	r.Scoring.TabBase = cfg.TabBaseScore
	r.Scoring.HistoryBase = cfg.HistoryBaseScore
	r.Scoring.SearchEngineBase = cfg.SearchEngineBaseScore
	r.Scoring.TitleWeight = cfg.TitleWeight
	r.Scoring.TagWeight = cfg.TagWeight
	r.Scoring.URLWeight = cfg.URLWeight
	r.Scoring.FolderWeight = cfg.FolderWeight
	r.Scoring.ExactEqualsBonus = cfg.ExactEqualsBonus
	r.Scoring.ExactStartsWithBonus = cfg.ExactStartsWithBonus
	r.Scoring.ExactIncludesBonus = cfg.ExactIncludesBonus
	r.Scoring.ExactIncludesMinChars = cfg.ExactIncludesMinChars
	r.Scoring.ExactTagMatchBonus = cfg.ExactTagMatchBonus
	r.Scoring.ExactFolderMatchBonus = cfg.ExactFolderMatchBonus
	r.Scoring.PhraseTitleBonus = cfg.PhraseTitleBonus
	r.Scoring.PhraseURLBonus = cfg.PhraseURLBonus
	r.Scoring.OpenTabBonus = cfg.OpenTabBonus
	r.Scoring.CustomBonusEnabled = cfg.CustomBonusEnabled
	r.Scoring.VisitedBonus = cfg.VisitedBonusScore
	r.Scoring.VisitedBonusMax = cfg.VisitedBonusScoreMax
	r.Scoring.RecentBonusMax = cfg.RecentBonusScoreMax

	r.History.DaysAgo = cfg.HistoryDaysAgo
	r.History.MaxItems = cfg.HistoryMaxItems

	for _, e := range cfg.SearchEngines {
		r.SearchEngines = append(r.SearchEngines, tomlSearchEngine{Name: e.Name, URL: e.URLTemplate})
	}
	for _, e := range cfg.CustomSearchEngines {
		r.CustomEngines = append(r.CustomEngines, tomlCustomSearchEngine{Alias: e.Alias, Name: e.Name, URL: e.URLTemplate})
	}
	return r
}

// toConfig converts the on-disk shape back into a domain config.
func (r tomlConfig) toConfig() domain.SearchConfig {
	cfg := domain.SearchConfig{
		Strategy:           domain.SearchStrategy(r.Search.Strategy),
		Fuzziness:          r.Search.Fuzziness,
		MinMatchCharLength: r.Search.MinMatchCharLength,
		DebounceMS:         r.Search.DebounceMS,
		MaxResults:         r.Search.MaxResults,

		MinScore:              r.Scoring.MinScore,
		BookmarkBaseScore:     r.Scoring.BookmarkBase,
		TabBaseScore:          r.Scoring.TabBase,
		HistoryBaseScore:      r.Scoring.HistoryBase,
		SearchEngineBaseScore: r.Scoring.SearchEngineBase,
		TitleWeight:           r.Scoring.TitleWeight,
		TagWeight:             r.Scoring.TagWeight,
		URLWeight:             r.Scoring.URLWeight,
		FolderWeight:          r.Scoring.FolderWeight,
		ExactEqualsBonus:      r.Scoring.ExactEqualsBonus,
		ExactStartsWithBonus:  r.Scoring.ExactStartsWithBonus,
		ExactIncludesBonus:    r.Scoring.ExactIncludesBonus,
		ExactIncludesMinChars: r.Scoring.ExactIncludesMinChars,
		ExactTagMatchBonus:    r.Scoring.ExactTagMatchBonus,
		ExactFolderMatchBonus: r.Scoring.ExactFolderMatchBonus,
		PhraseTitleBonus:      r.Scoring.PhraseTitleBonus,
		PhraseURLBonus:        r.Scoring.PhraseURLBonus,
		OpenTabBonus:          r.Scoring.OpenTabBonus,
		CustomBonusEnabled:    r.Scoring.CustomBonusEnabled,
		VisitedBonusScore:     r.Scoring.VisitedBonus,
		VisitedBonusScoreMax:  r.Scoring.VisitedBonusMax,
		RecentBonusScoreMax:   r.Scoring.RecentBonusMax,

		HistoryDaysAgo:  r.History.DaysAgo,
		HistoryMaxItems: r.History.MaxItems,
	}

	for _, e := range r.SearchEngines {
		cfg.SearchEngines = append(cfg.SearchEngines, domain.SearchEngine{Name: e.Name, URLTemplate: e.URL})
	}
	for _, e := range r.CustomEngines {
		cfg.CustomSearchEngines = append(cfg.CustomSearchEngines, domain.CustomSearchEngine{Alias: e.Alias, Name: e.Name, URLTemplate: e.URL})
	}
	return cfg
}
