package domain

import (
	"fmt"
	"strings"
)

// SearchEngine is a web-search fallback offered beneath the real
// results. Its URL template substitutes the query term for $s.
type SearchEngine struct {
	// Name is the display name ("Google").
	Name string

	// URLTemplate is the search URL with a $s placeholder.
	URLTemplate string
}

// Validate checks the engine definition.
func (e SearchEngine) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: search engine name is empty", ErrInvalidConfig)
	}
	if !strings.Contains(e.URLTemplate, "$s") {
		return fmt.Errorf("%w: search engine %q template has no $s placeholder", ErrInvalidConfig, e.Name)
	}
	return nil
}

// CustomSearchEngine is a user-defined shortcut. A query whose first
// token equals Alias searches this engine with the remaining terms.
type CustomSearchEngine struct {
	// Alias is the trigger token ("yt").
	Alias string

	// Name is the display name ("YouTube").
	Name string

	// URLTemplate is the search URL with a $s placeholder.
	URLTemplate string
}

// Validate checks the shortcut definition.
func (e CustomSearchEngine) Validate() error {
	alias := strings.TrimSpace(e.Alias)
	if alias == "" {
		return fmt.Errorf("%w: custom search engine alias is empty", ErrInvalidConfig)
	}
	if strings.ContainsAny(alias, " \t") {
		return fmt.Errorf("%w: custom search engine alias %q contains whitespace", ErrInvalidConfig, e.Alias)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: custom search engine %q has no name", ErrInvalidConfig, e.Alias)
	}
	if !strings.Contains(e.URLTemplate, "$s") {
		return fmt.Errorf("%w: custom search engine %q template has no $s placeholder", ErrInvalidConfig, e.Alias)
	}
	return nil
}

// SearchConfig holds every tuning knob for matching and scoring. Zero
// values are not meaningful: obtain one from DefaultSearchConfig, adjust,
// and Validate before handing it to the engine.
type SearchConfig struct {
	// Strategy selects the text matcher.
	Strategy SearchStrategy

	// Fuzziness controls how forgiving fuzzy matching is, from 0 (near
	// exact) to 1 (very forgiving). From 0.8 upward single-typo variants
	// of the term are also tried.
	Fuzziness float64

	// MinMatchCharLength is the shortest term that triggers a search.
	// Shorter input surfaces default entries instead.
	MinMatchCharLength int

	// DebounceMS is how long interactive frontends wait after the last
	// keystroke before searching.
	DebounceMS int

	// MaxResults caps the number of results returned per query.
	MaxResults int

	// MinScore drops results scoring below it.
	MinScore float64

	// BookmarkBaseScore is the base score for bookmark results.
	BookmarkBaseScore float64

	// TabBaseScore is the base score for open tab results.
	TabBaseScore float64

	// HistoryBaseScore is the base score for history results.
	HistoryBaseScore float64

	// SearchEngineBaseScore is the base score for web-search fallbacks.
	SearchEngineBaseScore float64

	// TitleWeight scales the match quality when the title matched.
	TitleWeight float64

	// TagWeight scales the match quality when a tag matched.
	TagWeight float64

	// URLWeight scales the match quality when the URL matched.
	URLWeight float64

	// FolderWeight scales the match quality when a folder matched.
	FolderWeight float64

	// ExactEqualsBonus rewards a title equal to the full term.
	ExactEqualsBonus float64

	// ExactStartsWithBonus rewards a title or URL starting with the term.
	ExactStartsWithBonus float64

	// ExactIncludesBonus rewards a title or URL containing the term. It
	// is granted at most once per result.
	ExactIncludesBonus float64

	// ExactIncludesMinChars is the minimum term length for the includes
	// bonus.
	ExactIncludesMinChars int

	// ExactTagMatchBonus rewards a queried #tag equal to an item tag.
	ExactTagMatchBonus float64

	// ExactFolderMatchBonus rewards a queried ~folder equal to a folder
	// on the item's breadcrumb.
	ExactFolderMatchBonus float64

	// PhraseTitleBonus rewards multi-term queries appearing verbatim in
	// the title.
	PhraseTitleBonus float64

	// PhraseURLBonus rewards multi-term queries appearing hyphenated in
	// the URL.
	PhraseURLBonus float64

	// OpenTabBonus rewards bookmarks whose URL is open in a tab right
	// now.
	OpenTabBonus float64

	// CustomBonusEnabled applies "+N" title annotations to the score.
	CustomBonusEnabled bool

	// VisitedBonusScore is added per recorded visit, capped by
	// VisitedBonusScoreMax.
	VisitedBonusScore float64

	// VisitedBonusScoreMax caps the accumulated visit bonus.
	VisitedBonusScoreMax float64

	// RecentBonusScoreMax is the bonus for an item visited this instant.
	// It decays linearly to zero across HistoryDaysAgo days.
	RecentBonusScoreMax float64

	// HistoryDaysAgo is the history ingestion window in days.
	HistoryDaysAgo int

	// HistoryMaxItems caps the number of ingested history rows.
	HistoryMaxItems int

	// SearchEngines are the web-search fallbacks appended to results.
	SearchEngines []SearchEngine

	// CustomSearchEngines are alias-triggered search shortcuts.
	CustomSearchEngines []CustomSearchEngine
}

// DefaultSearchConfig returns the configuration used when the user has
// not overridden anything.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Strategy:           StrategyPrecise,
		Fuzziness:          0.4,
		MinMatchCharLength: 1,
		DebounceMS:         150,
		MaxResults:         50,
		MinScore:           30,

		BookmarkBaseScore:     100,
		TabBaseScore:          70,
		HistoryBaseScore:      50,
		SearchEngineBaseScore: 30,

		TitleWeight:  1,
		TagWeight:    0.7,
		URLWeight:    0.55,
		FolderWeight: 0.2,

		ExactEqualsBonus:      15,
		ExactStartsWithBonus:  10,
		ExactIncludesBonus:    5,
		ExactIncludesMinChars: 5,
		ExactTagMatchBonus:    10,
		ExactFolderMatchBonus: 5,
		PhraseTitleBonus:      8,
		PhraseURLBonus:        4,

		OpenTabBonus:         12,
		CustomBonusEnabled:   true,
		VisitedBonusScore:    0.25,
		VisitedBonusScoreMax: 10,
		RecentBonusScoreMax:  5,

		HistoryDaysAgo:  7,
		HistoryMaxItems: 1024,

		SearchEngines: []SearchEngine{
			{Name: "Google", URLTemplate: "https://www.google.com/search?q=$s"},
			{Name: "DuckDuckGo", URLTemplate: "https://duckduckgo.com/?q=$s"},
		},
	}
}

// Validate checks every field for consistency. It reports the first
// problem found, wrapped in ErrInvalidConfig.
func (c SearchConfig) Validate() error {
	if !c.Strategy.IsValid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}
	if c.Fuzziness < 0 || c.Fuzziness > 1 {
		return fmt.Errorf("%w: fuzziness %.2f outside [0, 1]", ErrInvalidConfig, c.Fuzziness)
	}
	if c.MinMatchCharLength < 1 {
		return fmt.Errorf("%w: minimum match length %d below 1", ErrInvalidConfig, c.MinMatchCharLength)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("%w: debounce %dms is negative", ErrInvalidConfig, c.DebounceMS)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: max results %d below 1", ErrInvalidConfig, c.MaxResults)
	}
	if c.MinScore < 0 {
		return fmt.Errorf("%w: minimum score %.2f is negative", ErrInvalidConfig, c.MinScore)
	}
	for name, v := range map[string]float64{
		"bookmark base score":      c.BookmarkBaseScore,
		"tab base score":           c.TabBaseScore,
		"history base score":       c.HistoryBaseScore,
		"search engine base score": c.SearchEngineBaseScore,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s %.2f is negative", ErrInvalidConfig, name, v)
		}
	}
	for name, w := range map[string]float64{
		"title weight":  c.TitleWeight,
		"tag weight":    c.TagWeight,
		"url weight":    c.URLWeight,
		"folder weight": c.FolderWeight,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%w: %s %.2f outside [0, 1]", ErrInvalidConfig, name, w)
		}
	}
	for name, b := range map[string]float64{
		"equals bonus":       c.ExactEqualsBonus,
		"starts-with bonus":  c.ExactStartsWithBonus,
		"includes bonus":     c.ExactIncludesBonus,
		"tag match bonus":    c.ExactTagMatchBonus,
		"folder match bonus": c.ExactFolderMatchBonus,
		"phrase title bonus": c.PhraseTitleBonus,
		"phrase url bonus":   c.PhraseURLBonus,
		"open tab bonus":     c.OpenTabBonus,
		"visited bonus":      c.VisitedBonusScore,
		"visited bonus cap":  c.VisitedBonusScoreMax,
		"recency bonus":      c.RecentBonusScoreMax,
	} {
		if b < 0 {
			return fmt.Errorf("%w: %s %.2f is negative", ErrInvalidConfig, name, b)
		}
	}
	if c.ExactIncludesMinChars < 1 {
		return fmt.Errorf("%w: includes bonus minimum length %d below 1", ErrInvalidConfig, c.ExactIncludesMinChars)
	}
	if c.HistoryDaysAgo < 0 {
		return fmt.Errorf("%w: history window %d days is negative", ErrInvalidConfig, c.HistoryDaysAgo)
	}
	if c.HistoryMaxItems < 0 {
		return fmt.Errorf("%w: history item cap %d is negative", ErrInvalidConfig, c.HistoryMaxItems)
	}
	for _, e := range c.SearchEngines {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(c.CustomSearchEngines))
	for _, e := range c.CustomSearchEngines {
		if err := e.Validate(); err != nil {
			return err
		}
		alias := strings.ToLower(strings.TrimSpace(e.Alias))
		if seen[alias] {
			return fmt.Errorf("%w: duplicate custom search engine alias %q", ErrInvalidConfig, e.Alias)
		}
		seen[alias] = true
	}
	return nil
}

// FieldWeight returns the configured weight for a logical item field.
func (c SearchConfig) FieldWeight(f ItemField) float64 {
	switch f {
	case FieldTitle:
		return c.TitleWeight
	case FieldTags:
		return c.TagWeight
	case FieldURL:
		return c.URLWeight
	case FieldFolder:
		return c.FolderWeight
	default:
		return c.TitleWeight
	}
}

// BaseScore returns the configured base score for ingested item kinds.
// Synthetic navigation kinds are pinned by the scorer instead.
func (c SearchConfig) BaseScore(k ItemKind) float64 {
	switch k {
	case KindBookmark:
		return c.BookmarkBaseScore
	case KindTab:
		return c.TabBaseScore
	case KindHistory:
		return c.HistoryBaseScore
	case KindSearchEngine:
		return c.SearchEngineBaseScore
	default:
		return 0
	}
}

// CustomEngineFor returns the custom search engine whose alias equals
// the query's first token, ignoring case.
func (c SearchConfig) CustomEngineFor(alias string) (CustomSearchEngine, bool) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if alias == "" {
		return CustomSearchEngine{}, false
	}
	for _, e := range c.CustomSearchEngines {
		if strings.ToLower(strings.TrimSpace(e.Alias)) == alias {
			return e, true
		}
	}
	return CustomSearchEngine{}, false
}
