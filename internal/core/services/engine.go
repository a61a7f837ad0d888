package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
	"github.com/custodia-labs/omnibar/internal/core/ports/driving"
	"github.com/custodia-labs/omnibar/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService orchestrates matching and scoring across the item
// store. One query runs at a time; the service serialises callers.
type SearchService struct {
	store   driven.ItemStore
	matcher driven.ApproximateMatcher
	cfg     domain.SearchConfig

	mu       sync.Mutex
	caches   map[cacheKey]*modeCache
	taxonomy *taxonomyIndex

	now func() time.Time
}

// NewSearchService creates a search service. The configuration is
// validated up front. The matcher may be nil as long as the fuzzy
// strategy is never requested.
func NewSearchService(
	store driven.ItemStore,
	matcher driven.ApproximateMatcher,
	cfg domain.SearchConfig,
) (*SearchService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SearchService{
		store:   store,
		matcher: matcher,
		cfg:     cfg,
		caches:  make(map[cacheKey]*modeCache),
		now:     time.Now,
	}, nil
}

// SetClock overrides the time source used for recency scoring.
func (s *SearchService) SetClock(now func() time.Time) {
	s.now = now
}

// Config returns the engine's active configuration.
func (s *SearchService) Config() domain.SearchConfig {
	return s.cfg
}

// Search runs one query and returns scored results, best first.
func (s *SearchService) Search(ctx context.Context, term string, opts domain.SearchOptions) ([]domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Search Execution")

	term = strings.TrimSpace(term)

	mode := opts.Mode
	if mode == "" {
		mode = domain.SearchModeAll
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, opts.Mode)
	}

	strategy := s.cfg.Strategy
	if opts.Strategy != "" {
		if !opts.Strategy.IsValid() {
			return nil, fmt.Errorf("%w: unknown strategy %q", domain.ErrInvalidInput, opts.Strategy)
		}
		strategy = opts.Strategy
	}

	limit := s.cfg.MaxResults
	if opts.MaxResults > 0 {
		limit = opts.MaxResults
	}

	logger.Debug("Query: %q (mode=%s strategy=%s limit=%d)", term, mode, strategy, limit)

	// Too-short input surfaces the active tab's entries instead of
	// running a matcher.
	if utf8.RuneCountInString(term) < s.cfg.MinMatchCharLength {
		logger.Debug("Term under %d characters, serving default entries", s.cfg.MinMatchCharLength)
		cands := s.defaultEntries(mode, opts.ActiveURL)
		results := scoreAndRank(s.cfg, "", cands, limit, s.now())
		logger.Info("Final results: %d (default entries)", len(results))
		return results, nil
	}

	var cands []candidate
	if field, ok := domain.TaxonomyFor(term); ok {
		logger.Info("Taxonomy search on %s", field)
		cands = s.taxonomyCandidates(term, field, mode)
	} else {
		approach := domain.ApproachPrecise
		switch strategy {
		case domain.StrategyFuzzy:
			logger.Info("Fuzzy search")
			approach = domain.ApproachFuzzy
			var err error
			cands, err = s.fuzzyCandidates(term, mode)
			if err != nil {
				// A matcher failure degrades to zero text matches; the
				// synthetic entries still answer the query.
				logger.Warn("Fuzzy matcher failed, try the precise strategy instead: %v", err)
				cands = nil
			}
		default:
			logger.Info("Precise search")
			cands = s.preciseCandidates(term, mode)
		}

		cands = mergeHistoryDuplicates(cands)
		cands = append(cands, s.syntheticEntries(term, approach)...)
	}

	logger.Debug("Candidates: %d", len(cands))

	results := scoreAndRank(s.cfg, term, cands, limit, s.now())
	logger.Info("Final results: %d", len(results))
	return results, nil
}

// preciseCandidates runs the precise matcher for a mode.
func (s *SearchService) preciseCandidates(term string, mode domain.SearchMode) []candidate {
	c := s.cacheFor(mode, domain.ApproachPrecise)
	idxs := s.preciseSearch(term, c)

	cands := make([]candidate, 0, len(idxs))
	for _, i := range idxs {
		cands = append(cands, candidate{
			item:        c.items[i],
			searchScore: 1,
			approach:    domain.ApproachPrecise,
			field:       domain.FieldTitle,
		})
	}
	return cands
}

// fuzzyCandidates runs the approximate matcher for a mode.
func (s *SearchService) fuzzyCandidates(term string, mode domain.SearchMode) ([]candidate, error) {
	if s.matcher == nil {
		return nil, fmt.Errorf("%w: no matcher configured", domain.ErrMatcherFailure)
	}

	c := s.cacheFor(mode, domain.ApproachFuzzy)
	hits, err := s.fuzzySearch(term, c)
	if err != nil {
		return nil, err
	}

	cands := make([]candidate, 0, len(hits))
	for _, h := range hits {
		it := c.items[h.idx]
		cands = append(cands, candidate{
			item:        it,
			searchScore: h.searchScore(),
			approach:    domain.ApproachFuzzy,
			field:       dominantField(&it, h.positions),
			positions:   h.positions,
		})
	}
	return cands, nil
}

// taxonomyCandidates runs the marker matcher for a mode.
func (s *SearchService) taxonomyCandidates(term string, field domain.TaxonomyField, mode domain.SearchMode) []candidate {
	itemField := domain.FieldTags
	if field == domain.TaxonomyFolders {
		itemField = domain.FieldFolder
	}

	items := s.store.Items(mode)
	idxs := s.taxonomySearch(term, field, items)

	cands := make([]candidate, 0, len(idxs))
	for _, i := range idxs {
		cands = append(cands, candidate{
			item:        items[i],
			searchScore: 1,
			approach:    domain.ApproachTaxonomy,
			field:       itemField,
		})
	}
	return cands
}

// defaultEntries returns the mode's items whose normalised URL equals
// the active tab's.
func (s *SearchService) defaultEntries(mode domain.SearchMode, activeURL string) []candidate {
	target := domain.CleanURL(activeURL)
	if target == "" {
		return nil
	}

	var cands []candidate
	for _, it := range s.store.Items(mode) {
		if it.URL == target {
			cands = append(cands, candidate{
				item:        it,
				searchScore: 1,
				approach:    domain.ApproachDefault,
				field:       domain.FieldTitle,
			})
		}
	}
	logger.Debug("Default entries: %d for %q", len(cands), target)
	return cands
}

// syntheticEntries builds the navigation entries a text query earns: a
// custom engine hit when the first token is an alias, a direct URL when
// the term reads as an address, and the web-search fallbacks.
func (s *SearchService) syntheticEntries(term string, approach domain.SearchApproach) []candidate {
	var cands []candidate

	alias, rest, _ := strings.Cut(term, " ")
	if engine, ok := s.cfg.CustomEngineFor(alias); ok {
		if query := strings.TrimSpace(rest); query != "" {
			logger.Debug("Custom engine %q triggered", engine.Alias)
			cands = append(cands, s.synthetic(domain.NewCustomEngineEntry(engine, query), approach))
		}
	}

	if domain.LooksLikeURL(term) {
		logger.Debug("Term reads as an address, adding direct entry")
		cands = append(cands, s.synthetic(domain.NewDirectURLEntry(term), approach))
	}

	for _, engine := range s.cfg.SearchEngines {
		cands = append(cands, s.synthetic(domain.NewSearchEngineEntry(engine, term), approach))
	}

	return cands
}

// synthetic wraps a synthesised item as a candidate carrying the title
// weight as its match quality.
func (s *SearchService) synthetic(it domain.SearchItem, approach domain.SearchApproach) candidate {
	return candidate{
		item:        it,
		searchScore: s.cfg.TitleWeight,
		approach:    approach,
		field:       domain.FieldTitle,
	}
}

// mergeHistoryDuplicates drops history candidates whose URL is already
// represented by an earlier candidate, moving visit metadata onto the
// kept candidate when it has none. Dataset order guarantees bookmarks
// and tabs precede history in the input.
func mergeHistoryDuplicates(cands []candidate) []candidate {
	if len(cands) < 2 {
		return cands
	}

	out := make([]candidate, 0, len(cands))
	firstByURL := make(map[string]int, len(cands))
	for _, c := range cands {
		if c.item.Kind == domain.KindHistory {
			if j, ok := firstByURL[c.item.URL]; ok {
				kept := &out[j].item
				if kept.VisitCount == 0 {
					kept.VisitCount = c.item.VisitCount
				}
				if kept.LastVisit.IsZero() {
					kept.LastVisit = c.item.LastVisit
				}
				continue
			}
		}
		if c.item.URL != "" {
			if _, ok := firstByURL[c.item.URL]; !ok {
				firstByURL[c.item.URL] = len(out)
			}
		}
		out = append(out, c)
	}
	return out
}
