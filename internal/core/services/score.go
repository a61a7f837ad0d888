package services

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// Synthetic navigation entries outrank everything ingested: a direct
// URL beats a custom engine, which beats any scored item.
const (
	customEngineScore = 400
	directURLScore    = 450
)

// candidate is a matched item waiting to be scored.
type candidate struct {
	item        domain.SearchItem
	searchScore float64
	approach    domain.SearchApproach
	field       domain.ItemField

	// positions are matched byte offsets within SearchString, only set
	// by the fuzzy matcher.
	positions []int
}

// scoreAndRank turns candidates into final results: each candidate is
// scored, results under the minimum score are dropped, the rest are
// stably sorted best first and truncated to the limit.
func scoreAndRank(cfg domain.SearchConfig, term string, cands []candidate, limit int, now time.Time) []domain.Result {
	results := make([]domain.Result, 0, len(cands))
	for _, c := range cands {
		score := scoreCandidate(cfg, term, &c, now)
		if score < cfg.MinScore {
			continue
		}

		r := domain.Result{
			Item:        c.item,
			Score:       score,
			SearchScore: c.searchScore,
			Approach:    c.approach,
		}
		r.TitleRanges, r.URLRanges = highlightRanges(&c.item, c.positions)
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// scoreCandidate computes the final score: the kind's base score, plus
// the field-weighted match quality, plus the additive bonuses.
func scoreCandidate(cfg domain.SearchConfig, term string, c *candidate, now time.Time) float64 {
	it := &c.item

	var score float64
	switch it.Kind {
	case domain.KindCustomEngine:
		score = customEngineScore
	case domain.KindDirectURL:
		score = directURLScore
	default:
		score = cfg.BaseScore(it.Kind)
	}

	score += c.searchScore * cfg.FieldWeight(c.field)

	termLower := strings.ToLower(strings.TrimSpace(term))
	if termLower != "" && !it.Kind.Synthetic() {
		score += textBonuses(cfg, termLower, it)
	}

	if it.OpenTab {
		score += cfg.OpenTabBonus
	}

	if cfg.CustomBonusEnabled && it.CustomBonus != 0 {
		score += float64(it.CustomBonus)
	}

	if it.VisitCount > 0 {
		score += math.Min(float64(it.VisitCount)*cfg.VisitedBonusScore, cfg.VisitedBonusScoreMax)
	}

	score += recencyBonus(cfg, it.LastVisit, now)

	return score
}

// textBonuses grants the exact-match family of bonuses against the
// lowercased title and normalised URL.
func textBonuses(cfg domain.SearchConfig, termLower string, it *domain.SearchItem) float64 {
	var bonus float64
	title := it.TitleLower
	url := it.URL

	if title == termLower {
		bonus += cfg.ExactEqualsBonus
	}
	if strings.HasPrefix(title, termLower) || strings.HasPrefix(url, termLower) {
		bonus += cfg.ExactStartsWithBonus
	}

	// The includes bonus is granted once per result, however many fields
	// contain the term.
	if utf8.RuneCountInString(termLower) >= cfg.ExactIncludesMinChars &&
		(strings.Contains(title, termLower) || strings.Contains(url, termLower)) {
		bonus += cfg.ExactIncludesBonus
	}

	for _, tag := range markerTerms(termLower, domain.TagMarker) {
		if it.HasTag(tag) {
			bonus += cfg.ExactTagMatchBonus
		}
	}
	for _, folder := range markerTerms(termLower, domain.FolderMarker) {
		if it.HasFolder(folder) {
			bonus += cfg.ExactFolderMatchBonus
		}
	}

	if terms := strings.Fields(termLower); len(terms) >= 2 {
		if strings.Contains(title, strings.Join(terms, " ")) {
			bonus += cfg.PhraseTitleBonus
		}
		if strings.Contains(url, strings.Join(terms, "-")) {
			bonus += cfg.PhraseURLBonus
		}
	}

	return bonus
}

// recencyBonus decays linearly from the full bonus at "visited just now"
// to zero at the edge of the history window.
func recencyBonus(cfg domain.SearchConfig, lastVisit time.Time, now time.Time) float64 {
	if lastVisit.IsZero() || cfg.HistoryDaysAgo <= 0 || cfg.RecentBonusScoreMax <= 0 {
		return 0
	}

	window := time.Duration(cfg.HistoryDaysAgo) * 24 * time.Hour
	age := now.Sub(lastVisit)
	if age < 0 || age >= window {
		return 0
	}
	return cfg.RecentBonusScoreMax * (1 - float64(age)/float64(window))
}

// markerTerms extracts the bare names of marker-prefixed tokens from the
// query ("vue #frontend" with "#" gives ["frontend"]).
func markerTerms(termLower, marker string) []string {
	var out []string
	for _, tok := range strings.Fields(termLower) {
		if len(tok) > len(marker) && strings.HasPrefix(tok, marker) {
			out = append(out, strings.TrimPrefix(tok, marker))
		}
	}
	return out
}

// highlightRanges converts matched SearchString positions into per-field
// ranges for the title and URL. Tag and folder hits have no display
// field to highlight.
func highlightRanges(it *domain.SearchItem, positions []int) (title, url []domain.HighlightRange) {
	if len(positions) == 0 {
		return nil, nil
	}

	var titlePos, urlPos []int
	for _, p := range positions {
		field, fieldPos, ok := it.FieldAt(p)
		if !ok {
			continue
		}
		switch field {
		case domain.FieldTitle:
			titlePos = append(titlePos, fieldPos)
		case domain.FieldURL:
			urlPos = append(urlPos, fieldPos)
		}
	}
	return domain.RangesFromPositions(titlePos), domain.RangesFromPositions(urlPos)
}
