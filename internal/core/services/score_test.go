package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

func scoreOf(cfg domain.SearchConfig, term string, c candidate) float64 {
	return scoreCandidate(cfg, term, &c, time.Now())
}

func plainCandidate(it domain.SearchItem) candidate {
	return candidate{item: it, searchScore: 1, approach: domain.ApproachPrecise, field: domain.FieldTitle}
}

func TestScore_BaseScoreByKind(t *testing.T) {
	cfg := testConfig()
	now := time.Now()

	bookmark := domain.NewBookmark("b", "x", "https://x.zz", nil, time.Time{})
	tab := domain.NewTab("t", "x", "https://x.zz", time.Time{})
	history := domain.NewHistoryEntry("h", "x", "https://x.zz", 0, time.Time{})
	engine := domain.NewSearchEngineEntry(domain.SearchEngine{Name: "G", URLTemplate: "https://g.zz/?q=$s"}, "x")

	scores := make([]float64, 0, 4)
	for _, it := range []domain.SearchItem{bookmark, tab, history, engine} {
		c := plainCandidate(it)
		scores = append(scores, scoreCandidate(cfg, "", &c, now))
	}

	assert.Greater(t, scores[0], scores[1], "bookmark beats tab")
	assert.Greater(t, scores[1], scores[2], "tab beats history")
	assert.Greater(t, scores[2], scores[3], "history beats search engine")
}

func TestScore_SyntheticKindsPinned(t *testing.T) {
	cfg := testConfig()

	custom := domain.NewCustomEngineEntry(domain.CustomSearchEngine{Alias: "yt", Name: "YouTube", URLTemplate: "https://yt.zz/?q=$s"}, "x")
	direct := domain.NewDirectURLEntry("example.com")
	bookmark := domain.NewBookmark("b", "x", "https://x.zz", nil, time.Time{})

	customScore := scoreOf(cfg, "", plainCandidate(custom))
	directScore := scoreOf(cfg, "", plainCandidate(direct))
	bookmarkScore := scoreOf(cfg, "", plainCandidate(bookmark))

	assert.Greater(t, directScore, customScore)
	assert.Greater(t, customScore, bookmarkScore+100, "synthetic navigation entries float far above items")
}

func TestScore_FieldWeighting(t *testing.T) {
	cfg := testConfig()
	it := domain.NewBookmark("b", "x", "https://x.zz", nil, time.Time{})

	title := plainCandidate(it)
	url := plainCandidate(it)
	url.field = domain.FieldURL

	diff := scoreOf(cfg, "", title) - scoreOf(cfg, "", url)
	assert.InDelta(t, cfg.TitleWeight-cfg.URLWeight, diff, 1e-9)
}

func TestScore_PartialMatchScaledBySearchScore(t *testing.T) {
	cfg := testConfig()
	it := domain.NewBookmark("b", "x", "https://x.zz", nil, time.Time{})

	full := plainCandidate(it)
	partial := plainCandidate(it)
	partial.searchScore = 0.4

	diff := scoreOf(cfg, "", full) - scoreOf(cfg, "", partial)
	assert.InDelta(t, 0.6*cfg.TitleWeight, diff, 1e-9)
}

func TestScore_ExactMatchBonuses(t *testing.T) {
	cfg := testConfig()
	it := domain.NewBookmark("b", "Vue Docs", "https://vuejs.org/guide", nil, time.Time{})

	tests := []struct {
		name  string
		term  string
		bonus float64
	}{
		{"equals grants equals, starts-with and includes", "vue docs", cfg.ExactEqualsBonus + cfg.ExactStartsWithBonus + cfg.ExactIncludesBonus + cfg.PhraseTitleBonus},
		{"title prefix", "vue", cfg.ExactStartsWithBonus},
		{"url prefix", "vuejs", cfg.ExactStartsWithBonus + cfg.ExactIncludesBonus},
		{"includes only", "guide", cfg.ExactIncludesBonus},
		{"includes below min chars", "docs", 0},
		{"no match at all", "golang", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textBonuses(cfg, tt.term, &it)
			assert.InDelta(t, tt.bonus, got, 1e-9)
		})
	}
}

func TestScore_IncludesBonusGrantedOncePerResult(t *testing.T) {
	cfg := testConfig()
	// Term occurs in both title and URL; the bonus must not stack.
	it := domain.NewBookmark("b", "grafana dashboards", "https://grafana.example.com", nil, time.Time{})

	got := textBonuses(cfg, "grafana", &it)
	assert.InDelta(t, cfg.ExactStartsWithBonus+cfg.ExactIncludesBonus, got, 1e-9)
}

func TestScore_TagAndFolderBonuses(t *testing.T) {
	cfg := testConfig()
	it := domain.NewBookmark("b", "Vue Docs #frontend #vue", "https://vuejs.org", []string{"Dev", "Web"}, time.Time{})

	assert.InDelta(t, cfg.ExactTagMatchBonus, textBonuses(cfg, "#frontend", &it), 1e-9)
	assert.InDelta(t, 2*cfg.ExactTagMatchBonus, textBonuses(cfg, "#frontend #vue", &it), 1e-9)
	assert.InDelta(t, cfg.ExactFolderMatchBonus, textBonuses(cfg, "~dev", &it), 1e-9)
	assert.Zero(t, textBonuses(cfg, "#backend", &it))
	assert.Zero(t, textBonuses(cfg, "~mail", &it), "folder must equal a segment exactly")
}

func TestScore_PhraseBonusesNeedTwoTerms(t *testing.T) {
	cfg := testConfig()
	it := domain.NewBookmark("b", "Effective Go Guide", "https://go.dev/effective-go", nil, time.Time{})

	single := textBonuses(cfg, "effective", &it)
	assert.InDelta(t, cfg.ExactStartsWithBonus+cfg.ExactIncludesBonus, single, 1e-9)

	multi := textBonuses(cfg, "effective go", &it)
	expected := cfg.ExactStartsWithBonus + cfg.ExactIncludesBonus + cfg.PhraseTitleBonus + cfg.PhraseURLBonus
	assert.InDelta(t, expected, multi, 1e-9)
}

func TestScore_CustomBonusToggle(t *testing.T) {
	cfg := testConfig()
	it := domain.NewBookmark("b", "Vue Docs +20", "https://vuejs.org", nil, time.Time{})
	require.Equal(t, 20, it.CustomBonus)

	cfg.CustomBonusEnabled = true
	with := scoreOf(cfg, "", plainCandidate(it))
	cfg.CustomBonusEnabled = false
	without := scoreOf(cfg, "", plainCandidate(it))

	assert.InDelta(t, 20, with-without, 1e-9)
}

func TestScore_VisitedBonusCapped(t *testing.T) {
	cfg := testConfig()

	few := domain.NewHistoryEntry("h1", "x", "https://x.zz", 4, time.Time{})
	many := domain.NewHistoryEntry("h2", "x", "https://x.zz", 10000, time.Time{})

	fewScore := scoreOf(cfg, "", plainCandidate(few))
	manyScore := scoreOf(cfg, "", plainCandidate(many))
	base := scoreOf(cfg, "", plainCandidate(domain.NewHistoryEntry("h0", "x", "https://x.zz", 0, time.Time{})))

	assert.InDelta(t, 4*cfg.VisitedBonusScore, fewScore-base, 1e-9)
	assert.InDelta(t, cfg.VisitedBonusScoreMax, manyScore-base, 1e-9)
}

func TestScore_RecencyBonusDecaysLinearly(t *testing.T) {
	cfg := testConfig()
	now := time.Now()
	window := time.Duration(cfg.HistoryDaysAgo) * 24 * time.Hour

	assert.InDelta(t, cfg.RecentBonusScoreMax, recencyBonus(cfg, now, now), 1e-6)
	assert.InDelta(t, cfg.RecentBonusScoreMax/2, recencyBonus(cfg, now.Add(-window/2), now), 1e-6)
	assert.Zero(t, recencyBonus(cfg, now.Add(-window), now))
	assert.Zero(t, recencyBonus(cfg, now.Add(-2*window), now), "never negative past the window")
	assert.Zero(t, recencyBonus(cfg, time.Time{}, now))
}

func TestScore_OpenTabBonus(t *testing.T) {
	cfg := testConfig()
	it := domain.NewBookmark("b", "GitHub", "https://github.com", nil, time.Time{})

	closed := scoreOf(cfg, "", plainCandidate(it))
	it.OpenTab = true
	open := scoreOf(cfg, "", plainCandidate(it))

	assert.InDelta(t, cfg.OpenTabBonus, open-closed, 1e-9)
}

func TestScore_BonusesMonotonic(t *testing.T) {
	// Adding any single matching condition never lowers the score.
	cfg := testConfig()
	term := "vue docs"

	plain := domain.NewBookmark("b1", "Unrelated", "https://x.zz", nil, time.Time{})
	variants := []domain.SearchItem{
		domain.NewBookmark("b2", "Vue Docs", "https://x.zz", nil, time.Time{}),
		domain.NewBookmark("b3", "Unrelated +5", "https://x.zz", nil, time.Time{}),
		domain.NewBookmark("b4", "Unrelated", "https://x.zz/vue-docs", nil, time.Time{}),
	}

	baseline := scoreOf(cfg, term, plainCandidate(plain))
	for _, v := range variants {
		assert.GreaterOrEqual(t, scoreOf(cfg, term, plainCandidate(v)), baseline)
	}
}

func TestScoreAndRank_SortStable(t *testing.T) {
	cfg := testConfig()
	cfg.MinScore = 0

	// Identical items score identically; merge order must survive the
	// sort.
	a := plainCandidate(domain.NewBookmark("first", "Zebra", "https://a.zz", nil, time.Time{}))
	b := plainCandidate(domain.NewBookmark("second", "Zebra", "https://b.zz", nil, time.Time{}))
	c := plainCandidate(domain.NewTab("third", "Zebra", "https://c.zz", time.Time{}))

	results := scoreAndRank(cfg, "", []candidate{a, b, c}, 0, time.Now())
	require.Len(t, results, 3)

	assert.Equal(t, "first", results[0].Item.ID)
	assert.Equal(t, "second", results[1].Item.ID)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "third", results[2].Item.ID, "lower-scoring tab sorts after")
}

func TestScoreAndRank_FiltersAndTruncates(t *testing.T) {
	cfg := testConfig()

	bookmark := plainCandidate(domain.NewBookmark("keep", "GitHub", "https://github.com", nil, time.Time{}))
	engine := plainCandidate(domain.NewSearchEngineEntry(domain.SearchEngine{Name: "G", URLTemplate: "https://g.zz/?q=$s"}, "x"))
	cfg.MinScore = 60

	results := scoreAndRank(cfg, "", []candidate{bookmark, engine}, 0, time.Now())
	require.Len(t, results, 1, "engine entry scores below the minimum")
	assert.Equal(t, "keep", results[0].Item.ID)

	cfg.MinScore = 0
	results = scoreAndRank(cfg, "", []candidate{bookmark, engine}, 1, time.Now())
	require.Len(t, results, 1)
	assert.Equal(t, "keep", results[0].Item.ID)
}

func TestHighlightRanges_SplitPerField(t *testing.T) {
	it := domain.NewBookmark("b", "GitHub", "https://github.com", nil, time.Time{})

	// Title bytes 0-5, separator at 6, URL from 7.
	titleRanges, urlRanges := highlightRanges(&it, []int{0, 1, 2, 7, 8, 9})
	require.Len(t, titleRanges, 1)
	assert.Equal(t, domain.HighlightRange{Start: 0, End: 3}, titleRanges[0])
	require.Len(t, urlRanges, 1)
	assert.Equal(t, domain.HighlightRange{Start: 0, End: 3}, urlRanges[0])

	// Separator positions are dropped.
	titleRanges, urlRanges = highlightRanges(&it, []int{6})
	assert.Empty(t, titleRanges)
	assert.Empty(t, urlRanges)
}
