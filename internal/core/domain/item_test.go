package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseTitle_Annotations tests bonus and tag extraction from titles
func TestParseTitle_Annotations(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantTags  []string
		wantBonus int
	}{
		{"plain title", "Go Blog", "Go Blog", nil, 0},
		{"bonus and tags", "Vue Docs +20 #frontend #vue", "Vue Docs", []string{"frontend", "vue"}, 20},
		{"bonus only", "Daily Standup +5", "Daily Standup", nil, 5},
		{"negative bonus", "Old Wiki +-10", "Old Wiki", nil, -10},
		{"tags only", "Recipes #food #dinner", "Recipes", []string{"food", "dinner"}, 0},
		{"tag keeps case", "Docs #Frontend", "Docs", []string{"Frontend"}, 0},
		{"non numeric plus stays", "C++ Guide +fun", "C++ Guide +fun", nil, 0},
		{"lone plus stays", "A + B", "A + B", nil, 0},
		{"lone hash stays", "Issue # 42", "Issue # 42", nil, 0},
		{"last bonus wins", "X +5 +9", "X", nil, 9},
		{"extra whitespace", "  Spaced   Out  #x ", "Spaced Out", []string{"x"}, 0},
		{"empty", "", "", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, tags, bonus := ParseTitle(tt.raw)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantTags, tags)
			assert.Equal(t, tt.wantBonus, bonus)
		})
	}
}

// TestNewBookmark_DerivedFields tests that construction precomputes every match field
func TestNewBookmark_DerivedFields(t *testing.T) {
	added := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	it := NewBookmark("bm-1", "Vue Docs +20 #Frontend #vue", "https://vuejs.org/guide/?ref=home", []string{"Dev", "JS"}, added)

	assert.Equal(t, KindBookmark, it.Kind)
	assert.Equal(t, "bm-1", it.ID)
	assert.Equal(t, "Vue Docs", it.Title)
	assert.Equal(t, "vue docs", it.TitleLower)
	assert.Equal(t, "vuejs.org/guide", it.URL)
	assert.Equal(t, "https://vuejs.org/guide/?ref=home", it.OriginalURL)
	assert.Equal(t, []string{"Frontend", "vue"}, it.Tags)
	assert.Equal(t, "#Frontend #vue", it.TagMarks)
	assert.Equal(t, "#frontend #vue", it.TagMarksLower)
	assert.Equal(t, []string{"Dev", "JS"}, it.FolderPath)
	assert.Equal(t, "~Dev ~JS", it.FolderMarks)
	assert.Equal(t, "~dev ~js", it.FolderMarksLower)
	assert.Equal(t, 20, it.CustomBonus)
	assert.Equal(t, added, it.DateAdded)

	require.Contains(t, it.SearchString, "Vue Docs")
	require.Contains(t, it.SearchString, "vuejs.org/guide")
	require.Contains(t, it.SearchString, "#Frontend #vue")
	require.Contains(t, it.SearchString, "~Dev ~JS")
	assert.NotContains(t, it.SearchString, "?ref=home")
}

// TestNewBookmark_OriginalURLKeepsQuery tests that OriginalURL only loses trailing slashes
func TestNewBookmark_OriginalURLKeepsQuery(t *testing.T) {
	it := NewBookmark("bm-2", "Repo", "https://github.com/golang/go/", nil, time.Time{})

	assert.Equal(t, "https://github.com/golang/go", it.OriginalURL)
	assert.Equal(t, "github.com/golang/go", it.URL)
}

// TestNewTab_UntitledFallsBackToURL tests the URL fallback for untitled entries
func TestNewTab_UntitledFallsBackToURL(t *testing.T) {
	it := NewTab("tab-1", "  ", "https://example.com/page", time.Time{})

	assert.Equal(t, "example.com/page", it.Title)
	assert.Equal(t, "example.com/page", it.TitleLower)
}

// TestNewHistoryEntry_VisitMetadata tests visit fields on history items
func TestNewHistoryEntry_VisitMetadata(t *testing.T) {
	visited := time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)
	it := NewHistoryEntry("h-1", "Go Blog", "https://go.dev/blog/", 7, visited)

	assert.Equal(t, KindHistory, it.Kind)
	assert.Equal(t, 7, it.VisitCount)
	assert.Equal(t, visited, it.LastVisit)
	assert.Empty(t, it.TagMarks)
	assert.Empty(t, it.FolderMarks)
}

// TestSearchItem_FieldAt tests byte offset to field translation
func TestSearchItem_FieldAt(t *testing.T) {
	it := NewBookmark("bm-3", "Go #lang", "https://go.dev", []string{"Dev"}, time.Time{})
	// SearchString: "Go" SEP "go.dev" SEP "#lang" SEP "~Dev"

	field, pos, ok := it.FieldAt(0)
	require.True(t, ok)
	assert.Equal(t, FieldTitle, field)
	assert.Equal(t, 0, pos)

	field, pos, ok = it.FieldAt(len("Go") + 1)
	require.True(t, ok)
	assert.Equal(t, FieldURL, field)
	assert.Equal(t, 0, pos)

	tagStart := len("Go") + 1 + len("go.dev") + 1
	field, pos, ok = it.FieldAt(tagStart + 1)
	require.True(t, ok)
	assert.Equal(t, FieldTags, field)
	assert.Equal(t, 1, pos)

	folderStart := tagStart + len("#lang") + 1
	field, _, ok = it.FieldAt(folderStart)
	require.True(t, ok)
	assert.Equal(t, FieldFolder, field)

	// Separator bytes and out-of-range offsets belong to no field.
	_, _, ok = it.FieldAt(len("Go"))
	assert.False(t, ok)
	_, _, ok = it.FieldAt(-1)
	assert.False(t, ok)
	_, _, ok = it.FieldAt(len(it.SearchString))
	assert.False(t, ok)
}

// TestSearchItem_HasTag tests case-insensitive tag lookup
func TestSearchItem_HasTag(t *testing.T) {
	it := NewBookmark("bm-4", "Docs #Frontend #vue", "https://vuejs.org", nil, time.Time{})

	assert.True(t, it.HasTag("frontend"))
	assert.True(t, it.HasTag("#Vue"))
	assert.False(t, it.HasTag("backend"))
}

// TestSearchItem_HasFolder tests case-insensitive folder lookup
func TestSearchItem_HasFolder(t *testing.T) {
	it := NewBookmark("bm-5", "Docs", "https://vuejs.org", []string{"Dev", "Web Stuff"}, time.Time{})

	assert.True(t, it.HasFolder("dev"))
	assert.True(t, it.HasFolder("~web stuff"))
	assert.False(t, it.HasFolder("misc"))
}

// TestItemKind_Properties tests kind enum helpers
func TestItemKind_Properties(t *testing.T) {
	for _, k := range []ItemKind{KindBookmark, KindTab, KindHistory, KindSearchEngine, KindCustomEngine, KindDirectURL} {
		assert.True(t, k.IsValid(), k)
		assert.NotEqual(t, unknownDescription, k.Description(), k)
		assert.NotEqual(t, "?", k.Badge(), k)
	}

	assert.False(t, ItemKind("note").IsValid())
	assert.Equal(t, "?", ItemKind("note").Badge())

	assert.False(t, KindBookmark.Synthetic())
	assert.False(t, KindTab.Synthetic())
	assert.False(t, KindHistory.Synthetic())
	assert.True(t, KindSearchEngine.Synthetic())
	assert.True(t, KindCustomEngine.Synthetic())
	assert.True(t, KindDirectURL.Synthetic())
}
