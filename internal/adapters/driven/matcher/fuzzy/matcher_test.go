package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

func TestMatcher_ExactSubstring(t *testing.T) {
	m := New()

	hits, err := m.Match("git", []string{"github.com"}, driven.MatchOptions{Tolerance: 0})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, 0, hits[0].Index)
	assert.Equal(t, 0, hits[0].Insertions)
	assert.Equal(t, []int{0, 1, 2}, hits[0].Positions)
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	m := New()

	hits, err := m.Match("GitHub", []string{"github.com"}, driven.MatchOptions{Tolerance: 0})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Insertions)
}

func TestMatcher_ToleranceRejectsGappyMatches(t *testing.T) {
	m := New()

	// "gm" in "github.com" needs every character between g and m.
	hits, err := m.Match("gm", []string{"github.com"}, driven.MatchOptions{Tolerance: 2})
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = m.Match("gm", []string{"github.com"}, driven.MatchOptions{Tolerance: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 8, hits[0].Insertions)
}

func TestMatcher_HitsAscendingOrder(t *testing.T) {
	m := New()
	haystack := []string{"vue documentation", "unrelated", "vue devtools", "vuex store"}

	hits, err := m.Match("vue", haystack, driven.MatchOptions{Tolerance: 0})
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, 0, hits[0].Index)
	assert.Equal(t, 2, hits[1].Index)
	assert.Equal(t, 3, hits[2].Index)
}

func TestMatcher_NoMatch(t *testing.T) {
	m := New()

	hits, err := m.Match("zzz", []string{"github.com"}, driven.MatchOptions{Tolerance: 4})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMatcher_EmptyInputs(t *testing.T) {
	m := New()

	hits, err := m.Match("", []string{"github.com"}, driven.MatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = m.Match("git", nil, driven.MatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMatcher_TypoToleranceRecoversDoubledRune(t *testing.T) {
	m := New()

	// "gitthub" is no subsequence of "github.com"; dropping one t is.
	opts := driven.MatchOptions{Tolerance: 0}
	hits, err := m.Match("gitthub", []string{"github.com"}, opts)
	require.NoError(t, err)
	assert.Empty(t, hits)

	opts.TypoTolerance = true
	hits, err = m.Match("gitthub", []string{"github.com"}, opts)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Insertions, "typo matches cost one insertion")
}

func TestMatcher_TypoToleranceSkipsShortTerms(t *testing.T) {
	m := New()

	opts := driven.MatchOptions{Tolerance: 0, TypoTolerance: true}
	hits, err := m.Match("xy", []string{"example.com"}, opts)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMatcher_TypoTolerancePrefersCleanMatch(t *testing.T) {
	m := New()

	opts := driven.MatchOptions{Tolerance: 2, TypoTolerance: true}
	hits, err := m.Match("vue", []string{"vue docs"}, opts)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Insertions, "clean hit must not be replaced by a variant hit")
}

func TestDeletionVariants(t *testing.T) {
	assert.Equal(t, []string{"bc", "ac", "ab"}, deletionVariants("abc"))
}

func TestInsertions(t *testing.T) {
	assert.Equal(t, 0, insertions(nil))
	assert.Equal(t, 0, insertions([]int{4}))
	assert.Equal(t, 0, insertions([]int{2, 3, 4}))
	assert.Equal(t, 3, insertions([]int{0, 2, 5}))
}
