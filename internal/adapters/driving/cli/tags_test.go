package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsCmd_ListsMostUsedFirst(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("tags")

	require.NoError(t, err)
	assert.Contains(t, out, "#dev (2)")
	assert.Contains(t, out, "#go (1)")
	assert.Less(t, strings.Index(out, "#dev"), strings.Index(out, "#go"))
}

func TestTagsCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer func() { tagsJSON = false }()

	out, err := execute("tags", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"dev"`)
	assert.Contains(t, out, `"b1"`)
	assert.NotContains(t, out, "#dev (")
}

func TestFoldersCmd_ListsCounts(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("folders")

	require.NoError(t, err)
	assert.Contains(t, out, "~Dev (3)")
}

func TestTagsCmd_EmptyTaxonomy(t *testing.T) {
	search, cleanup := setupTestServices()
	defer cleanup()
	_ = search

	old := searchService
	searchService = &emptyTaxonomyService{mockSearchService{}}
	defer func() { searchService = old }()

	out, err := execute("tags")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing found.")
}

func TestTagsCmd_WithoutServicesFails(t *testing.T) {
	old := searchService
	searchService = nil
	defer func() { searchService = old }()

	_, err := execute("tags")

	assert.ErrorIs(t, err, errNotConfigured)
}

// emptyTaxonomyService overrides the canned taxonomy with nothing.
type emptyTaxonomyService struct {
	mockSearchService
}

func (e *emptyTaxonomyService) UniqueTags() map[string][]string    { return nil }
func (e *emptyTaxonomyService) UniqueFolders() map[string][]string { return nil }
