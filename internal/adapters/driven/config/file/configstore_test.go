package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "omnibar")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSearchConfig(), cfg)
}

func TestConfigStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := domain.DefaultSearchConfig()
	want.Strategy = domain.StrategyFuzzy
	want.Fuzziness = 0.9
	want.MaxResults = 7
	want.OpenTabBonus = 42
	want.CustomSearchEngines = []domain.CustomSearchEngine{
		{Alias: "yt", Name: "YouTube", URLTemplate: "https://www.youtube.com/results?search_query=$s"},
	}

	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConfigStore_PartialFileKeepsDefaults(t *testing.T) {
	store := newTestStore(t)

	partial := "[search]\nstrategy = \"fuzzy\"\nfuzziness = 0.8\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(partial), 0600))

	cfg, err := store.Load()
	require.NoError(t, err)

	defaults := domain.DefaultSearchConfig()
	assert.Equal(t, domain.StrategyFuzzy, cfg.Strategy)
	assert.Equal(t, 0.8, cfg.Fuzziness)
	assert.Equal(t, defaults.MaxResults, cfg.MaxResults, "unset fields keep their defaults")
	assert.Equal(t, defaults.BookmarkBaseScore, cfg.BookmarkBaseScore)
	assert.Equal(t, defaults.SearchEngines, cfg.SearchEngines)
}

func TestConfigStore_MalformedFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("not = [valid = toml"), 0600))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestConfigStore_InvalidValuesRejected(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("[search]\nfuzziness = 2.5\n"), 0600))

	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestConfigStore_SaveRestrictsPermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(domain.DefaultSearchConfig()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
