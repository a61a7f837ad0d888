package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/omnibar/internal/core/domain"
)

type stubSearchService struct {
	results []domain.Result
	err     error
}

func (s *stubSearchService) Search(context.Context, string, domain.SearchOptions) ([]domain.Result, error) {
	return s.results, s.err
}

func (s *stubSearchService) UniqueTags() map[string][]string    { return nil }
func (s *stubSearchService) UniqueFolders() map[string][]string { return nil }
func (s *stubSearchService) ResetCache(domain.SearchMode)       {}
func (s *stubSearchService) ResetAllCaches()                    {}
func (s *stubSearchService) Config() domain.SearchConfig        { return domain.DefaultSearchConfig() }

type stubActionService struct{}

func (s *stubActionService) Open(context.Context, *domain.Result) error    { return nil }
func (s *stubActionService) CopyURL(context.Context, *domain.Result) error { return nil }

func validPorts() *Ports {
	return &Ports{
		Search:       &stubSearchService{},
		ResultAction: &stubActionService{},
	}
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"valid", validPorts(), nil},
		{"missing search", &Ports{ResultAction: &stubActionService{}}, ErrMissingSearchService},
		{"missing action", &Ports{Search: &stubSearchService{}}, ErrMissingActionService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewApp(t *testing.T) {
	t.Run("valid ports", func(t *testing.T) {
		app, err := NewApp(validPorts())
		require.NoError(t, err)
		assert.NotNil(t, app)
		assert.False(t, app.Ready())
	})

	t.Run("invalid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		assert.ErrorIs(t, err, ErrMissingSearchService)
		assert.Nil(t, app)
	})
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app = model.(*App)
	assert.True(t, app.Ready())
	assert.NotEqual(t, "Initialising...", app.View())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessageQuits(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ForwardsToSearchView(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	app = model.(*App)

	assert.Equal(t, "g", app.Query())
}

func TestApp_AppliesSearchResults(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	app = model.(*App)

	results := []domain.Result{
		{Item: domain.NewBookmark("b1", "GitHub", "https://github.com/", nil, time.Time{}), Score: 100},
	}
	model, _ = app.Update(messages.SearchCompleted{Seq: 1, Term: "g", Results: results})
	app = model.(*App)

	require.Len(t, app.Results(), 1)
	assert.Equal(t, 0, app.SelectedIndex())
	assert.Contains(t, app.View(), "GitHub")
}

func TestApp_RecordsErrors(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	app = model.(*App)
	model, _ = app.Update(messages.SearchCompleted{Seq: 1, Err: domain.ErrMatcherFailure})
	app = model.(*App)

	assert.ErrorIs(t, app.Err(), domain.ErrMatcherFailure)
}
