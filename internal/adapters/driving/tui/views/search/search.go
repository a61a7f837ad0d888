// Package search provides the incremental search view for the TUI.
package search

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driving"
)

// modeCycle is the order Tab steps through the search modes.
var modeCycle = []domain.SearchMode{
	domain.SearchModeAll,
	domain.SearchModeBookmarks,
	domain.SearchModeTabs,
	domain.SearchModeHistory,
}

// View is the as-you-type search view: every keystroke schedules a
// debounced search tagged with a request sequence, and completions
// carrying a stale sequence are discarded. Typing fast therefore costs
// one search, and a slow old search can never clobber newer results.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	actionService driving.ResultActionService
	ctx           context.Context

	mode     domain.SearchMode
	debounce time.Duration

	// seq numbers the most recent keystroke. Debounce ticks and search
	// completions both carry the seq that spawned them.
	seq      uint64
	lastTerm string

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	actionService driving.ResultActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	debounce := 150 * time.Millisecond
	if searchService != nil {
		if ms := searchService.Config().DebounceMS; ms > 0 {
			debounce = time.Duration(ms) * time.Millisecond
		}
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		actionService: actionService,
		ctx:           context.Background(),
		mode:          domain.SearchModeAll,
		debounce:      debounce,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DebounceElapsed:
		if msg.Seq != v.seq {
			return v, nil
		}
		return v, v.performSearch(msg.Seq, v.input.Value())

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ActionFeedback:
		if msg.Err != nil {
			v.statusbar.SetMessage(msg.Err.Error())
		} else {
			v.statusbar.SetMessage(msg.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input. Navigation and action keys
// are intercepted; everything else edits the query.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case key.Matches(msg, v.keymap.Open):
		return v, v.openSelected()

	case key.Matches(msg, v.keymap.Copy):
		return v, v.copySelected()

	case key.Matches(msg, v.keymap.CycleMode):
		v.cycleMode()
		return v, v.scheduleSearch()

	case key.Matches(msg, v.keymap.Clear):
		if v.input.Value() == "" {
			return v, func() tea.Msg { return messages.Quit{} }
		}
		v.input.Reset()
		return v, v.scheduleSearch()
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return v, cmd
	}
	return v, tea.Batch(cmd, v.scheduleSearch())
}

// scheduleSearch bumps the request sequence and returns a command that
// fires a debounce tick for it.
func (v *View) scheduleSearch() tea.Cmd {
	v.seq++
	seq := v.seq
	v.statusbar.SetState(status.StateSearching)
	return tea.Tick(v.debounce, func(time.Time) tea.Msg {
		return messages.DebounceElapsed{Seq: seq}
	})
}

// performSearch runs the query in the background.
func (v *View) performSearch(seq uint64, term string) tea.Cmd {
	mode := v.mode
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := v.searchService.Search(v.ctx, term, domain.SearchOptions{Mode: mode})
		return messages.SearchCompleted{Seq: seq, Term: term, Results: results, Err: err}
	}
}

// handleSearchCompleted applies results unless they are stale.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.lastTerm = msg.Term
	v.list.SetResults(msg.Results)
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
	if len(msg.Results) > 0 {
		v.statusbar.SetApproach(msg.Results[0].Approach)
	} else {
		v.statusbar.SetApproach("")
	}
}

// openSelected opens the selected result in the browser.
func (v *View) openSelected() tea.Cmd {
	result := v.list.SelectedResult()
	if result == nil {
		return nil
	}
	return func() tea.Msg {
		if v.actionService == nil {
			return messages.ActionFeedback{Err: ErrNoActionService}
		}
		if err := v.actionService.Open(v.ctx, result); err != nil {
			return messages.ActionFeedback{Err: err}
		}
		return messages.ActionFeedback{Message: "Opened " + result.Item.URL}
	}
}

// copySelected copies the selected result's URL.
func (v *View) copySelected() tea.Cmd {
	result := v.list.SelectedResult()
	if result == nil {
		return nil
	}
	return func() tea.Msg {
		if v.actionService == nil {
			return messages.ActionFeedback{Err: ErrNoActionService}
		}
		if err := v.actionService.CopyURL(v.ctx, result); err != nil {
			return messages.ActionFeedback{Err: err}
		}
		return messages.ActionFeedback{Message: "Copied " + result.Item.URL}
	}
}

// cycleMode steps to the next search mode.
func (v *View) cycleMode() {
	for i, m := range modeCycle {
		if m == v.mode {
			v.mode = modeCycle[(i+1)%len(modeCycle)]
			v.statusbar.SetMode(v.mode)
			return
		}
	}
	v.mode = domain.SearchModeAll
	v.statusbar.SetMode(v.mode)
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.input.View(),
		"",
		v.list.View(),
		"",
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query without searching.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Mode returns the active search mode.
func (v *View) Mode() domain.SearchMode {
	return v.mode
}

// Results returns the current search results.
func (v *View) Results() []domain.Result {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.Result {
	return v.list.SelectedResult()
}

// Seq returns the current request sequence.
func (v *View) Seq() uint64 {
	return v.seq
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the query, the results and the status bar.
func (v *View) Reset() {
	v.input.Reset()
	v.list.SetResults(nil)
	v.err = nil
	v.lastTerm = ""
	v.statusbar.Clear()
	v.statusbar.SetMode(v.mode)
}
