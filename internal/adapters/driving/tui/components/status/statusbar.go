// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateError     State = "error"
)

// Bar displays the search state, result count, active mode and
// keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	mode        domain.SearchMode
	approach    domain.SearchApproach
	resultCount int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		mode:   domain.SearchModeAll,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, mode and result count.
func (s *Bar) renderLeft() string {
	mode := s.styles.Subtitle.Render("[" + s.mode.String() + "]")

	switch s.state {
	case StateSearching:
		return mode + " " + s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return mode + " " + s.styles.Error.Render("Error: "+s.message)
		}
		return mode + " " + s.styles.Error.Render("Error")
	case StateResults:
		summary := fmt.Sprintf("%d results", s.resultCount)
		if s.approach != "" {
			summary += " · " + s.approach.String()
		}
		if s.message != "" {
			summary += " · " + s.message
		}
		return mode + " " + s.styles.Normal.Render(summary)
	case StateReady:
	}
	if s.message != "" {
		return mode + " " + s.styles.Normal.Render(s.message)
	}
	return mode + " " + s.styles.Muted.Render("Type to search")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	hints := make([]string, 0, 4)
	for _, b := range s.keymap.ShortHelp() {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetMode sets the displayed search mode.
func (s *Bar) SetMode(mode domain.SearchMode) {
	s.mode = mode
}

// Mode returns the displayed search mode.
func (s *Bar) Mode() domain.SearchMode {
	return s.mode
}

// SetApproach records which matcher produced the current results.
func (s *Bar) SetApproach(a domain.SearchApproach) {
	s.approach = a
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.approach = ""
	s.resultCount = 0
}
