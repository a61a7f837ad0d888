// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// DebounceElapsed fires when the per-keystroke debounce interval has
// passed. Seq identifies the keystroke that scheduled it; a stale Seq
// means another keystroke arrived in the meantime and this tick is
// ignored.
type DebounceElapsed struct {
	Seq uint64
}

// SearchCompleted carries search results back to the model. Seq is the
// request sequence of the query that produced them; completions whose
// Seq is no longer current are discarded, so a slow older search can
// never overwrite the results of a newer one.
type SearchCompleted struct {
	Seq     uint64
	Term    string
	Results []domain.Result
	Err     error
}

// ModeChanged is sent when the search mode is cycled.
type ModeChanged struct {
	Mode domain.SearchMode
}

// ActionFeedback reports the outcome of opening or copying a result.
type ActionFeedback struct {
	Message string
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
