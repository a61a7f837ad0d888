// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/omnibar/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// ResultList displays search results in a navigable list. Matched
// characters are highlighted using the ranges the engine reports.
type ResultList struct {
	results  []domain.Result
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
			// Typing is handled by the input component
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	// Each result takes two lines plus a blank.
	visibleCount := (r.height - 1) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	lines := make([]string, 0, (end-start)*3)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]), "")
	}
	return strings.Join(lines, "\n")
}

// renderResult formats a single result as a title line and a url line.
func (r *ResultList) renderResult(index int, result *domain.Result) string {
	indicator := "  "
	titleStyle := r.styles.Normal
	if index == r.selected {
		indicator = "> "
		titleStyle = r.styles.Selected
	}

	badge := r.styles.Badge.Render(result.Item.Kind.Badge())
	title := renderHighlighted(result.Item.Title, result.TitleRanges, titleStyle, r.styles.Highlight)
	score := r.styles.Muted.Render(fmt.Sprintf("(%.0f)", result.Score))

	titleLine := lipgloss.JoinHorizontal(lipgloss.Top, indicator, badge, " ", title, "  ", score)

	url := renderHighlighted(truncate(result.Item.URL, r.width-8), result.URLRanges, r.styles.Muted, r.styles.Highlight)
	meta := r.metaSuffix(&result.Item)
	urlLine := "    " + url + meta

	return titleLine + "\n" + urlLine
}

// metaSuffix appends tags, folders and visit recency after the URL.
func (r *ResultList) metaSuffix(it *domain.SearchItem) string {
	var parts []string
	if it.TagMarks != "" {
		parts = append(parts, it.TagMarks)
	}
	if it.FolderMarks != "" {
		parts = append(parts, it.FolderMarks)
	}
	if !it.LastVisit.IsZero() {
		parts = append(parts, humanize.Time(it.LastVisit))
	}
	if it.OpenTab {
		parts = append(parts, "open")
	}
	if it.Dupe {
		parts = append(parts, "dupe")
	}
	if len(parts) == 0 {
		return ""
	}
	return r.styles.Muted.Render("  " + strings.Join(parts, " · "))
}

// renderHighlighted styles text with the matched byte ranges rendered
// in the highlight style. Ranges are assumed sorted and disjoint, as
// the engine produces them.
func renderHighlighted(text string, ranges []domain.HighlightRange, base, highlight lipgloss.Style) string {
	if len(ranges) == 0 {
		return base.Render(text)
	}

	var b strings.Builder
	pos := 0
	for _, rng := range ranges {
		if rng.Start >= len(text) {
			break
		}
		end := rng.End
		if end > len(text) {
			end = len(text)
		}
		if rng.Start > pos {
			b.WriteString(base.Render(text[pos:rng.Start]))
		}
		b.WriteString(highlight.Render(text[rng.Start:end]))
		pos = end
	}
	if pos < len(text) {
		b.WriteString(base.Render(text[pos:]))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// SetResults updates the result list.
func (r *ResultList) SetResults(results []domain.Result) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.Result {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.Result {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}
