package domain

import (
	"sort"
	"strings"
)

// SearchOptions configures a single search call.
type SearchOptions struct {
	// Mode selects the datasets to search. The engine treats an empty
	// mode as SearchModeAll.
	Mode SearchMode

	// Strategy overrides the configured text strategy when set.
	Strategy SearchStrategy

	// MaxResults overrides the configured result cap when positive.
	MaxResults int

	// ActiveURL is the URL of the currently focused tab. Queries shorter
	// than the minimum match length surface entries matching it.
	ActiveURL string
}

// HighlightRange marks a matched byte range [Start, End) within a field.
type HighlightRange struct {
	Start int
	End   int
}

// RangesFromPositions converts matched byte positions into a minimal
// ordered set of half-open ranges, merging adjacent positions.
func RangesFromPositions(positions []int) []HighlightRange {
	if len(positions) == 0 {
		return nil
	}
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)

	ranges := []HighlightRange{{Start: sorted[0], End: sorted[0] + 1}}
	for _, p := range sorted[1:] {
		last := &ranges[len(ranges)-1]
		switch {
		case p < last.End:
			// duplicate position
		case p == last.End:
			last.End = p + 1
		default:
			ranges = append(ranges, HighlightRange{Start: p, End: p + 1})
		}
	}
	return ranges
}

// Result is a scored search hit. The engine allocates a fresh Result per
// query; the embedded item is a copy and safe to hold.
type Result struct {
	// Item is the matched entry.
	Item SearchItem

	// Score is the final relevance score.
	Score float64

	// SearchScore is the raw match quality in [0, 1] before weighting.
	SearchScore float64

	// Approach records which matcher produced the hit.
	Approach SearchApproach

	// TitleRanges are matched byte ranges within Item.Title.
	TitleRanges []HighlightRange

	// URLRanges are matched byte ranges within Item.URL.
	URLRanges []HighlightRange
}

// HighlightedTitle returns the title with matched ranges wrapped in the
// given markers.
func (r *Result) HighlightedTitle(openTag, closeTag string) string {
	return applyHighlights(r.Item.Title, r.TitleRanges, openTag, closeTag)
}

// HighlightedURL returns the normalised URL with matched ranges wrapped
// in the given markers.
func (r *Result) HighlightedURL(openTag, closeTag string) string {
	return applyHighlights(r.Item.URL, r.URLRanges, openTag, closeTag)
}

func applyHighlights(s string, ranges []HighlightRange, openTag, closeTag string) string {
	if len(ranges) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(ranges)*(len(openTag)+len(closeTag)))
	prev := 0
	for _, r := range ranges {
		if r.Start < prev || r.End > len(s) || r.Start >= r.End {
			continue
		}
		b.WriteString(s[prev:r.Start])
		b.WriteString(openTag)
		b.WriteString(s[r.Start:r.End])
		b.WriteString(closeTag)
		prev = r.End
	}
	b.WriteString(s[prev:])
	return b.String()
}
