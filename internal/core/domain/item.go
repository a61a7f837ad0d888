package domain

import (
	"strconv"
	"strings"
	"time"
)

// ItemKind identifies what a search item represents.
type ItemKind string

// Available item kinds.
const (
	// KindBookmark is a saved bookmark.
	KindBookmark ItemKind = "bookmark"

	// KindTab is a currently open browser tab.
	KindTab ItemKind = "tab"

	// KindHistory is a browsing history entry.
	KindHistory ItemKind = "history"

	// KindSearchEngine is a web-search fallback synthesised for the
	// current term.
	KindSearchEngine ItemKind = "search-engine"

	// KindCustomEngine is a user-defined search shortcut triggered by
	// its alias.
	KindCustomEngine ItemKind = "custom-engine"

	// KindDirectURL is a navigate-to-address entry synthesised when the
	// term reads as a URL.
	KindDirectURL ItemKind = "direct-url"
)

// IsValid reports whether the kind is recognised.
func (k ItemKind) IsValid() bool {
	switch k {
	case KindBookmark, KindTab, KindHistory, KindSearchEngine, KindCustomEngine, KindDirectURL:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ItemKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k ItemKind) Description() string {
	switch k {
	case KindBookmark:
		return "Bookmark"
	case KindTab:
		return "Open Tab"
	case KindHistory:
		return "History"
	case KindSearchEngine:
		return "Web Search"
	case KindCustomEngine:
		return "Custom Search"
	case KindDirectURL:
		return "Direct URL"
	default:
		return unknownDescription
	}
}

// Badge returns the single-character marker used in result listings.
func (k ItemKind) Badge() string {
	switch k {
	case KindBookmark:
		return "B"
	case KindTab:
		return "T"
	case KindHistory:
		return "H"
	case KindSearchEngine:
		return "S"
	case KindCustomEngine:
		return "C"
	case KindDirectURL:
		return "U"
	default:
		return "?"
	}
}

// Synthetic reports whether items of this kind are generated per query
// rather than ingested from a browser profile.
func (k ItemKind) Synthetic() bool {
	return k == KindSearchEngine || k == KindCustomEngine || k == KindDirectURL
}

// Taxonomy markers. A tag annotation in a bookmark title is "#name";
// a folder is rendered as "~name". A query starting with a marker is
// routed to the taxonomy matcher.
const (
	TagMarker    = "#"
	FolderMarker = "~"
)

// searchSep separates the logical fields inside SearchString. Control
// bytes never occur in titles or URLs, so field boundaries stay
// unambiguous.
const searchSep = "\x1f"

// ItemField names a logical field of a search item. The fuzzy matcher
// reports which field a match landed in so scoring can weight it.
type ItemField string

// Fields addressable inside SearchString.
const (
	FieldTitle  ItemField = "title"
	FieldURL    ItemField = "url"
	FieldTags   ItemField = "tags"
	FieldFolder ItemField = "folder"
)

// String returns the string representation.
func (f ItemField) String() string {
	return string(f)
}

// SearchItem is one searchable entry. Derived fields are computed once
// at construction; the search pipeline treats items as read-only.
type SearchItem struct {
	// Kind identifies what the item represents.
	Kind ItemKind

	// ID is the stable identifier from the originating browser profile.
	ID string

	// Title is the display title with bonus and tag annotations removed.
	Title string

	// TitleLower is Title lowercased for case-insensitive matching.
	TitleLower string

	// URL is the normalised form produced by CleanURL.
	URL string

	// OriginalURL is the raw URL with only trailing slashes removed.
	// Opening an item navigates here.
	OriginalURL string

	// Tags are bare tag names parsed from the bookmark title.
	Tags []string

	// TagMarks is the marker form of Tags ("#dev #go"). It is embedded in
	// SearchString and drives taxonomy matching.
	TagMarks string

	// TagMarksLower is TagMarks lowercased.
	TagMarksLower string

	// FolderPath is the bookmark folder breadcrumb, root first, without
	// the browser's fixed top-level containers.
	FolderPath []string

	// FolderMarks is the marker form of FolderPath ("~Dev ~Go").
	FolderMarks string

	// FolderMarksLower is FolderMarks lowercased.
	FolderMarksLower string

	// SearchString joins title, URL, tag marks and folder marks with a
	// separator byte. FieldAt maps byte offsets back to logical fields.
	SearchString string

	// SearchStringLower is SearchString lowercased.
	SearchStringLower string

	// CustomBonus is the score adjustment parsed from a "+N" title
	// annotation. Zero when absent.
	CustomBonus int

	// DateAdded is when the bookmark was created. Zero for other kinds.
	DateAdded time.Time

	// VisitCount is how often the URL was visited. History entries carry
	// it natively; bookmarks and tabs absorb it from history entries with
	// the same normalised URL.
	VisitCount int

	// LastVisit is the most recent visit time. Zero when unknown.
	LastVisit time.Time

	// Dupe marks bookmarks whose normalised URL appears on more than one
	// bookmark.
	Dupe bool

	// OpenTab marks bookmarks whose URL is currently open in a tab.
	OpenTab bool
}

// NewBookmark builds a bookmark item from raw profile data. The raw
// title may carry annotations: "+N" sets CustomBonus and "#tag" tokens
// become Tags; both are stripped from the display title.
func NewBookmark(id, rawTitle, rawURL string, folderPath []string, added time.Time) SearchItem {
	title, tags, bonus := ParseTitle(rawTitle)
	it := SearchItem{
		Kind:        KindBookmark,
		ID:          id,
		Title:       title,
		URL:         CleanURL(rawURL),
		OriginalURL: TrimTrailingSlash(rawURL),
		Tags:        tags,
		FolderPath:  append([]string(nil), folderPath...),
		CustomBonus: bonus,
		DateAdded:   added,
	}
	it.derive()
	return it
}

// NewTab builds an item for an open browser tab.
func NewTab(id, title, rawURL string, lastAccess time.Time) SearchItem {
	it := SearchItem{
		Kind:        KindTab,
		ID:          id,
		Title:       strings.TrimSpace(title),
		URL:         CleanURL(rawURL),
		OriginalURL: TrimTrailingSlash(rawURL),
		LastVisit:   lastAccess,
	}
	it.derive()
	return it
}

// NewHistoryEntry builds an item for a browsing history row.
func NewHistoryEntry(id, title, rawURL string, visitCount int, lastVisit time.Time) SearchItem {
	it := SearchItem{
		Kind:        KindHistory,
		ID:          id,
		Title:       strings.TrimSpace(title),
		URL:         CleanURL(rawURL),
		OriginalURL: TrimTrailingSlash(rawURL),
		VisitCount:  visitCount,
		LastVisit:   lastVisit,
	}
	it.derive()
	return it
}

// NewSearchEngineEntry synthesises a web-search fallback for a term.
func NewSearchEngineEntry(e SearchEngine, term string) SearchItem {
	target := ExpandSearchURL(e.URLTemplate, term)
	it := SearchItem{
		Kind:        KindSearchEngine,
		ID:          "search-engine:" + strings.ToLower(e.Name),
		Title:       e.Name + ": " + term,
		URL:         CleanURL(target),
		OriginalURL: TrimTrailingSlash(target),
	}
	it.derive()
	return it
}

// NewCustomEngineEntry synthesises an entry for a custom search shortcut
// with the query already stripped of its alias.
func NewCustomEngineEntry(e CustomSearchEngine, query string) SearchItem {
	target := ExpandSearchURL(e.URLTemplate, query)
	it := SearchItem{
		Kind:        KindCustomEngine,
		ID:          "custom-engine:" + strings.ToLower(e.Alias),
		Title:       e.Name + ": " + query,
		URL:         CleanURL(target),
		OriginalURL: TrimTrailingSlash(target),
	}
	it.derive()
	return it
}

// NewDirectURLEntry synthesises a navigate-to-address entry for a term
// that reads as a URL. Terms without a scheme assume https.
func NewDirectURLEntry(term string) SearchItem {
	target := EnsureScheme(term)
	it := SearchItem{
		Kind:        KindDirectURL,
		ID:          "direct-url:" + CleanURL(target),
		Title:       strings.TrimSpace(term),
		URL:         CleanURL(target),
		OriginalURL: TrimTrailingSlash(target),
	}
	it.derive()
	return it
}

// derive fills the precomputed matching fields from the raw ones.
// Untitled entries fall back to their URL so every item stays findable.
func (it *SearchItem) derive() {
	if it.Title == "" {
		it.Title = it.URL
	}
	it.TitleLower = strings.ToLower(it.Title)

	tagMarks := make([]string, 0, len(it.Tags))
	for _, t := range it.Tags {
		tagMarks = append(tagMarks, TagMarker+t)
	}
	it.TagMarks = strings.Join(tagMarks, " ")
	it.TagMarksLower = strings.ToLower(it.TagMarks)

	folderMarks := make([]string, 0, len(it.FolderPath))
	for _, f := range it.FolderPath {
		folderMarks = append(folderMarks, FolderMarker+f)
	}
	it.FolderMarks = strings.Join(folderMarks, " ")
	it.FolderMarksLower = strings.ToLower(it.FolderMarks)

	it.SearchString = it.Title + searchSep + it.URL + searchSep + it.TagMarks + searchSep + it.FolderMarks
	it.SearchStringLower = strings.ToLower(it.SearchString)
}

// FieldAt maps a byte offset of SearchString to the logical field it
// falls in and the offset within that field. Offsets pointing at a
// separator byte or out of range report ok=false.
func (it *SearchItem) FieldAt(pos int) (field ItemField, fieldPos int, ok bool) {
	segments := []struct {
		field ItemField
		text  string
	}{
		{FieldTitle, it.Title},
		{FieldURL, it.URL},
		{FieldTags, it.TagMarks},
		{FieldFolder, it.FolderMarks},
	}
	start := 0
	for _, seg := range segments {
		end := start + len(seg.text)
		if pos >= start && pos < end {
			return seg.field, pos - start, true
		}
		start = end + len(searchSep)
	}
	return "", 0, false
}

// HasTag reports whether the item carries the tag, ignoring case.
func (it *SearchItem) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimPrefix(tag, TagMarker))
	for _, t := range it.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// HasFolder reports whether the folder breadcrumb contains the given
// folder name, ignoring case.
func (it *SearchItem) HasFolder(folder string) bool {
	folder = strings.ToLower(strings.TrimPrefix(folder, FolderMarker))
	for _, f := range it.FolderPath {
		if strings.ToLower(f) == folder {
			return true
		}
	}
	return false
}

// ParseTitle splits a raw bookmark title into the display title, tag
// annotations and a custom score bonus.
//
// Tokens of the form "#tag" become tags and "+N" becomes the bonus;
// everything else stays in the title. "Vue Docs +20 #frontend #vue"
// gives ("Vue Docs", ["frontend", "vue"], 20).
func ParseTitle(raw string) (title string, tags []string, bonus int) {
	fields := strings.Fields(raw)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		switch {
		case len(f) > 1 && strings.HasPrefix(f, TagMarker):
			tags = append(tags, strings.TrimPrefix(f, TagMarker))
		case len(f) > 1 && f[0] == '+':
			n, err := strconv.Atoi(f[1:])
			if err != nil {
				words = append(words, f)
				continue
			}
			bonus = n
		default:
			words = append(words, f)
		}
	}
	return strings.Join(words, " "), tags, bonus
}
