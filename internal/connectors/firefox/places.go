package firefox

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/custodia-labs/omnibar/internal/connectors/profiledb"
	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// Bookmark entry types in moz_bookmarks.
const (
	typeBookmark = 1
	typeFolder   = 2
)

// rootGUIDs are the fixed containers at the top of the bookmark tree.
// They terminate the parent walk and never appear in breadcrumbs.
var rootGUIDs = map[string]struct{}{
	"root________": {},
	"menu________": {},
	"toolbar_____": {},
	"unfiled_____": {},
	"mobile______": {},
	"tags________": {},
}

// folder is one moz_bookmarks container row.
type folder struct {
	parent int64
	title  string
	root   bool
}

// Bookmarks reads all bookmarks with folder breadcrumbs built by
// walking each bookmark's parent chain up to a root container.
func (s *Source) Bookmarks(ctx context.Context) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}

	db, cleanup, err := profiledb.Open(s.placesPath())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	folders, err := loadFolders(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT b.id, COALESCE(b.title, ''), p.url, b.parent, b.dateAdded
		FROM moz_bookmarks b
		JOIN moz_places p ON p.id = b.fk
		WHERE b.type = ?
		ORDER BY b.id`,
		typeBookmark)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	var items []domain.SearchItem
	for rows.Next() {
		var (
			id, parent int64
			title, url string
			added      int64
		)
		if err := rows.Scan(&id, &title, &url, &parent, &added); err != nil {
			return nil, fmt.Errorf("scanning bookmark row: %w", err)
		}
		items = append(items, domain.NewBookmark(
			strconv.FormatInt(id, 10), title, url, breadcrumb(folders, parent), prTime(added)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading bookmark rows: %w", err)
	}
	return items, nil
}

// History reads visits from moz_places, newest first, within the
// query bounds. visit_count and last_visit_date are Firefox's own
// aggregates over moz_historyvisits.
func (s *Source) History(ctx context.Context, q driven.HistoryQuery) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}

	db, cleanup, err := profiledb.Open(s.placesPath())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no cap
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, url, COALESCE(title, ''), visit_count, last_visit_date
		FROM moz_places
		WHERE hidden = 0 AND last_visit_date IS NOT NULL AND last_visit_date >= ?
		ORDER BY last_visit_date DESC
		LIMIT ?`,
		toPRMicros(q.Since), limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var items []domain.SearchItem
	for rows.Next() {
		var (
			id         int64
			url, title string
			visits     int
			lastVisit  int64
		)
		if err := rows.Scan(&id, &url, &title, &visits, &lastVisit); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		items = append(items, domain.NewHistoryEntry(
			strconv.FormatInt(id, 10), title, url, visits, prTime(lastVisit)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return items, nil
}

// loadFolders reads every container row keyed by id.
func loadFolders(ctx context.Context, db *sql.DB) (map[int64]folder, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, parent, COALESCE(title, ''), guid
		FROM moz_bookmarks
		WHERE type = ?`,
		typeFolder)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	folders := make(map[int64]folder)
	for rows.Next() {
		var (
			id, parent int64
			title      string
			guid       string
		)
		if err := rows.Scan(&id, &parent, &title, &guid); err != nil {
			return nil, fmt.Errorf("scanning folder row: %w", err)
		}
		_, root := rootGUIDs[guid]
		folders[id] = folder{parent: parent, title: title, root: root}
	}
	return folders, rows.Err()
}

// breadcrumb walks the parent chain from a bookmark's folder up to a
// root container, returning titles root first.
func breadcrumb(folders map[int64]folder, parent int64) []string {
	var reversed []string
	for id := parent; ; {
		f, ok := folders[id]
		if !ok || f.root {
			break
		}
		reversed = append(reversed, f.title)
		id = f.parent
		if len(reversed) > 32 {
			break // cyclic tree in a corrupt profile
		}
	}

	path := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}
