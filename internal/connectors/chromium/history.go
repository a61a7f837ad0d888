package chromium

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/omnibar/internal/connectors/profiledb"
	"github.com/custodia-labs/omnibar/internal/core/domain"
	"github.com/custodia-labs/omnibar/internal/core/ports/driven"
)

// History reads visits from the profile's History database, newest
// first, within the query bounds.
func (s *Source) History(ctx context.Context, q driven.HistoryQuery) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}

	db, cleanup, err := profiledb.Open(s.historyPath())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no cap
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, url, title, visit_count, last_visit_time
		FROM urls
		WHERE hidden = 0 AND last_visit_time >= ?
		ORDER BY last_visit_time DESC
		LIMIT ?`,
		toWebkitMicros(q.Since), limit)
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
			strconv.FormatInt(id, 10), title, url, visits, webkitTime(lastVisit)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return items, nil
}
