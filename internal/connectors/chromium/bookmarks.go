package chromium

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

// bookmarkFile is the shape of the profile's Bookmarks JSON file.
type bookmarkFile struct {
	Roots map[string]bookmarkNode `json:"roots"`
}

// bookmarkNode is one entry in the bookmark tree. Type is "url" for a
// bookmark and "folder" for a container. DateAdded is a Chromium
// timestamp serialised as a decimal string.
type bookmarkNode struct {
	Type      string         `json:"type"`
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	DateAdded string         `json:"date_added"`
	Children  []bookmarkNode `json:"children"`
}

// rootOrder fixes the traversal order of Chromium's top-level
// containers so ingested IDs stay stable across runs.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

// Bookmarks reads all bookmarks from the profile's Bookmarks file.
// The fixed top-level containers (bookmark bar, other, synced) are
// excluded from folder breadcrumbs.
func (s *Source) Bookmarks(ctx context.Context) ([]domain.SearchItem, error) {
	if err := s.checkOpen(ctx); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.bookmarksPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.bookmarksPath(), domain.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("reading bookmarks: %w", err)
	}

	var file bookmarkFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing bookmarks: %w", err)
	}

	var items []domain.SearchItem
	for _, root := range rootOrder {
		node, ok := file.Roots[root]
		if !ok {
			continue
		}
		items = collectBookmarks(node, nil, items)
	}
	return items, nil
}

// collectBookmarks walks a bookmark subtree depth first. The path
// holds the folder breadcrumb of the current node's parent.
func collectBookmarks(node bookmarkNode, path []string, items []domain.SearchItem) []domain.SearchItem {
	switch node.Type {
	case "url":
		items = append(items, domain.NewBookmark(node.ID, node.Name, node.URL, path, parseDateAdded(node.DateAdded)))
	case "folder":
		childPath := path
		if len(path) > 0 || !isRootContainer(node.Name) {
			childPath = append(append([]string(nil), path...), node.Name)
		}
		for _, child := range node.Children {
			items = collectBookmarks(child, childPath, items)
		}
	}
	return items
}

// isRootContainer reports whether a folder name is one of Chromium's
// fixed top-level containers, which never count as user folders.
func isRootContainer(name string) bool {
	switch name {
	case "Bookmarks bar", "Bookmarks Bar", "Other bookmarks", "Other Bookmarks", "Mobile bookmarks", "Mobile Bookmarks":
		return true
	default:
		return false
	}
}

func parseDateAdded(raw string) time.Time {
	micros, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return webkitTime(micros)
}
