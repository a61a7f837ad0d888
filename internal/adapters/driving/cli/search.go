package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

var (
	searchMode     string
	searchStrategy string
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search bookmarks, tabs and history",
	Long: `Searches the ingested browser data for a term.

Terms are matched word by word against title, URL, tags and folders.
A term starting with "#" filters by tag, "~" by folder. When nothing
local matches, web-search fallback entries are offered instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "all", "datasets to search (bookmarks, tabs, history, all)")
	searchCmd.Flags().StringVar(&searchStrategy, "strategy", "", "text matching strategy (precise, fuzzy; default: configured)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default: configured)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured
	}

	opts := domain.SearchOptions{
		Mode:       domain.SearchMode(searchMode),
		Strategy:   domain.SearchStrategy(searchStrategy),
		MaxResults: searchLimit,
	}

	results, err := searchService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

// jsonResult is the machine-readable shape of one hit.
type jsonResult struct {
	Kind        string   `json:"kind"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`
	Folders     []string `json:"folders,omitempty"`
	Score       float64  `json:"score"`
	SearchScore float64  `json:"searchScore"`
	Approach    string   `json:"approach"`
	LastVisit   string   `json:"lastVisit,omitempty"`
	OpenTab     bool     `json:"openTab,omitempty"`
	Dupe        bool     `json:"dupe,omitempty"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.Result) error {
	out := make([]jsonResult, 0, len(results))
	for i := range results {
		r := &results[i]
		jr := jsonResult{
			Kind:        r.Item.Kind.String(),
			ID:          r.Item.ID,
			Title:       r.Item.Title,
			URL:         r.Item.OriginalURL,
			Tags:        r.Item.Tags,
			Folders:     r.Item.FolderPath,
			Score:       r.Score,
			SearchScore: r.SearchScore,
			Approach:    r.Approach.String(),
			OpenTab:     r.Item.OpenTab,
			Dupe:        r.Item.Dupe,
		}
		if !r.Item.LastVisit.IsZero() {
			jr.LastVisit = r.Item.LastVisit.UTC().Format("2006-01-02T15:04:05Z")
		}
		out = append(out, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.Result) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	width := outputWidth()

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s %s (%.0f)\n", i+1, r.Item.Kind.Badge(), truncate(r.Item.Title, width-16), r.Score)
		cmd.Printf("      %s\n", truncate(r.Item.URL, width-6))

		meta := metaLine(&r.Item)
		if meta != "" {
			cmd.Printf("      %s\n", meta)
		}
		cmd.Println()
	}
	return nil
}

// metaLine builds the tags/folders/visit summary under a result.
func metaLine(it *domain.SearchItem) string {
	var parts []string
	if it.TagMarks != "" {
		parts = append(parts, it.TagMarks)
	}
	if it.FolderMarks != "" {
		parts = append(parts, it.FolderMarks)
	}
	if !it.LastVisit.IsZero() {
		parts = append(parts, "visited "+humanize.Time(it.LastVisit))
	}
	if it.OpenTab {
		parts = append(parts, "open")
	}
	if it.Dupe {
		parts = append(parts, "dupe")
	}
	return strings.Join(parts, "  ")
}

// outputWidth returns the terminal width, or a fixed width when
// stdout is not a terminal.
func outputWidth() int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
			return w
		}
	}
	return 100
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
