package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

var tagsJSON bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List bookmark tags",
	Long: `Lists every tag found in bookmark titles with the number of bookmarks
carrying it. Tags are written as "#name" tokens in a bookmark's title.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if searchService == nil {
			return errNotConfigured
		}
		return outputTaxonomy(cmd, searchService.UniqueTags(), domain.TagMarker, tagsJSON)
	},
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "output names with bookmark ids as JSON")
	rootCmd.AddCommand(tagsCmd)
}

// outputTaxonomy renders a name → bookmark-ids map, most used first.
func outputTaxonomy(cmd *cobra.Command, values map[string][]string, marker string, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(values) == 0 {
		cmd.Println("Nothing found.")
		return nil
	}

	names := lo.Keys(values)
	sort.Slice(names, func(i, j int) bool {
		if len(values[names[i]]) != len(values[names[j]]) {
			return len(values[names[i]]) > len(values[names[j]])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		cmd.Printf("  %s%s (%d)\n", marker, name, len(values[name]))
	}
	return nil
}
