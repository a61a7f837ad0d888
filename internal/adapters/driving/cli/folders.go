package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

var foldersJSON bool

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List bookmark folders",
	Long: `Lists every bookmark folder with the number of bookmarks in it,
including bookmarks of nested folders.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if searchService == nil {
			return errNotConfigured
		}
		return outputTaxonomy(cmd, searchService.UniqueFolders(), domain.FolderMarker, foldersJSON)
	},
}

func init() {
	foldersCmd.Flags().BoolVar(&foldersJSON, "json", false, "output names with bookmark ids as JSON")
	rootCmd.AddCommand(foldersCmd)
}
