package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/pkg/library"
)

var (
	searchTags     []string
	searchRig      string
	searchCategory string
	searchFolder   string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search entries by text and filters",
	Long: `Search matches a case-insensitive substring against entry names,
descriptions, and tags, then applies any tag, rig-type, category, or
folder filters.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}

		filter := library.Filter{
			Tags:     searchTags,
			RigType:  searchRig,
			Category: searchCategory,
			Folder:   searchFolder,
		}
		if len(args) == 1 {
			filter.Query = args[0]
		}

		matched, err := c.Search(filter)
		if err != nil {
			return err
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(cmd.OutOrStdout(), entriesTable(matched))
	},
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchTags, "tag", "t", nil, "require a tag (repeatable)")
	searchCmd.Flags().StringVar(&searchRig, "rig", "", "filter by rig type")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by category")
	searchCmd.Flags().StringVar(&searchFolder, "folder", "", "filter by exact folder")
	rootCmd.AddCommand(searchCmd)
}
