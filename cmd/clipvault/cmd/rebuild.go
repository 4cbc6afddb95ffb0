package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild-index",
	Short: "Rebuild the index from record files",
	Long: `Rebuild-index re-derives the id-to-folder index by reading every
record file. Use it after editing or restoring records by hand. Corrupt
records are skipped and keep their files for manual repair.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		if err := c.RebuildIndex(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Index rebuilt: %d entries\n", c.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
