package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/cmd/output"
	"github.com/clipvault/clipvault/pkg/animations"
)

var listRecursive bool

var listCmd = &cobra.Command{
	Use:   "list [folder]",
	Short: "List catalog entries",
	Long: `List prints the entries in the library, optionally limited to one
folder. Corrupt records are skipped and reported on stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}

		var entries []*animations.Animation
		var skipped []string
		if len(args) == 1 {
			entries, skipped, err = c.ListFolder(args[0], listRecursive)
		} else {
			entries, skipped, err = c.List()
		}
		if err != nil {
			return err
		}

		for _, id := range skipped {
			fmt.Fprintf(os.Stderr, "warning: skipping corrupt record %s\n", id)
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(cmd.OutOrStdout(), entriesTable(entries))
	},
}

// entriesTable shapes entries for tabular output.
func entriesTable(entries []*animations.Animation) output.Data {
	data := output.Data{
		Headers: []string{"ID", "NAME", "FOLDER", "RIG", "FRAMES", "BONES", "USED"},
	}
	for _, e := range entries {
		data.Rows = append(data.Rows, []string{
			e.ID,
			e.Name,
			e.FolderPath,
			e.RigType,
			fmt.Sprintf("%.0f-%.0f", e.FrameRange.Start, e.FrameRange.End),
			fmt.Sprintf("%d", e.TotalBonesAnimated),
			fmt.Sprintf("%d", e.UsageCount),
		})
	}
	return data
}

func init() {
	listCmd.Flags().BoolVarP(&listRecursive, "recursive", "r", false, "include entries in subfolders")
	rootCmd.AddCommand(listCmd)
}
