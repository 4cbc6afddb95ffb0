package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:     "move <id> <folder>",
	Aliases: []string{"mv"},
	Short:   "Move an entry to another folder",
	Long: `Move reassigns an entry to an existing folder. The record file, the
index, and the entry's asset files all follow.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		if err := c.Move(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
