package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the library directory layout",
	Long: `Init creates the library root with its records, actions, and previews
directories and an empty index. If a legacy monolithic metadata file is
found it is migrated to per-record files first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized library at %s (%d entries)\n", c.Root(), c.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
