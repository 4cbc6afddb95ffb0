package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a legacy monolithic library",
	Long: `Migrate converts a library_metadata.json monolith into per-record
files. The migration also runs automatically the first time a legacy
library is opened; this command exists to run it deliberately and see
the outcome.

On success the legacy file is renamed with a .backup suffix. On failure
it is left untouched and the migration can be retried.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Library at %s holds %d entries\n", c.Root(), c.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
