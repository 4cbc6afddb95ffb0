package cmd

import (
	"github.com/spf13/cobra"
)

var statsDisk bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	Long: `Stats summarizes the library: entry and folder counts, keyframe
totals, average clip duration, and the tag and rig-type vocabulary.
With --disk the asset trees are walked to total binary file sizes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}

		stats, err := c.Stats(statsDisk)
		if err != nil {
			return err
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(cmd.OutOrStdout(), stats)
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsDisk, "disk", false, "include asset disk usage (walks every file)")
	rootCmd.AddCommand(statsCmd)
}
