package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate <id> <rating>",
	Short: "Set an entry's quality rating (0-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid rating %q: %w", args[1], err)
		}

		c, err := openCatalog()
		if err != nil {
			return err
		}
		if err := c.Rate(args[0], rating); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rated %s at %.1f\n", args[0], rating)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
}
