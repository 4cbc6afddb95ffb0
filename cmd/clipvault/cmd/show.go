package cmd

import (
	"github.com/spf13/cobra"
)

var showTouch bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full record of one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}

		anim, err := c.Get(args[0])
		if err != nil {
			return err
		}
		if showTouch {
			if err := c.Touch(args[0]); err != nil {
				return err
			}
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(cmd.OutOrStdout(), anim)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showTouch, "touch", false, "count this lookup as a use of the clip")
	rootCmd.AddCommand(showCmd)
}
