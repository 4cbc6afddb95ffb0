package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipvault/clipvault/internal/cmd/output"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage library folders",
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders and their entry counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}

		data := output.Data{Headers: []string{"FOLDER", "ENTRIES"}}
		for _, folder := range c.Folders() {
			data.Rows = append(data.Rows, []string{folder, fmt.Sprintf("%d", c.EntryCount(folder))})
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(cmd.OutOrStdout(), data)
	},
}

var folderCreateCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		if err := c.CreateFolder(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created folder %s\n", args[0])
		return nil
	},
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a folder",
	Long: `Delete removes a folder and its subfolders. By default contained
entries are moved to the root folder; with the reject policy configured,
deleting a non-empty folder fails instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		if err := c.DeleteFolder(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder %s\n", args[0])
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		if err := c.RenameFolder(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed folder %s to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderCreateCmd)
	folderCmd.AddCommand(folderDeleteCmd)
	folderCmd.AddCommand(folderRenameCmd)
	rootCmd.AddCommand(folderCmd)
}
