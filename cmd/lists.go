package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuptool/cuptool/internal/clickup"
	"github.com/cuptool/cuptool/internal/format"
)

func newListsCmd() *cobra.Command {
	var (
		folderID string
		spaceID  string
	)

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List the lists of a folder or space",
		Long: `List the lists in a folder, or the folderless lists of a space.
Exactly one of --folder or --space must be given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (folderID == "") == (spaceID == "") {
				return fmt.Errorf("exactly one of --folder or --space is required")
			}

			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			var lists []clickup.List
			if folderID != "" {
				lists, err = client.Lists(cmd.Context(), folderID)
			} else {
				lists, err = client.FolderlessLists(cmd.Context(), spaceID)
			}
			if err != nil {
				return err
			}

			fmt.Print(format.Lists(lists))
			return nil
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Folder ID whose lists to show")
	cmd.Flags().StringVar(&spaceID, "space", "", "Space ID whose folderless lists to show")

	return cmd
}
