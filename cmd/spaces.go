package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuptool/cuptool/internal/format"
)

func newSpacesCmd() *cobra.Command {
	var (
		workspaceID     string
		includeArchived bool
	)

	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "List the spaces of a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, err := defaultWorkspace(workspaceID)
			if err != nil {
				return err
			}

			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			spaces, err := client.Spaces(cmd.Context(), workspace, includeArchived)
			if err != nil {
				return err
			}

			for _, sp := range spaces {
				marker := ""
				if sp.Private {
					marker = " (private)"
				}
				if sp.Archived {
					marker += " (archived)"
				}
				fmt.Printf("%s  %s%s\n", sp.ID, sp.Name, marker)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "Workspace ID (falls back to CLICKUP_WORKSPACE)")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived spaces")

	cmd.AddCommand(newSpacesTreeCmd())

	return cmd
}

func newSpacesTreeCmd() *cobra.Command {
	var workspaceID string

	cmd := &cobra.Command{
		Use:   "tree <spaceID>",
		Short: "Render a space as a tree of folders and lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID := args[0]

			workspace, err := defaultWorkspace(workspaceID)
			if err != nil {
				return err
			}

			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			spaces, err := client.Spaces(cmd.Context(), workspace, true)
			if err != nil {
				return err
			}

			for i := range spaces {
				if spaces[i].ID != spaceID {
					continue
				}

				folders, err := client.Folders(cmd.Context(), spaceID)
				if err != nil {
					return err
				}
				folderless, err := client.FolderlessLists(cmd.Context(), spaceID)
				if err != nil {
					return err
				}

				fmt.Print(format.RenderTree(format.SpaceTree(&spaces[i], folders, folderless)))
				return nil
			}

			return fmt.Errorf("space %s not found in workspace %s", spaceID, workspace)
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "Workspace ID (falls back to CLICKUP_WORKSPACE)")

	return cmd
}

func newWorkspacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workspaces",
		Short: "List the workspaces the configured token can access",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			workspaces, err := client.Workspaces(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Print(format.Workspaces(workspaces))
			return nil
		},
	}
}
