package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuptool/cuptool/internal/auth"
	"github.com/cuptool/cuptool/internal/clickup"
)

// rootCmd represents the base command for the cuptool application
var rootCmd = &cobra.Command{
	Use:   "cuptool",
	Short: "ClickUp tasks from the command line",
	Long: `cuptool is a command-line client for ClickUp.

It browses workspaces, spaces, folders and lists, manages tasks, and
filters them with a small task query language, e.g.:

  cuptool tasks list --list 901203 --query "status == 'open' and priority <= 2"

It can also run as an MCP (Model Context Protocol) server exposing the
same operations as tools for AI assistants.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "cuptool version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newClickUpClient builds a ClickUp client from the stored credential.
func newClickUpClient() (*clickup.Client, error) {
	token, err := auth.LoadToken()
	if err != nil {
		return nil, err
	}
	return clickup.NewClient(token)
}

// defaultWorkspace resolves the workspace for commands that need one:
// the --workspace flag first, then the CLICKUP_WORKSPACE environment
// variable.
func defaultWorkspace(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if ws := os.Getenv(auth.EnvWorkspace); ws != "" {
		return ws, nil
	}
	return "", fmt.Errorf("no workspace given; use --workspace or set %s", auth.EnvWorkspace)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cuptool version %s\n", version)
		},
	}
}

func init() {
	rootCmd.AddCommand(newTasksCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newSpacesCmd())
	rootCmd.AddCommand(newWorkspacesCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
