package space_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cuptool/cuptool/internal/clickup"
	"github.com/cuptool/cuptool/internal/format"
	"github.com/cuptool/cuptool/internal/instrumentation"
	"github.com/cuptool/cuptool/internal/server"
	"github.com/cuptool/cuptool/internal/tools/common"
)

func getClient(sc *server.ServerContext) (*clickup.Client, error) {
	client, err := sc.Client()
	if err != nil {
		return nil, fmt.Errorf(`ClickUp token not found. Set the CLICKUP_TOKEN environment variable or run "cuptool auth login" on the host, then restart the server.`)
	}
	return client, nil
}

// RegisterSpaceTools registers workspace and space tools with the MCP
// server. All of them are read-only.
func RegisterSpaceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Workspaces of the authenticated user
	listWorkspacesTool := mcp.NewTool("clickup_list_workspaces",
		mcp.WithDescription("List the ClickUp workspaces the configured token can access"),
	)

	s.AddTool(listWorkspacesTool, common.InstrumentedToolHandlerWithResource("clickup_list_workspaces",
		instrumentation.ResourceWorkspaces, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			workspaces, err := client.Workspaces(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list workspaces: %v", err)), nil
			}

			return mcp.NewToolResultText(format.Workspaces(workspaces)), nil
		}))

	// Spaces of a workspace
	listSpacesTool := mcp.NewTool("clickup_list_spaces",
		mcp.WithDescription("List the spaces of a workspace"),
		mcp.WithString("workspace_id",
			mcp.Description("The ID of the workspace (falls back to the server's default workspace)"),
		),
		mcp.WithBoolean("include_archived",
			mcp.Description("Include archived spaces (default: false)"),
		),
	)

	s.AddTool(listSpacesTool, common.InstrumentedToolHandlerWithResource("clickup_list_spaces",
		instrumentation.ResourceSpaces, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			workspaceID := common.GetWorkspaceFromArgs(args, sc.DefaultWorkspace())
			if workspaceID == "" {
				return mcp.NewToolResultError("workspace_id is required (no default workspace configured)"), nil
			}

			includeArchived := false
			if v, ok := args["include_archived"].(bool); ok {
				includeArchived = v
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			spaces, err := client.Spaces(ctx, workspaceID, includeArchived)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list spaces: %v", err)), nil
			}

			var out string
			for _, sp := range spaces {
				marker := ""
				if sp.Private {
					marker = " (private)"
				}
				out += fmt.Sprintf("%s  %s%s\n", sp.ID, sp.Name, marker)
			}
			if out == "" {
				out = "No spaces found.\n"
			}
			return mcp.NewToolResultText(out), nil
		}))

	// Tree view of a space: folders and lists
	spaceTreeTool := mcp.NewTool("clickup_space_tree",
		mcp.WithDescription("Render a space as a tree of folders and lists"),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("The ID of the space to render"),
		),
		mcp.WithString("workspace_id",
			mcp.Description("The ID of the workspace the space belongs to (falls back to the server's default workspace)"),
		),
	)

	s.AddTool(spaceTreeTool, common.InstrumentedToolHandlerWithResource("clickup_space_tree",
		instrumentation.ResourceSpaces, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spaceID, ok := args["space_id"].(string)
			if !ok || spaceID == "" {
				return mcp.NewToolResultError("space_id is required"), nil
			}

			workspaceID := common.GetWorkspaceFromArgs(args, sc.DefaultWorkspace())
			if workspaceID == "" {
				return mcp.NewToolResultError("workspace_id is required (no default workspace configured)"), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			space, err := findSpace(ctx, client, workspaceID, spaceID)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			folders, err := client.Folders(ctx, spaceID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list folders: %v", err)), nil
			}
			folderless, err := client.FolderlessLists(ctx, spaceID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list folderless lists: %v", err)), nil
			}

			return mcp.NewToolResultText(format.RenderTree(format.SpaceTree(space, folders, folderless))), nil
		}))

	return nil
}

// findSpace resolves a space by ID within a workspace, including
// archived spaces so the tree still renders for them.
func findSpace(ctx context.Context, client *clickup.Client, workspaceID, spaceID string) (*clickup.Space, error) {
	spaces, err := client.Spaces(ctx, workspaceID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	for i := range spaces {
		if spaces[i].ID == spaceID {
			return &spaces[i], nil
		}
	}
	return nil, fmt.Errorf("space %s not found in workspace %s", spaceID, workspaceID)
}
