package list_tools

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

// RegisterListTools registers list and folder tools with the MCP server.
// All of them are read-only.
func RegisterListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Lists of a folder or of a space (folderless)
	listListsTool := mcp.NewTool("clickup_list_lists",
		mcp.WithDescription("List the lists in a folder, or the folderless lists of a space. Exactly one of folder_id or space_id must be given."),
		mcp.WithString("folder_id",
			mcp.Description("The ID of the folder whose lists to return"),
		),
		mcp.WithString("space_id",
			mcp.Description("The ID of the space whose folderless lists to return"),
		),
	)

	s.AddTool(listListsTool, common.InstrumentedToolHandlerWithResource("clickup_list_lists",
		instrumentation.ResourceLists, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			folderID, _ := args["folder_id"].(string)
			spaceID, _ := args["space_id"].(string)
			if (folderID == "") == (spaceID == "") {
				return mcp.NewToolResultError("exactly one of folder_id or space_id is required"), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var lists []clickup.List
			if folderID != "" {
				lists, err = client.Lists(ctx, folderID)
			} else {
				lists, err = client.FolderlessLists(ctx, spaceID)
			}
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list lists: %v", err)), nil
			}

			return mcp.NewToolResultText(format.Lists(lists)), nil
		}))

	// Folders of a space
	listFoldersTool := mcp.NewTool("clickup_list_folders",
		mcp.WithDescription("List the folders of a space"),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("The ID of the space whose folders to return"),
		),
	)

	s.AddTool(listFoldersTool, common.InstrumentedToolHandlerWithResource("clickup_list_folders",
		instrumentation.ResourceFolders, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			spaceID, ok := args["space_id"].(string)
			if !ok || spaceID == "" {
				return mcp.NewToolResultError("space_id is required"), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			folders, err := client.Folders(ctx, spaceID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list folders: %v", err)), nil
			}

			var out string
			for _, f := range folders {
				out += fmt.Sprintf("%s  %s (%d lists)\n", f.ID, f.Name, len(f.Lists))
			}
			if out == "" {
				out = "No folders found.\n"
			}
			return mcp.NewToolResultText(out), nil
		}))

	return nil
}
