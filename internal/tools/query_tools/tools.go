package query_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cuptool/cuptool/internal/instrumentation"
	"github.com/cuptool/cuptool/internal/server"
	"github.com/cuptool/cuptool/internal/tools/common"
	"github.com/cuptool/cuptool/internal/tql"
)

// RegisterQueryTools registers the task query language tools with the
// MCP server. These tools never touch the ClickUp API; they parse and
// explain query expressions locally.
func RegisterQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Validate a query expression
	validateTool := mcp.NewTool("clickup_query_validate",
		mcp.WithDescription("Validate a task query expression. Returns ok, or the syntax error with its position."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The task query expression to validate, e.g. \"status == 'open' and priority <= 2\""),
		),
	)

	s.AddTool(validateTool, common.InstrumentedToolHandlerWithResource("clickup_query_validate",
		instrumentation.ResourceQuery, instrumentation.OperationFilter, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query, ok := request.GetArguments()["query"].(string)
			if !ok || query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			start := time.Now()
			_, err := tql.Parse(query)
			recordEvaluation(ctx, sc, query, err, time.Since(start))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid query: %v", err)), nil
			}

			return mcp.NewToolResultText("ok"), nil
		}))

	// Explain a query expression as a parse tree
	explainTool := mcp.NewTool("clickup_query_explain",
		mcp.WithDescription("Explain how a task query expression parses, as a readable description of its operators and comparisons"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The task query expression to explain"),
		),
	)

	s.AddTool(explainTool, common.InstrumentedToolHandlerWithResource("clickup_query_explain",
		instrumentation.ResourceQuery, instrumentation.OperationFilter, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query, ok := request.GetArguments()["query"].(string)
			if !ok || query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			start := time.Now()
			explanation, err := tql.Explain(query)
			recordEvaluation(ctx, sc, query, err, time.Since(start))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid query: %v", err)), nil
			}

			return mcp.NewToolResultText(explanation), nil
		}))

	return nil
}

func recordEvaluation(ctx context.Context, sc *server.ServerContext, query string, err error, duration time.Duration) {
	metrics := sc.Metrics()
	if metrics == nil {
		return
	}
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	metrics.RecordQueryEvaluation(ctx, query, status, duration)
}
