package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cuptool/cuptool/internal/instrumentation"
	"github.com/cuptool/cuptool/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with tracing, metrics and
// audit logging. It records tool invocation metrics and logs the
// invocation for audit purposes.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return instrumented(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithResource is like InstrumentedToolHandler but
// also records the ClickUp resource kind and operation so metrics can be
// broken down per API surface.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithResource("my_tool", instrumentation.ResourceTasks, instrumentation.OperationList, sc, handler))
func InstrumentedToolHandlerWithResource(
	toolName string,
	resource string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return instrumented(toolName, resource, operation, sc, handler)
}

func instrumented(
	toolName string,
	resource string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Metrics and audit logger may be nil when not configured
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		if metrics == nil && auditLogger == nil {
			return handler(ctx, request)
		}

		args := request.GetArguments()
		workspace := GetWorkspaceFromArgs(args, sc.DefaultWorkspace())
		query := GetQueryFromArgs(args)

		attrs := instrumentation.NewSpanAttributeBuilder().
			WithTool(toolName).
			WithWorkspace(workspace)
		if resource != "" {
			attrs = attrs.WithResourceKind(resource).WithOperation(operation)
		}
		if query != "" {
			attrs = attrs.WithQuery(query)
		}

		ctx, span := instrumentation.StartToolSpan(ctx, toolName, attrs.Build()...)
		defer span.End()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)
		if workspace != "" {
			invocation.WithWorkspace(workspace)
		}
		if resource != "" {
			invocation.WithResource(resource, operation)
		}
		if query != "" {
			invocation.WithQuery(query)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				invocation.CompleteWithError(err)
				instrumentation.SetSpanError(span, err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			invocation.CompleteSuccess()
			instrumentation.SetSpanSuccess(span)
		}

		if metrics != nil {
			metrics.RecordToolInvocationWithWorkspace(ctx, toolName, status, workspace, duration)
			if resource != "" {
				metrics.RecordClickUpAPIOperation(ctx, resource, operation, status, duration)
			}
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}
