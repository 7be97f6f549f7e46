package task_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cuptool/cuptool/internal/clickup"
	"github.com/cuptool/cuptool/internal/format"
	"github.com/cuptool/cuptool/internal/instrumentation"
	"github.com/cuptool/cuptool/internal/server"
	"github.com/cuptool/cuptool/internal/tools/batch"
	"github.com/cuptool/cuptool/internal/tools/common"
)

// getClient retrieves the ClickUp client from the server context.
func getClient(sc *server.ServerContext) (*clickup.Client, error) {
	client, err := sc.Client()
	if err != nil {
		return nil, fmt.Errorf(`ClickUp token not found. Set the CLICKUP_TOKEN environment variable or run "cuptool auth login" on the host, then restart the server.`)
	}
	return client, nil
}

// parseDueDate parses an RFC3339 due date argument into the millisecond
// timestamp ClickUp expects.
func parseDueDate(args map[string]interface{}) (*clickup.Millis, error) {
	dueStr, ok := args["due_date"].(string)
	if !ok || dueStr == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, dueStr)
	if err != nil {
		return nil, fmt.Errorf("due_date must be RFC3339 (e.g. 2026-09-01T00:00:00Z): %w", err)
	}
	m := clickup.NewMillis(t)
	return &m, nil
}

// RegisterTaskTools registers all task-related tools with the MCP server.
// Write tools are skipped in read-only mode.
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)
	if !readOnly {
		registerWriteTools(s, sc)
	}
	return nil
}

func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// List tasks tool, optionally narrowed by a task query expression
	listTasksTool := mcp.NewTool("clickup_list_tasks",
		mcp.WithDescription("List tasks in a ClickUp list, optionally filtered by a task query expression (e.g. \"status == 'open' and priority <= 2\")"),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("The ID of the list whose tasks to return"),
		),
		mcp.WithString("query",
			mcp.Description("Task query expression to filter tasks. Fields: id, name, status, priority, assignees, tags, due_date, created, archived, parent, list, space"),
		),
		mcp.WithBoolean("include_closed",
			mcp.Description("Include tasks in a closed status (default: false)"),
		),
		mcp.WithBoolean("subtasks",
			mcp.Description("Include subtasks, not only top-level tasks (default: false)"),
		),
	)

	s.AddTool(listTasksTool, common.InstrumentedToolHandlerWithResource("clickup_list_tasks",
		instrumentation.ResourceTasks, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			listID, ok := args["list_id"].(string)
			if !ok || listID == "" {
				return mcp.NewToolResultError("list_id is required"), nil
			}

			opts := clickup.TaskListOptions{}
			if v, ok := args["include_closed"].(bool); ok {
				opts.IncludeClosed = v
			}
			if v, ok := args["subtasks"].(bool); ok {
				opts.Subtasks = v
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			tasks, err := client.Tasks(ctx, listID, opts)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
			}

			if query := common.GetQueryFromArgs(args); query != "" {
				start := time.Now()
				tasks, err = clickup.FilterTasks(tasks, query)
				if metrics := sc.Metrics(); metrics != nil {
					status := instrumentation.StatusSuccess
					if err != nil {
						status = instrumentation.StatusError
					}
					metrics.RecordQueryEvaluation(ctx, query, status, time.Since(start))
				}
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Invalid query: %v", err)), nil
				}
			}

			return mcp.NewToolResultText(format.TaskList(tasks)), nil
		}))

	// Get tasks tool, accepts one ID or a batch
	getTasksTool := mcp.NewTool("clickup_get_tasks",
		mcp.WithDescription("Get full details of one or more tasks as JSON"),
		mcp.WithString("task_ids",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to retrieve"),
		),
	)

	s.AddTool(getTasksTool, common.InstrumentedToolHandlerWithResource("clickup_get_tasks",
		instrumentation.ResourceTasks, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskIDs, err := batch.ParseStringOrArray(args["task_ids"], "task_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
				task, err := client.Task(ctx, taskID)
				if err != nil {
					return "", err
				}
				jsonBytes, _ := json.Marshal(task)
				return string(jsonBytes), nil
			})

			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		}))

	// List comments tool
	getCommentsTool := mcp.NewTool("clickup_get_comments",
		mcp.WithDescription("List the comments of a task"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task"),
		),
	)

	s.AddTool(getCommentsTool, common.InstrumentedToolHandlerWithResource("clickup_get_comments",
		instrumentation.ResourceComments, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskID, ok := args["task_id"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("task_id is required"), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			comments, err := client.Comments(ctx, taskID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list comments: %v", err)), nil
			}

			return mcp.NewToolResultText(format.CommentList(comments)), nil
		}))
}

func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	// Create task tool
	createTaskTool := mcp.NewTool("clickup_create_task",
		mcp.WithDescription("Create a new task in a list"),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("The ID of the list to create the task in"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The task name"),
		),
		mcp.WithString("description",
			mcp.Description("Task description"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status (defaults to the list's first status)"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority level: 1 (urgent) to 4 (low)"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in RFC3339 format (e.g. 2026-09-01T00:00:00Z)"),
		),
		mcp.WithString("parent",
			mcp.Description("Parent task ID to create a subtask"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithResource("clickup_create_task",
		instrumentation.ResourceTasks, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			listID, ok := args["list_id"].(string)
			if !ok || listID == "" {
				return mcp.NewToolResultError("list_id is required"), nil
			}
			name, ok := args["name"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			input := clickup.TaskInput{Name: name}
			if description, ok := args["description"].(string); ok {
				input.Description = description
			}
			if status, ok := args["status"].(string); ok {
				input.Status = status
			}
			if priority, ok := args["priority"].(float64); ok {
				input.Priority = int(priority)
			}
			if parent, ok := args["parent"].(string); ok {
				input.Parent = parent
			}
			due, err := parseDueDate(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			input.DueDate = due

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.CreateTask(ctx, listID, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task created successfully:\n%s", format.TaskDetail(task))), nil
		}))

	// Update task tool
	updateTaskTool := mcp.NewTool("clickup_update_task",
		mcp.WithDescription("Update an existing task. Only the provided fields are changed."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to update"),
		),
		mcp.WithString("name",
			mcp.Description("New task name"),
		),
		mcp.WithString("description",
			mcp.Description("New task description"),
		),
		mcp.WithString("status",
			mcp.Description("New status"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority level: 1 (urgent) to 4 (low)"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date in RFC3339 format"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithResource("clickup_update_task",
		instrumentation.ResourceTasks, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskID, ok := args["task_id"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("task_id is required"), nil
			}

			input := clickup.TaskInput{}
			if name, ok := args["name"].(string); ok {
				input.Name = name
			}
			if description, ok := args["description"].(string); ok {
				input.Description = description
			}
			if status, ok := args["status"].(string); ok {
				input.Status = status
			}
			if priority, ok := args["priority"].(float64); ok {
				input.Priority = int(priority)
			}
			due, err := parseDueDate(args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			input.DueDate = due

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.UpdateTask(ctx, taskID, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Task updated successfully:\n%s", format.TaskDetail(task))), nil
		}))

	// Close tasks tool, accepts one ID or a batch
	closeTasksTool := mcp.NewTool("clickup_close_tasks",
		mcp.WithDescription("Move one or more tasks into a closing status"),
		mcp.WithString("task_ids",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to close"),
		),
		mcp.WithString("status",
			mcp.Description("Closing status (default: 'complete')"),
		),
	)

	s.AddTool(closeTasksTool, common.InstrumentedToolHandlerWithResource("clickup_close_tasks",
		instrumentation.ResourceTasks, instrumentation.OperationClose, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskIDs, err := batch.ParseStringOrArray(args["task_ids"], "task_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			status := "complete"
			if s, ok := args["status"].(string); ok && s != "" {
				status = s
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
				task, err := client.CloseTask(ctx, taskID, status)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Task %s (%s) closed", taskID, task.Name), nil
			})

			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		}))

	// Delete tasks tool, accepts one ID or a batch
	deleteTasksTool := mcp.NewTool("clickup_delete_tasks",
		mcp.WithDescription("Permanently delete one or more tasks"),
		mcp.WithString("task_ids",
			mcp.Required(),
			mcp.Description("Task ID (string) or array of task IDs to delete"),
		),
	)

	s.AddTool(deleteTasksTool, common.InstrumentedToolHandlerWithResource("clickup_delete_tasks",
		instrumentation.ResourceTasks, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskIDs, err := batch.ParseStringOrArray(args["task_ids"], "task_ids")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := batch.ProcessBatch(taskIDs, func(taskID string) (string, error) {
				if err := client.DeleteTask(ctx, taskID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Task %s deleted", taskID), nil
			})

			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		}))

	// Add comment tool
	commentTaskTool := mcp.NewTool("clickup_comment_task",
		mcp.WithDescription("Add a comment to a task"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The ID of the task to comment on"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The comment text"),
		),
	)

	s.AddTool(commentTaskTool, common.InstrumentedToolHandlerWithResource("clickup_comment_task",
		instrumentation.ResourceComments, instrumentation.OperationComment, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskID, ok := args["task_id"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("task_id is required"), nil
			}
			text, ok := args["text"].(string)
			if !ok || text == "" {
				return mcp.NewToolResultError("text is required"), nil
			}

			client, err := getClient(sc)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			comment, err := client.AddComment(ctx, taskID, text)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add comment: %v", err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Comment %s added to task %s", comment.ID, taskID)), nil
		}))
}
