package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuptool/cuptool/internal/clickup"
	"github.com/cuptool/cuptool/internal/format"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Work with ClickUp tasks",
	}

	cmd.AddCommand(newTasksListCmd())
	cmd.AddCommand(newTasksGetCmd())
	cmd.AddCommand(newTasksCreateCmd())
	cmd.AddCommand(newTasksUpdateCmd())
	cmd.AddCommand(newTasksCloseCmd())
	cmd.AddCommand(newTasksDeleteCmd())
	cmd.AddCommand(newTasksCommentCmd())
	cmd.AddCommand(newTasksCommentsCmd())

	return cmd
}

func newTasksListCmd() *cobra.Command {
	var (
		listID        string
		query         string
		includeClosed bool
		subtasks      bool
		asTree        bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a list",
		Long: `List the tasks of a ClickUp list, optionally filtered by a task query
expression:

  cuptool tasks list --list 901203 --query "status == 'open' and priority <= 2"

Query fields: id, name, status, priority, assignees, tags, due_date,
created, archived, parent, list, space.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			tasks, err := client.Tasks(cmd.Context(), listID, clickup.TaskListOptions{
				IncludeClosed: includeClosed,
				Subtasks:      subtasks,
			})
			if err != nil {
				return err
			}

			if query != "" {
				tasks, err = clickup.FilterTasks(tasks, query)
				if err != nil {
					return err
				}
			}

			switch {
			case asJSON:
				out, err := json.MarshalIndent(tasks, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			case asTree:
				fmt.Print(format.RenderTree(format.TaskTree(listID, tasks)))
			default:
				fmt.Print(format.TaskList(tasks))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "List ID whose tasks to show (required)")
	cmd.Flags().StringVar(&query, "query", "", "Task query expression to filter tasks")
	cmd.Flags().BoolVar(&includeClosed, "include-closed", false, "Include tasks in a closed status")
	cmd.Flags().BoolVar(&subtasks, "subtasks", false, "Include subtasks, not only top-level tasks")
	cmd.Flags().BoolVar(&asTree, "tree", false, "Render tasks as a parent/subtask tree")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of the compact format")
	_ = cmd.MarkFlagRequired("list")

	return cmd
}

func newTasksGetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <taskID>",
		Short: "Show a task in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			task, err := client.Task(cmd.Context(), args[0])
			if clickup.IsNotFound(err) {
				return fmt.Errorf("task %s not found", args[0])
			}
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(task, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			fmt.Print(format.TaskDetail(task))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of the detail format")
	return cmd
}

// taskInputFlags binds the shared create/update task fields.
type taskInputFlags struct {
	name        string
	description string
	status      string
	priority    int
	due         string
	parent      string
}

func (f *taskInputFlags) register(cmd *cobra.Command, withParent bool) {
	cmd.Flags().StringVar(&f.name, "name", "", "Task name")
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
	cmd.Flags().StringVar(&f.status, "status", "", "Task status")
	cmd.Flags().IntVar(&f.priority, "priority", 0, "Priority level: 1 (urgent) to 4 (low)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date in RFC3339 format (e.g. 2026-09-01T00:00:00Z)")
	if withParent {
		cmd.Flags().StringVar(&f.parent, "parent", "", "Parent task ID to create a subtask")
	}
}

func (f *taskInputFlags) input() (clickup.TaskInput, error) {
	input := clickup.TaskInput{
		Name:        f.name,
		Description: f.description,
		Status:      f.status,
		Priority:    f.priority,
		Parent:      f.parent,
	}
	if f.due != "" {
		t, err := time.Parse(time.RFC3339, f.due)
		if err != nil {
			return input, fmt.Errorf("invalid --due (want RFC3339): %w", err)
		}
		m := clickup.NewMillis(t)
		input.DueDate = &m
	}
	return input, nil
}

func newTasksCreateCmd() *cobra.Command {
	var listID string
	var flags taskInputFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in a list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.name == "" {
				return fmt.Errorf("--name is required")
			}
			input, err := flags.input()
			if err != nil {
				return err
			}

			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			task, err := client.CreateTask(cmd.Context(), listID, input)
			if err != nil {
				return err
			}

			fmt.Print(format.TaskDetail(task))
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list", "", "List ID to create the task in (required)")
	flags.register(cmd, true)
	_ = cmd.MarkFlagRequired("list")

	return cmd
}

func newTasksUpdateCmd() *cobra.Command {
	var flags taskInputFlags

	cmd := &cobra.Command{
		Use:   "update <taskID>",
		Short: "Update a task",
		Long:  `Update a task. Only the provided flags are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}

			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			task, err := client.UpdateTask(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}

			fmt.Print(format.TaskDetail(task))
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}

func newTasksCloseCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "close <taskID>...",
		Short: "Move one or more tasks into a closing status",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			for _, taskID := range args {
				task, err := client.CloseTask(cmd.Context(), taskID, status)
				if err != nil {
					return err
				}
				fmt.Printf("%s  [%s] %s\n", task.ID, task.Status.Status, task.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "complete", "Closing status to move the tasks into")
	return cmd
}

func newTasksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <taskID>...",
		Short: "Delete one or more tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			for _, taskID := range args {
				if err := client.DeleteTask(cmd.Context(), taskID); err != nil {
					return err
				}
				fmt.Printf("Deleted task %s\n", taskID)
			}
			return nil
		},
	}
}

func newTasksCommentCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "comment <taskID>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return fmt.Errorf("--text is required")
			}

			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			comment, err := client.AddComment(cmd.Context(), args[0], text)
			if err != nil {
				return err
			}

			fmt.Printf("Comment %s added to task %s\n", comment.ID, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "The comment text (required)")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newTasksCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <taskID>",
		Short: "List the comments of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClickUpClient()
			if err != nil {
				return err
			}

			comments, err := client.Comments(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Print(format.CommentList(comments))
			return nil
		},
	}
}
