package format

import (
	"fmt"
	"strings"

	"github.com/cuptool/cuptool/internal/clickup"
)

// CompactTask renders a task as a single line:
//
//	abc123  [in progress] p2 Fix login flow  @alice,bob  #bug,auth  due 2026-09-01
//
// Empty fields are omitted entirely rather than padded.
func CompactTask(t *clickup.Task) string {
	var sb strings.Builder

	sb.WriteString(t.ID)
	sb.WriteString("  [")
	sb.WriteString(t.Status.Status)
	sb.WriteString("]")

	if level := t.Priority.Level(); level > 0 {
		fmt.Fprintf(&sb, " p%d", level)
	}

	sb.WriteString(" ")
	sb.WriteString(t.Name)

	if len(t.Assignees) > 0 {
		names := make([]string, len(t.Assignees))
		for i, a := range t.Assignees {
			names[i] = a.Username
		}
		sb.WriteString("  @")
		sb.WriteString(strings.Join(names, ","))
	}

	if len(t.Tags) > 0 {
		names := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			names[i] = tag.Name
		}
		sb.WriteString("  #")
		sb.WriteString(strings.Join(names, ","))
	}

	if t.DueDate != nil {
		sb.WriteString("  due ")
		sb.WriteString(t.DueDate.Time().Format("2006-01-02"))
	}

	return sb.String()
}

// TaskList renders tasks one per line with a trailing count.
func TaskList(tasks []clickup.Task) string {
	if len(tasks) == 0 {
		return "no tasks"
	}

	var sb strings.Builder
	for i := range tasks {
		sb.WriteString(CompactTask(&tasks[i]))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "%d task(s)", len(tasks))
	return sb.String()
}

// TaskDetail renders the full view of a single task.
func TaskDetail(t *clickup.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s\n", t.ID, t.Name)
	fmt.Fprintf(&sb, "status:   %s\n", t.Status.Status)

	if level := t.Priority.Level(); level > 0 {
		fmt.Fprintf(&sb, "priority: p%d (%s)\n", level, t.Priority.Priority)
	}
	if len(t.Assignees) > 0 {
		names := make([]string, len(t.Assignees))
		for i, a := range t.Assignees {
			names[i] = a.Username
		}
		fmt.Fprintf(&sb, "assigned: %s\n", strings.Join(names, ", "))
	}
	if len(t.Tags) > 0 {
		names := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			names[i] = tag.Name
		}
		fmt.Fprintf(&sb, "tags:     %s\n", strings.Join(names, ", "))
	}
	if t.DueDate != nil {
		fmt.Fprintf(&sb, "due:      %s\n", t.DueDate.Time().Format("2006-01-02"))
	}
	if t.Parent != "" {
		fmt.Fprintf(&sb, "parent:   %s\n", t.Parent)
	}
	if t.List != nil {
		fmt.Fprintf(&sb, "list:     %s\n", t.List.Name)
	}
	if t.URL != "" {
		fmt.Fprintf(&sb, "url:      %s\n", t.URL)
	}

	desc := t.Description
	if desc == "" {
		desc = t.TextContent
	}
	if desc != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(desc, "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// CommentList renders task comments oldest first.
func CommentList(comments []clickup.Comment) string {
	if len(comments) == 0 {
		return "no comments"
	}

	var sb strings.Builder
	for _, c := range comments {
		when := ""
		if c.Date != nil {
			when = c.Date.Time().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(&sb, "%s  %s\n", c.User.Username, when)
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(strings.TrimRight(c.CommentText, "\n"), "\n", "\n  "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Workspaces renders workspaces one per line.
func Workspaces(workspaces []clickup.Workspace) string {
	if len(workspaces) == 0 {
		return "no workspaces"
	}
	var sb strings.Builder
	for _, ws := range workspaces {
		fmt.Fprintf(&sb, "%s  %s\n", ws.ID, ws.Name)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Lists renders lists one per line with their task counts.
func Lists(lists []clickup.List) string {
	if len(lists) == 0 {
		return "no lists"
	}
	var sb strings.Builder
	for _, l := range lists {
		fmt.Fprintf(&sb, "%s  %s (%d tasks)\n", l.ID, l.Name, l.TaskCount)
	}
	return strings.TrimRight(sb.String(), "\n")
}
