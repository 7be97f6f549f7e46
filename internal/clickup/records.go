package clickup

import (
	"time"

	"github.com/cuptool/cuptool/internal/tql"
)

// Record converts the task into a TQL record for client-side
// filtering. Field names are stable API for query authors:
//
//	id, name, description, status, status_type, priority (1=urgent ..
//	4=low), priority_name, assignees, tags, parent, due_date (RFC
//	3339 date), created (RFC 3339 date), overdue, archived, list,
//	folder, space, url
//
// Missing values (no priority, no due date, no parent) are absent or
// null so that `exists` and `is null` behave as documented.
func (t *Task) Record() tql.Record {
	rec := tql.Record{
		"id":          tql.String(t.ID),
		"name":        tql.String(t.Name),
		"status":      tql.String(t.Status.Status),
		"status_type": tql.String(t.Status.Type),
		"archived":    tql.Bool(t.Archived),
	}

	if t.Description != "" {
		rec["description"] = tql.String(t.Description)
	} else if t.TextContent != "" {
		rec["description"] = tql.String(t.TextContent)
	}

	if t.Priority != nil {
		if level := t.Priority.Level(); level > 0 {
			rec["priority"] = tql.Number(float64(level))
		}
		rec["priority_name"] = tql.String(t.Priority.Priority)
	}

	if len(t.Assignees) > 0 {
		names := make([]string, len(t.Assignees))
		for i, a := range t.Assignees {
			names[i] = a.Username
		}
		rec["assignees"] = tql.List(names...)
	}

	if len(t.Tags) > 0 {
		names := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			names[i] = tag.Name
		}
		rec["tags"] = tql.List(names...)
	}

	if t.Parent != "" {
		rec["parent"] = tql.String(t.Parent)
	} else {
		rec["parent"] = tql.Null()
	}

	if t.DueDate != nil {
		rec["due_date"] = tql.String(t.DueDate.Time().Format("2006-01-02"))
		rec["overdue"] = tql.Bool(t.DueDate.Time().Before(time.Now()))
	}

	if t.DateCreated != nil {
		rec["created"] = tql.String(t.DateCreated.Time().Format("2006-01-02"))
	}

	if t.List != nil {
		rec["list"] = tql.String(t.List.Name)
	}
	if t.Folder != nil {
		rec["folder"] = tql.String(t.Folder.Name)
	}
	if t.Space != nil && t.Space.Name != "" {
		rec["space"] = tql.String(t.Space.Name)
	}
	if t.URL != "" {
		rec["url"] = tql.String(t.URL)
	}

	return rec
}

// FilterTasks filters tasks with a TQL query, preserving input order.
// A malformed query fails before any task is inspected.
func FilterTasks(tasks []Task, query string) ([]Task, error) {
	expr, err := tql.Parse(query)
	if err != nil {
		return nil, err
	}

	eval := &tql.Evaluator{}
	matched := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if eval.Evaluate(expr, task.Record()) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}
