package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cuptool/cuptool/internal/clickup"
)

func testTask() clickup.Task {
	due := clickup.NewMillis(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	return clickup.Task{
		ID:        "abc123",
		Name:      "Fix login flow",
		Status:    clickup.Status{Status: "in progress"},
		Priority:  &clickup.Priority{ID: "2", Priority: "high"},
		Assignees: []clickup.User{{Username: "alice"}, {Username: "bob"}},
		Tags:      []clickup.Tag{{Name: "bug"}},
		DueDate:   &due,
	}
}

func TestCompactTask(t *testing.T) {
	task := testTask()
	line := CompactTask(&task)
	assert.Equal(t, "abc123  [in progress] p2 Fix login flow  @alice,bob  #bug  due 2026-09-01", line)
}

func TestCompactTaskOmitsEmptyFields(t *testing.T) {
	task := clickup.Task{ID: "t1", Name: "bare", Status: clickup.Status{Status: "open"}}
	line := CompactTask(&task)
	assert.Equal(t, "t1  [open] bare", line)
	assert.NotContains(t, line, "@")
	assert.NotContains(t, line, "#")
	assert.NotContains(t, line, "due")
}

func TestTaskList(t *testing.T) {
	task := testTask()
	out := TaskList([]clickup.Task{task, task})
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
	assert.Contains(t, out, "2 task(s)")

	assert.Equal(t, "no tasks", TaskList(nil))
}

func TestTaskDetail(t *testing.T) {
	task := testTask()
	task.Description = "Users get logged out\nafter five minutes."

	out := TaskDetail(&task)
	assert.Contains(t, out, "abc123  Fix login flow")
	assert.Contains(t, out, "status:   in progress")
	assert.Contains(t, out, "priority: p2 (high)")
	assert.Contains(t, out, "assigned: alice, bob")
	assert.Contains(t, out, "Users get logged out")
}

func TestCommentList(t *testing.T) {
	when := clickup.NewMillis(time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC))
	out := CommentList([]clickup.Comment{
		{ID: "c1", CommentText: "looks good", User: clickup.User{Username: "alice"}, Date: &when},
	})
	assert.Contains(t, out, "alice  2026-08-20 09:30")
	assert.Contains(t, out, "  looks good")

	assert.Equal(t, "no comments", CommentList(nil))
}
