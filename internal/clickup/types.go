package clickup

import (
	"strconv"
	"time"
)

// Workspace is a ClickUp workspace (called "team" in the v2 API).
type Workspace struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color,omitempty"`
	Members []Member `json:"members,omitempty"`
}

// Member is a user inside a workspace.
type Member struct {
	User User `json:"user"`
}

// User identifies a ClickUp user.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Initials string `json:"initials,omitempty"`
}

// Space groups folders and lists inside a workspace.
type Space struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Private  bool     `json:"private"`
	Archived bool     `json:"archived"`
	Statuses []Status `json:"statuses,omitempty"`
}

// Folder groups lists inside a space.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Hidden   bool   `json:"hidden"`
	Archived bool   `json:"archived"`
	Lists    []List `json:"lists,omitempty"`
}

// List holds tasks. Lists live in a folder or directly in a space.
type List struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaskCount int    `json:"task_count"`
	Archived  bool   `json:"archived"`
	Folder    *Ref   `json:"folder,omitempty"`
	Space     *Ref   `json:"space,omitempty"`
}

// Ref is a lightweight id/name reference to a containing entity.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Status is a task status within a space or list.
type Status struct {
	Status string `json:"status"`
	Type   string `json:"type,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Priority is a task priority. ClickUp encodes it as an object whose
// ID is "1" (urgent) through "4" (low); tasks without a priority have
// a null priority field.
type Priority struct {
	ID       string `json:"id"`
	Priority string `json:"priority"`
	Color    string `json:"color,omitempty"`
}

// Level returns the numeric priority level (1 = urgent ... 4 = low),
// or 0 if the priority is not numeric.
func (p *Priority) Level() int {
	if p == nil {
		return 0
	}
	n, err := strconv.Atoi(p.ID)
	if err != nil {
		return 0
	}
	return n
}

// Tag is a task tag.
type Tag struct {
	Name string `json:"name"`
}

// Task is a ClickUp task.
type Task struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TextContent string    `json:"text_content,omitempty"`
	Status      Status    `json:"status"`
	Priority    *Priority `json:"priority,omitempty"`
	Assignees   []User    `json:"assignees,omitempty"`
	Tags        []Tag     `json:"tags,omitempty"`
	Parent      string    `json:"parent,omitempty"`
	DueDate     *Millis   `json:"due_date,omitempty"`
	StartDate   *Millis   `json:"start_date,omitempty"`
	DateCreated *Millis   `json:"date_created,omitempty"`
	DateUpdated *Millis   `json:"date_updated,omitempty"`
	DateClosed  *Millis   `json:"date_closed,omitempty"`
	Archived    bool      `json:"archived"`
	List        *Ref      `json:"list,omitempty"`
	Folder      *Ref      `json:"folder,omitempty"`
	Space       *Ref      `json:"space,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// TaskInput is the payload for creating or updating a task. Zero
// fields are omitted so partial updates only touch what was set.
type TaskInput struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	DueDate     *Millis  `json:"due_date,omitempty"`
	Assignees   []int    `json:"assignees,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Comment is a task comment.
type Comment struct {
	ID          string  `json:"id"`
	CommentText string  `json:"comment_text"`
	User        User    `json:"user"`
	Date        *Millis `json:"date,omitempty"`
}

// Millis is a Unix-milliseconds timestamp that ClickUp serializes as
// a JSON string (and occasionally as a bare number).
type Millis int64

// UnmarshalJSON accepts both "1713744000000" and 1713744000000.
func (m *Millis) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*m = Millis(n)
	return nil
}

// MarshalJSON writes the string form ClickUp expects.
func (m Millis) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(m), 10))), nil
}

// Time converts the timestamp to a time.Time in UTC.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

// NewMillis converts a time.Time to a Millis timestamp.
func NewMillis(t time.Time) Millis {
	return Millis(t.UnixMilli())
}
