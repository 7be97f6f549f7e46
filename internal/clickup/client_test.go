package clickup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("pk_test_token",
		WithBaseURL(srv.URL),
		WithRateLimit(60000), // effectively unlimited for tests
		WithMaxTries(3),
	)
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestClientSendsAuthHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"teams": []Workspace{}})
	}))

	_, err := client.Workspaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pk_test_token", gotAuth)
}

func TestWorkspaces(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/team", r.URL.Path)
		_, _ = w.Write([]byte(`{"teams":[{"id":"9001","name":"Acme"},{"id":"9002","name":"Side"}]}`))
	}))

	workspaces, err := client.Workspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, workspaces, 2)
	assert.Equal(t, "Acme", workspaces[0].Name)
}

func TestTasksPagination(t *testing.T) {
	pages := map[string]string{
		"0": `{"tasks":[{"id":"t1","name":"one"},{"id":"t2","name":"two"}],"last_page":false}`,
		"1": `{"tasks":[{"id":"t3","name":"three"}],"last_page":true}`,
	}
	var requestedPages []string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/123/task", r.URL.Path)
		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)
		_, _ = w.Write([]byte(pages[page]))
	}))

	tasks, err := client.Tasks(context.Background(), "123", TaskListOptions{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"0", "1"}, requestedPages)
	assert.Equal(t, "t3", tasks[2].ID)
}

func TestTasksOptions(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_closed"))
		assert.Equal(t, "true", r.URL.Query().Get("subtasks"))
		_, _ = w.Write([]byte(`{"tasks":[],"last_page":true}`))
	}))

	_, err := client.Tasks(context.Background(), "123", TaskListOptions{IncludeClosed: true, Subtasks: true})
	require.NoError(t, err)
}

func TestRetryOnServerError(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":"t1","name":"one"}`))
	}))

	task, err := client.Task(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "one", task.Name)
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err":"Token invalid","ECODE":"OAUTH_025"}`))
	}))

	_, err := client.Task(context.Background(), "t1")
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "OAUTH_025", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "Token invalid")
}

func TestIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"err":"Task not found","ECODE":"ITEM_013"}`))
	}))

	_, err := client.Task(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, IsNotFound(apiErr))
}

func TestCreateTaskSendsBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input TaskInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Fix login", input.Name)
		assert.Equal(t, 2, input.Priority)

		_, _ = w.Write([]byte(`{"id":"t9","name":"Fix login"}`))
	}))

	task, err := client.CreateTask(context.Background(), "123", TaskInput{Name: "Fix login", Priority: 2})
	require.NoError(t, err)
	assert.Equal(t, "t9", task.ID)
}

func TestMillisUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected int64
	}{
		{name: "string millis", payload: `{"due_date":"1713744000000"}`, expected: 1713744000000},
		{name: "numeric millis", payload: `{"due_date":1713744000000}`, expected: 1713744000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var task Task
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &task))
			require.NotNil(t, task.DueDate)
			assert.Equal(t, Millis(tt.expected), *task.DueDate)
		})
	}

	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":null}`), &task))
	assert.Nil(t, task.DueDate)
}
