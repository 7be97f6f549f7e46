package task_tools

import (
	"context"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cuptool/cuptool/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CLICKUP_TOKEN", "")

	sc, err := server.NewServerContext(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func registeredNames(s *mcpserver.MCPServer) map[string]bool {
	names := make(map[string]bool)
	for _, serverTool := range s.ListTools() {
		names[serverTool.Tool.Name] = true
	}
	return names
}

func TestRegisterTaskTools(t *testing.T) {
	sc := newTestServerContext(t)

	s := mcpserver.NewMCPServer("test", "0.0.0")
	if err := RegisterTaskTools(s, sc, false); err != nil {
		t.Fatalf("RegisterTaskTools() error = %v", err)
	}

	names := registeredNames(s)
	for _, want := range []string{
		"clickup_list_tasks",
		"clickup_get_tasks",
		"clickup_get_comments",
		"clickup_create_task",
		"clickup_update_task",
		"clickup_close_tasks",
		"clickup_delete_tasks",
		"clickup_comment_task",
	} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}
}

func TestRegisterTaskTools_ReadOnly(t *testing.T) {
	sc := newTestServerContext(t)

	s := mcpserver.NewMCPServer("test", "0.0.0")
	if err := RegisterTaskTools(s, sc, true); err != nil {
		t.Fatalf("RegisterTaskTools() error = %v", err)
	}

	names := registeredNames(s)
	if !names["clickup_list_tasks"] {
		t.Error("read tool clickup_list_tasks not registered")
	}
	for _, writeTool := range []string{
		"clickup_create_task",
		"clickup_update_task",
		"clickup_close_tasks",
		"clickup_delete_tasks",
		"clickup_comment_task",
	} {
		if names[writeTool] {
			t.Errorf("write tool %s registered in read-only mode", writeTool)
		}
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{
			name:    "absent",
			args:    map[string]interface{}{},
			wantNil: true,
		},
		{
			name:    "empty",
			args:    map[string]interface{}{"due_date": ""},
			wantNil: true,
		},
		{
			name: "valid RFC3339",
			args: map[string]interface{}{"due_date": "2026-09-01T00:00:00Z"},
			want: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "invalid format",
			args:    map[string]interface{}{"due_date": "tomorrow"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDueDate(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDueDate() error = %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("parseDueDate() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("parseDueDate() = nil, want value")
			}
			if !got.Time().Equal(tt.want) {
				t.Errorf("parseDueDate() = %v, want %v", got.Time(), tt.want)
			}
		})
	}
}
