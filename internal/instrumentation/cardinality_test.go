package instrumentation

import (
	"strings"
	"testing"
)

func TestQueryLengthBucket(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"empty", "", "empty"},
		{"short", "status == 'open'", "short"},
		{"boundary short", strings.Repeat("x", 64), "short"},
		{"medium", strings.Repeat("x", 65), "medium"},
		{"boundary medium", strings.Repeat("x", 256), "medium"},
		{"long", strings.Repeat("x", 257), "long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := QueryLengthBucket(tt.query)
			if result != tt.expected {
				t.Errorf("QueryLengthBucket(%d chars) = %q, want %q", len(tt.query), result, tt.expected)
			}
		})
	}
}

func TestOperationConstants(t *testing.T) {
	operations := map[string]string{
		OperationList:    "list",
		OperationGet:     "get",
		OperationCreate:  "create",
		OperationUpdate:  "update",
		OperationDelete:  "delete",
		OperationClose:   "close",
		OperationComment: "comment",
		OperationFilter:  "filter",
	}

	for constant, expected := range operations {
		if constant != expected {
			t.Errorf("Operation constant = %q, want %q", constant, expected)
		}
	}
}
