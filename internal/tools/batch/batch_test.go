package batch

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    []string
		wantErr bool
	}{
		{
			name:  "single task ID",
			input: "86c2tkwjq",
			want:  []string{"86c2tkwjq"},
		},
		{
			name:  "array of task IDs",
			input: []interface{}{"86c2tkwjq", "86c2tkwjr", "86c2tkwjs"},
			want:  []string{"86c2tkwjq", "86c2tkwjr", "86c2tkwjs"},
		},
		{
			name:    "nil input",
			input:   nil,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty array",
			input:   []interface{}{},
			wantErr: true,
		},
		{
			name:    "array with non-string",
			input:   []interface{}{"86c2tkwjq", 123, "86c2tkwjs"},
			wantErr: true,
		},
		{
			name:    "array with empty string",
			input:   []interface{}{"86c2tkwjq", "", "86c2tkwjs"},
			wantErr: true,
		},
		{
			name:    "invalid type",
			input:   123,
			wantErr: true,
		},
		{
			// Some MCP clients send array arguments as a JSON string.
			name:  "stringified JSON array",
			input: `["86c2tkwjq", "86c2tkwjr"]`,
			want:  []string{"86c2tkwjq", "86c2tkwjr"},
		},
		{
			name:  "stringified JSON single element array",
			input: `["86c2tkwjq"]`,
			want:  []string{"86c2tkwjq"},
		},
		{
			name:    "stringified JSON empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "stringified JSON array with empty element",
			input:   `["86c2tkwjq", ""]`,
			wantErr: true,
		},
		{
			// Not valid JSON, so the whole string is one ID.
			name:  "invalid JSON string",
			input: `[invalid json`,
			want:  []string{`[invalid json`},
		},
		{
			name:  "bracketed task name is not JSON",
			input: `[blocked] fix login`,
			want:  []string{`[blocked] fix login`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.input, "task_ids")
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseStringOrArray() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !stringSliceEqual(got, tt.want) {
				t.Errorf("ParseStringOrArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessBatch(t *testing.T) {
	ids := []string{"86c2tkwjq", "86c2tkwjr", "86c2tkwjs"}

	// Fails on the middle ID; the batch keeps going.
	fn := func(id string) (string, error) {
		if id == "86c2tkwjr" {
			return "", errors.New("task not found")
		}
		return "closed " + id, nil
	}

	results := ProcessBatch(ids, fn)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Status != statusSuccess || results[0].Result != "closed 86c2tkwjq" {
		t.Errorf("results[0] = %+v, want success", results[0])
	}
	if results[1].Status != statusError || results[1].Error != "task not found" {
		t.Errorf("results[1] = %+v, want error 'task not found'", results[1])
	}
	if results[2].Status != statusSuccess || results[2].Result != "closed 86c2tkwjs" {
		t.Errorf("results[2] = %+v, want success", results[2])
	}
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		NewSuccessResult("86c2tkwjq", "Task 86c2tkwjq closed"),
		NewSuccessResult("86c2tkwjr", "Task 86c2tkwjr closed"),
		NewErrorResult("86c2tkwjs", errors.New("task not found")),
	}

	output := FormatResults(results)

	var br BatchResult
	if err := json.Unmarshal([]byte(output), &br); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if br.Total != 3 {
		t.Errorf("Total = %d, want 3", br.Total)
	}
	if br.Successful != 2 {
		t.Errorf("Successful = %d, want 2", br.Successful)
	}
	if br.Failed != 1 {
		t.Errorf("Failed = %d, want 1", br.Failed)
	}
	if len(br.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(br.Results))
	}
}

func TestNewSuccessResult(t *testing.T) {
	result := NewSuccessResult("86c2tkwjq", "Task 86c2tkwjq closed")

	if result.ID != "86c2tkwjq" {
		t.Errorf("ID = %s, want 86c2tkwjq", result.ID)
	}
	if result.Status != statusSuccess {
		t.Errorf("Status = %s, want %s", result.Status, statusSuccess)
	}
	if result.Result != "Task 86c2tkwjq closed" {
		t.Errorf("Result = %q", result.Result)
	}
	if result.Error != "" {
		t.Errorf("Error should be empty, got %s", result.Error)
	}
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult("86c2tkwjq", errors.New("task not found"))

	if result.ID != "86c2tkwjq" {
		t.Errorf("ID = %s, want 86c2tkwjq", result.ID)
	}
	if result.Status != statusError {
		t.Errorf("Status = %s, want %s", result.Status, statusError)
	}
	if result.Error != "task not found" {
		t.Errorf("Error = %q", result.Error)
	}
	if result.Result != "" {
		t.Errorf("Result should be empty, got %s", result.Result)
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
