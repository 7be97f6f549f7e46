package batch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Statuses of a single batch entry.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Result is the outcome of one task in a batch, e.g. one task ID out
// of the list passed to clickup_close_tasks.
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "success" or "error"
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResult aggregates the per-task results with summary counts so
// an assistant can report "3 closed, 1 failed" without re-counting.
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseStringOrArray accepts a tool argument that is either a single
// task ID ("abc123") or an array of IDs (["abc123", "def456"]) and
// normalizes it to a slice. Some MCP clients stringify array
// arguments, so a string holding a JSON array is unpacked too. Strings
// that merely start with "[" but are not valid JSON stay single IDs.
// paramName is used in error messages.
func ParseStringOrArray(param interface{}, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var ids []string

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		if strings.HasPrefix(strings.TrimSpace(v), "[") {
			var arr []string
			if err := json.Unmarshal([]byte(v), &arr); err == nil {
				if len(arr) == 0 {
					return nil, fmt.Errorf("%s cannot be empty", paramName)
				}
				for i, id := range arr {
					if id == "" {
						return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
					}
				}
				return arr, nil
			}
		}
		ids = []string{v}
	case []interface{}:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		for i, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			if id == "" {
				return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
			}
			ids = append(ids, id)
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}

	return ids, nil
}

// ProcessBatch runs fn once per ID in order, converting each return
// into a Result. A failing ID does not stop the batch; callers get a
// partial-failure report instead.
func ProcessBatch(ids []string, fn func(id string) (string, error)) []Result {
	results := make([]Result, 0, len(ids))

	for _, id := range ids {
		res, err := fn(id)
		if err != nil {
			results = append(results, NewErrorResult(id, err))
		} else {
			results = append(results, NewSuccessResult(id, res))
		}
	}

	return results
}

// FormatResults renders the batch outcome as indented JSON.
func FormatResults(results []Result) string {
	br := BatchResult{
		Total:   len(results),
		Results: results,
	}

	for _, r := range results {
		if r.Status == statusSuccess {
			br.Successful++
		} else {
			br.Failed++
		}
	}

	jsonBytes, _ := json.MarshalIndent(br, "", "  ")
	return string(jsonBytes)
}

// NewSuccessResult builds a successful entry for the given task ID.
func NewSuccessResult(id, message string) Result {
	return Result{
		ID:     id,
		Status: statusSuccess,
		Result: message,
	}
}

// NewErrorResult builds a failed entry carrying the error text.
func NewErrorResult(id string, err error) Result {
	return Result{
		ID:     id,
		Status: statusError,
		Error:  err.Error(),
	}
}
