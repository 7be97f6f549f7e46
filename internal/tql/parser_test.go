package tql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComparisons(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string // canonical String() rendering
	}{
		{
			name:     "equality",
			input:    "status == 'to do'",
			expected: `status == "to do"`,
		},
		{
			name:     "word operator not in",
			input:    "status not in ['closed', 'done']",
			expected: `status not in ["closed", "done"]`,
		},
		{
			name:     "paren list literal",
			input:    "status in ('open', 'review')",
			expected: `status in ["open", "review"]`,
		},
		{
			name:     "exists takes no literal",
			input:    "assignee exists",
			expected: "assignee exists",
		},
		{
			name:     "is null",
			input:    "parent is null",
			expected: "parent is null",
		},
		{
			name:     "is not true",
			input:    "archived is not true",
			expected: "archived is not true",
		},
		{
			name:     "numeric comparison",
			input:    "priority >= 3",
			expected: "priority >= 3",
		},
		{
			name:     "contains",
			input:    "name contains 'auth'",
			expected: `name contains "auth"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr.String())
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "and binds tighter than or",
			input:    "a == 1 OR b == 2 AND c == 3",
			expected: "(a == 1 OR (b == 2 AND c == 3))",
		},
		{
			name:     "not binds tighter than and",
			input:    "NOT a == 1 AND b == 2",
			expected: "(NOT a == 1 AND b == 2)",
		},
		{
			name:     "parens override precedence",
			input:    "(a == 1 OR b == 2) AND c == 3",
			expected: "((a == 1 OR b == 2) AND c == 3)",
		},
		{
			name:     "and chains associate left",
			input:    "a == 1 AND b == 2 AND c == 3",
			expected: "((a == 1 AND b == 2) AND c == 3)",
		},
		{
			name:     "double negation",
			input:    "NOT NOT a == 1",
			expected: "NOT NOT a == 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, expr.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty query", input: ""},
		{name: "unmatched open paren", input: "(status == 'to do'"},
		{name: "unmatched close paren", input: "status == 'to do')"},
		{name: "trailing garbage", input: "status == 'to do' priority"},
		{name: "missing literal", input: "status =="},
		{name: "missing operator", input: "status 'to do'"},
		{name: "dangling and", input: "status == 'x' AND"},
		{name: "not without in", input: "status not 'x'"},
		{name: "is with string literal", input: "status is 'open'"},
		{name: "bare not", input: "NOT"},
		{name: "number in list", input: "status in ['a', 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var synErr *SyntaxError
			assert.ErrorAs(t, err, &synErr)
		})
	}
}

func TestParseReportsUnexpectedToken(t *testing.T) {
	_, err := Parse("status == 'to do' bogus")
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, "bogus", synErr.Fragment)
	assert.Equal(t, 18, synErr.Pos)
}
