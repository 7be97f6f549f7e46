package tql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeBasics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []tokenKind
	}{
		{
			name:  "empty query",
			input: "",
			kinds: []tokenKind{tokenEOF},
		},
		{
			name:  "simple comparison",
			input: "status == 'to do'",
			kinds: []tokenKind{tokenIdent, tokenOperator, tokenString, tokenEOF},
		},
		{
			name:  "double quoted string",
			input: `name contains "roadmap"`,
			kinds: []tokenKind{tokenIdent, tokenIdent, tokenString, tokenEOF},
		},
		{
			name:  "numbers",
			input: "priority >= 2.5",
			kinds: []tokenKind{tokenIdent, tokenOperator, tokenNumber, tokenEOF},
		},
		{
			name:  "keywords case insensitive",
			input: "a == 1 and b == 2 Or not c == 3",
			kinds: []tokenKind{tokenIdent, tokenOperator, tokenNumber, tokenAnd, tokenIdent, tokenOperator, tokenNumber, tokenOr, tokenNot, tokenIdent, tokenOperator, tokenNumber, tokenEOF},
		},
		{
			name:  "boolean and null words",
			input: "archived is TRUE and parent is None",
			kinds: []tokenKind{tokenIdent, tokenIdent, tokenBool, tokenAnd, tokenIdent, tokenIdent, tokenNull, tokenEOF},
		},
		{
			name:  "parens and brackets",
			input: "(status in ['open', 'closed'])",
			kinds: []tokenKind{tokenLeftParen, tokenIdent, tokenIdent, tokenLeftBracket, tokenString, tokenComma, tokenString, tokenRightBracket, tokenRightParen, tokenEOF},
		},
		{
			name:  "dotted field name",
			input: "custom.story_points > 3",
			kinds: []tokenKind{tokenIdent, tokenOperator, tokenNumber, tokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tokenize(tt.input)
			require.NoError(t, err)

			kinds := make([]tokenKind, len(tokens))
			for i, tok := range tokens {
				kinds[i] = tok.kind
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestTokenizeStringValues(t *testing.T) {
	tokens, err := tokenize("status == 'in progress'")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "status", tokens[0].val)
	assert.Equal(t, "==", tokens[1].val)
	assert.Equal(t, "in progress", tokens[2].val)
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := tokenize("a  ==  'x'")
	require.NoError(t, err)
	assert.Equal(t, 0, tokens[0].pos)
	assert.Equal(t, 3, tokens[1].pos)
	assert.Equal(t, 7, tokens[2].pos)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "single equals", input: "status = 'to do'"},
		{name: "dangling bang", input: "status ! 'to do'"},
		{name: "unterminated string", input: "status == 'to do"},
		{name: "trailing dot number", input: "priority > 3."},
		{name: "stray character", input: "status == @here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokenize(tt.input)
			require.Error(t, err)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.NotEmpty(t, synErr.Fragment)
			assert.GreaterOrEqual(t, synErr.Pos, 0)
		})
	}
}

func TestSyntaxErrorReportsOffset(t *testing.T) {
	_, err := tokenize("status = 'to do'")
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 7, synErr.Pos)
	assert.Contains(t, synErr.Error(), "offset 7")
}
