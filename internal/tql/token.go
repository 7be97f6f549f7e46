package tql

import "fmt"

// tokenKind identifies the lexical class of a token.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenOperator // symbolic operators: == != >= <= > <
	tokenAnd
	tokenOr
	tokenNot
	tokenLeftParen
	tokenRightParen
	tokenLeftBracket
	tokenRightBracket
	tokenComma
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of query"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "string"
	case tokenNumber:
		return "number"
	case tokenBool:
		return "boolean"
	case tokenNull:
		return "null"
	case tokenOperator:
		return "operator"
	case tokenAnd:
		return "AND"
	case tokenOr:
		return "OR"
	case tokenNot:
		return "NOT"
	case tokenLeftParen:
		return "'('"
	case tokenRightParen:
		return "')'"
	case tokenLeftBracket:
		return "'['"
	case tokenRightBracket:
		return "']'"
	case tokenComma:
		return "','"
	}
	return "unknown token"
}

// token is a single lexeme with its byte offset in the query string.
// Tokens are immutable once produced by the lexer.
type token struct {
	kind tokenKind
	val  string // raw text; for strings, without the surrounding quotes
	pos  int    // byte offset of the first character
}

func (t token) String() string {
	if t.kind == tokenEOF {
		return "end of query"
	}
	return fmt.Sprintf("%q", t.val)
}

// SyntaxError describes a malformed query. It carries the offending
// fragment and its byte offset so callers can point at the problem.
type SyntaxError struct {
	Pos      int
	Fragment string
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("syntax error at offset %d near %q: %s", e.Pos, e.Fragment, e.Msg)
}

func syntaxErrorf(pos int, fragment, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Pos:      pos,
		Fragment: fragment,
		Msg:      fmt.Sprintf(format, args...),
	}
}
