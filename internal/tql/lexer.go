package tql

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer scans a query string left to right and materializes the full
// token sequence. No scan state escapes tokenize; re-invoking on the
// same string restarts from scratch.
type lexer struct {
	input string
	pos   int // current byte offset
}

// tokenize converts a query string into tokens, ending with tokenEOF.
func tokenize(input string) ([]token, error) {
	l := &lexer{input: input}

	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	r, width := utf8.DecodeRuneInString(l.input[l.pos:])

	switch {
	case r == '(':
		l.pos += width
		return token{kind: tokenLeftParen, val: "(", pos: start}, nil
	case r == ')':
		l.pos += width
		return token{kind: tokenRightParen, val: ")", pos: start}, nil
	case r == '[':
		l.pos += width
		return token{kind: tokenLeftBracket, val: "[", pos: start}, nil
	case r == ']':
		l.pos += width
		return token{kind: tokenRightBracket, val: "]", pos: start}, nil
	case r == ',':
		l.pos += width
		return token{kind: tokenComma, val: ",", pos: start}, nil
	case r == '\'' || r == '"':
		return l.scanString(r)
	case r >= '0' && r <= '9':
		return l.scanNumber()
	case r == '=' || r == '!' || r == '<' || r == '>':
		return l.scanOperator()
	case isIdentStart(r):
		return l.scanWord()
	}

	return token{}, syntaxErrorf(start, string(r), "unexpected character")
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, width := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += width
	}
}

// scanString consumes a quoted string. Quotes match but there is no
// escape processing; a query cannot contain its own quote character
// inside a literal.
func (l *lexer) scanString(quote rune) (token, error) {
	start := l.pos
	l.pos++ // opening quote
	end := strings.IndexRune(l.input[l.pos:], quote)
	if end < 0 {
		return token{}, syntaxErrorf(start, l.input[start:], "unterminated string literal")
	}
	val := l.input[l.pos : l.pos+end]
	l.pos += end + 1
	return token{kind: tokenString, val: val, pos: start}, nil
}

// scanNumber consumes an integer or decimal literal.
func (l *lexer) scanNumber() (token, error) {
	start := l.pos
	sawDot := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c >= '0' && c <= '9' {
			l.pos++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			l.pos++
			continue
		}
		break
	}
	val := l.input[start:l.pos]
	if strings.HasSuffix(val, ".") {
		return token{}, syntaxErrorf(start, val, "malformed number")
	}
	return token{kind: tokenNumber, val: val, pos: start}, nil
}

// scanOperator consumes one of == != >= <= > <. A single '=' or a
// dangling '!' is rejected.
func (l *lexer) scanOperator() (token, error) {
	start := l.pos
	c := l.input[l.pos]
	twoChar := l.pos+1 < len(l.input) && l.input[l.pos+1] == '='

	switch c {
	case '=', '!':
		if !twoChar {
			return token{}, syntaxErrorf(start, string(c), "unknown operator (did you mean %q?)", string(c)+"=")
		}
		l.pos += 2
	case '<', '>':
		if twoChar {
			l.pos += 2
		} else {
			l.pos++
		}
	}
	return token{kind: tokenOperator, val: l.input[start:l.pos], pos: start}, nil
}

// scanWord consumes an identifier-like token and classifies the
// keywords AND/OR/NOT and the literal words true/false/null/none,
// all case-insensitive. Anything else stays an identifier; the parser
// decides whether it is a field name or a word operator such as
// "contains".
func (l *lexer) scanWord() (token, error) {
	start := l.pos
	for l.pos < len(l.input) {
		r, width := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += width
	}
	val := l.input[start:l.pos]

	switch strings.ToLower(val) {
	case "and":
		return token{kind: tokenAnd, val: val, pos: start}, nil
	case "or":
		return token{kind: tokenOr, val: val, pos: start}, nil
	case "not":
		return token{kind: tokenNot, val: val, pos: start}, nil
	case "true", "false":
		return token{kind: tokenBool, val: strings.ToLower(val), pos: start}, nil
	case "null", "none":
		return token{kind: tokenNull, val: strings.ToLower(val), pos: start}, nil
	}
	return token{kind: tokenIdent, val: val, pos: start}, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
