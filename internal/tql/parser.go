package tql

import (
	"strconv"
	"strings"
)

// parser is a recursive-descent parser over the token stream.
//
// Grammar, lowest to highest precedence:
//
//	or         -> and (OR and)*
//	and        -> unary (AND unary)*
//	unary      -> NOT unary | primary
//	primary    -> '(' or ')' | comparison
//	comparison -> FIELD operator literal
//	            | FIELD 'exists'
//	            | literal ('in' | 'not' 'in') FIELD
//
// AND/OR chains associate left. NOT binds tighter than AND, AND
// tighter than OR.
type parser struct {
	tokens []token
	pos    int
}

// Parse tokenizes and parses a query string into an expression tree.
// Trailing tokens after a complete expression are a SyntaxError.
func Parse(query string) (Expr, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, syntaxErrorf(tok.pos, tok.val, "unexpected %s after end of expression", tok.kind)
	}
	return expr, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return token{}, syntaxErrorf(tok.pos, tok.val, "expected %s, found %s", kind, tok)
	}
	return p.advance(), nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().kind == tokenNot {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()

	if tok.kind == tokenLeftParen {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	}

	switch tok.kind {
	case tokenIdent:
		return p.parseComparison()
	case tokenString, tokenNumber:
		return p.parseLiteralMembership()
	}
	return nil, syntaxErrorf(tok.pos, tok.val, "expected a field name, found %s", tok)
}

// parseLiteralMembership handles the literal-first membership form
// `'bug' in tags`. Because in/not in is bidirectional, it folds into
// the same node as `tags in 'bug'`.
func (p *parser) parseLiteralMembership() (Expr, error) {
	lit := p.advance()

	op, err := p.parseOperator()
	if err != nil {
		return nil, err
	}
	if op != OpIn && op != OpNotIn {
		return nil, syntaxErrorf(lit.pos, lit.val, "a literal can only appear on the left of \"in\" or \"not in\"")
	}

	field, err := p.expect(tokenIdent)
	if err != nil {
		return nil, err
	}

	var literal Value
	if lit.kind == tokenString {
		literal = String(lit.val)
	} else {
		n, perr := strconv.ParseFloat(lit.val, 64)
		if perr != nil {
			return nil, syntaxErrorf(lit.pos, lit.val, "malformed number")
		}
		literal = Number(n)
	}
	return &Comparison{Field: field.val, Op: op, Literal: literal}, nil
}

func (p *parser) parseComparison() (Expr, error) {
	field := p.advance()

	op, err := p.parseOperator()
	if err != nil {
		return nil, err
	}
	if op == OpExists {
		return &Comparison{Field: field.val, Op: OpExists, Literal: Null()}, nil
	}

	literal, err := p.parseLiteral(op)
	if err != nil {
		return nil, err
	}
	return &Comparison{Field: field.val, Op: op, Literal: literal}, nil
}

// parseOperator consumes the operator following a field name: a
// symbolic operator, or one of the word operators. "not in" and
// "is not" are two tokens each.
func (p *parser) parseOperator() (Operator, error) {
	tok := p.peek()

	switch tok.kind {
	case tokenOperator:
		p.advance()
		switch tok.val {
		case "==":
			return OpEq, nil
		case "!=":
			return OpNe, nil
		case ">":
			return OpGt, nil
		case ">=":
			return OpGe, nil
		case "<":
			return OpLt, nil
		case "<=":
			return OpLe, nil
		}

	case tokenNot:
		// "not in"
		p.advance()
		next := p.peek()
		if next.kind == tokenIdent && strings.EqualFold(next.val, "in") {
			p.advance()
			return OpNotIn, nil
		}
		return 0, syntaxErrorf(next.pos, next.val, "expected \"in\" after \"not\"")

	case tokenIdent:
		switch strings.ToLower(tok.val) {
		case "in":
			p.advance()
			return OpIn, nil
		case "contains":
			p.advance()
			return OpContains, nil
		case "starts_with":
			p.advance()
			return OpStartsWith, nil
		case "ends_with":
			p.advance()
			return OpEndsWith, nil
		case "exists":
			p.advance()
			return OpExists, nil
		case "is":
			p.advance()
			if p.peek().kind == tokenNot {
				p.advance()
				return OpIsNot, nil
			}
			return OpIs, nil
		}
	}

	return 0, syntaxErrorf(tok.pos, tok.val, "expected a comparison operator, found %s", tok)
}

// parseLiteral consumes the right-hand side of a comparison: a quoted
// string, a number, a boolean, null, or a bracketed list of strings.
// is/is not accept only null or boolean literals.
func (p *parser) parseLiteral(op Operator) (Value, error) {
	tok := p.peek()

	if op == OpIs || op == OpIsNot {
		switch tok.kind {
		case tokenNull:
			p.advance()
			return Null(), nil
		case tokenBool:
			p.advance()
			return Bool(tok.val == "true"), nil
		}
		return Value{}, syntaxErrorf(tok.pos, tok.val, "%q expects null or a boolean, found %s", op, tok)
	}

	switch tok.kind {
	case tokenString:
		p.advance()
		return String(tok.val), nil
	case tokenNumber:
		p.advance()
		n, err := strconv.ParseFloat(tok.val, 64)
		if err != nil {
			return Value{}, syntaxErrorf(tok.pos, tok.val, "malformed number")
		}
		return Number(n), nil
	case tokenBool:
		p.advance()
		return Bool(tok.val == "true"), nil
	case tokenNull:
		p.advance()
		return Null(), nil
	case tokenLeftBracket:
		return p.parseList(tokenRightBracket)
	case tokenLeftParen:
		return p.parseList(tokenRightParen)
	}

	return Value{}, syntaxErrorf(tok.pos, tok.val, "expected a literal, found %s", tok)
}

// parseList consumes a comma-separated list of string literals closed
// by the given bracket. Both ['a','b'] and ('a','b') are accepted.
func (p *parser) parseList(closing tokenKind) (Value, error) {
	p.advance() // opening bracket

	var items []string
	for {
		tok := p.peek()
		if tok.kind == closing && len(items) == 0 {
			p.advance()
			return List(), nil
		}

		str, err := p.expect(tokenString)
		if err != nil {
			return Value{}, err
		}
		items = append(items, str.val)

		tok = p.peek()
		switch tok.kind {
		case tokenComma:
			p.advance()
		case closing:
			p.advance()
			return List(items...), nil
		default:
			return Value{}, syntaxErrorf(tok.pos, tok.val, "expected %s or %s in list, found %s", tokenComma, closing, tok)
		}
	}
}
