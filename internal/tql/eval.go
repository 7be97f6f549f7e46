package tql

import "strings"

// Evaluator evaluates parsed expressions against records. The zero
// value matches strings case-insensitively, which is the documented
// default for the language.
type Evaluator struct {
	// CaseSensitive switches string comparisons (==, !=, ordering
	// fallback, contains, starts_with, ends_with, in) to exact-case
	// matching.
	CaseSensitive bool
}

// Evaluate walks the expression tree against a single record and
// reports whether it matches. Evaluation is total: absent fields and
// type mismatches are non-matches, never errors. And/Or short-circuit.
func (e *Evaluator) Evaluate(expr Expr, rec Record) bool {
	switch n := expr.(type) {
	case *And:
		return e.Evaluate(n.Left, rec) && e.Evaluate(n.Right, rec)
	case *Or:
		return e.Evaluate(n.Left, rec) || e.Evaluate(n.Right, rec)
	case *Not:
		return !e.Evaluate(n.Operand, rec)
	case *Comparison:
		return e.compare(n, rec)
	}
	return false
}

func (e *Evaluator) compare(c *Comparison, rec Record) bool {
	val, present := rec[c.Field]

	if c.Op == OpExists {
		return present && !val.IsNull()
	}
	// Absence is a non-match for every other operator, including the
	// negated ones.
	if !present {
		return false
	}

	switch c.Op {
	case OpEq:
		return e.equal(val, c.Literal)
	case OpNe:
		return !e.equal(val, c.Literal)
	case OpGt, OpGe, OpLt, OpLe:
		return e.order(c.Op, val, c.Literal)
	case OpIn:
		return e.membership(val, c.Literal)
	case OpNotIn:
		return !e.membership(val, c.Literal)
	case OpContains:
		return e.fold(val.asString(), func(s, sub string) bool { return strings.Contains(s, sub) }, c.Literal)
	case OpStartsWith:
		return e.fold(val.asString(), strings.HasPrefix, c.Literal)
	case OpEndsWith:
		return e.fold(val.asString(), strings.HasSuffix, c.Literal)
	case OpIs:
		return identity(val, c.Literal)
	case OpIsNot:
		return !identity(val, c.Literal)
	}
	return false
}

// equal compares numerically when both sides are representable as
// numbers (a numeric string counts); otherwise it falls back to
// string comparison. The mixed number/non-numeric-string case takes
// the string path.
func (e *Evaluator) equal(a, b Value) bool {
	if an, ok := a.asNumber(); ok {
		if bn, ok := b.asNumber(); ok {
			return an == bn
		}
	}
	return e.stringsEqual(a.asString(), b.asString())
}

func (e *Evaluator) order(op Operator, a, b Value) bool {
	if an, aok := a.asNumber(); aok {
		if bn, bok := b.asNumber(); bok {
			switch op {
			case OpGt:
				return an > bn
			case OpGe:
				return an >= bn
			case OpLt:
				return an < bn
			case OpLe:
				return an <= bn
			}
		}
	}

	as, bs := a.asString(), b.asString()
	if !e.CaseSensitive {
		as, bs = strings.ToLower(as), strings.ToLower(bs)
	}
	switch op {
	case OpGt:
		return as > bs
	case OpGe:
		return as >= bs
	case OpLt:
		return as < bs
	case OpLe:
		return as <= bs
	}
	return false
}

// membership implements the bidirectional in: the literal found within
// the record value, or the record value found within the literal.
func (e *Evaluator) membership(val, lit Value) bool {
	return e.within(val, lit) || e.within(lit, val)
}

// within reports whether needle occurs in container: element match for
// lists, substring match for everything else.
func (e *Evaluator) within(container, needle Value) bool {
	ns := needle.asString()
	if container.Kind() == KindList {
		for _, item := range container.list {
			if e.stringsEqual(item, ns) {
				return true
			}
		}
		return false
	}
	return e.fold(container.asString(), func(s, sub string) bool { return strings.Contains(s, sub) }, needle)
}

// identity implements is / is not: identity against null or a boolean
// literal only. The parser guarantees the literal kind.
func identity(val, lit Value) bool {
	switch lit.Kind() {
	case KindNull:
		return val.IsNull()
	case KindBool:
		return val.Kind() == KindBool && val.b == lit.b
	}
	return false
}

func (e *Evaluator) fold(s string, pred func(s, sub string) bool, lit Value) bool {
	sub := lit.asString()
	if !e.CaseSensitive {
		s, sub = strings.ToLower(s), strings.ToLower(sub)
	}
	return pred(s, sub)
}

func (e *Evaluator) stringsEqual(a, b string) bool {
	if e.CaseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
