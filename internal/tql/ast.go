package tql

import "fmt"

// Operator is a comparison operator in a TQL query.
type Operator int

const (
	OpEq Operator = iota
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpIn
	OpNotIn
	OpContains
	OpStartsWith
	OpEndsWith
	OpExists
	OpIs
	OpIsNot
)

func (op Operator) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	case OpContains:
		return "contains"
	case OpStartsWith:
		return "starts_with"
	case OpEndsWith:
		return "ends_with"
	case OpExists:
		return "exists"
	case OpIs:
		return "is"
	case OpIsNot:
		return "is not"
	}
	return "unknown"
}

// describe returns the operator spelled out for Explain output.
func (op Operator) describe() string {
	switch op {
	case OpEq:
		return "equals"
	case OpNe:
		return "does not equal"
	case OpGt:
		return "is greater than"
	case OpGe:
		return "is at least"
	case OpLt:
		return "is less than"
	case OpLe:
		return "is at most"
	case OpIn:
		return "is in"
	case OpNotIn:
		return "is not in"
	case OpContains:
		return "contains"
	case OpStartsWith:
		return "starts with"
	case OpEndsWith:
		return "ends with"
	case OpExists:
		return "exists"
	case OpIs:
		return "is"
	case OpIsNot:
		return "is not"
	}
	return "unknown"
}

// Expr is a node of a parsed query. Trees are strictly ownership
// shaped (finite, acyclic) and never mutated after Parse returns, so
// a single Expr may be evaluated concurrently against many records.
type Expr interface {
	// describe renders the node as human-readable prose for Explain.
	describe() string

	// String renders the node back into query-like text. The result
	// is equivalent in meaning to the original query, not necessarily
	// byte-identical.
	fmt.Stringer
}

// Comparison is a single field test: field, operator, literal.
// For the exists operator the literal is unused (null).
type Comparison struct {
	Field   string
	Op      Operator
	Literal Value
}

func (c *Comparison) String() string {
	if c.Op == OpExists {
		return fmt.Sprintf("%s exists", c.Field)
	}
	return fmt.Sprintf("%s %s %s", c.Field, c.Op, c.Literal.quote())
}

func (c *Comparison) describe() string {
	if c.Op == OpExists {
		return fmt.Sprintf("field %q exists", c.Field)
	}
	return fmt.Sprintf("field %q %s %s", c.Field, c.Op.describe(), c.Literal.quote())
}

// And is the conjunction of two subexpressions.
type And struct {
	Left, Right Expr
}

func (a *And) String() string {
	return fmt.Sprintf("(%s AND %s)", a.Left, a.Right)
}

func (a *And) describe() string {
	return fmt.Sprintf("(%s and %s)", a.Left.describe(), a.Right.describe())
}

// Or is the disjunction of two subexpressions.
type Or struct {
	Left, Right Expr
}

func (o *Or) String() string {
	return fmt.Sprintf("(%s OR %s)", o.Left, o.Right)
}

func (o *Or) describe() string {
	return fmt.Sprintf("(%s or %s)", o.Left.describe(), o.Right.describe())
}

// Not negates a subexpression.
type Not struct {
	Operand Expr
}

func (n *Not) String() string {
	return fmt.Sprintf("NOT %s", n.Operand)
}

func (n *Not) describe() string {
	return fmt.Sprintf("not (%s)", n.Operand.describe())
}
