package tql

// Filter parses the query once and returns the records that match, in
// their original order. A malformed query fails with a SyntaxError
// before any record is evaluated. Input records are never mutated.
func Filter(records []Record, query string) ([]Record, error) {
	expr, err := Parse(query)
	if err != nil {
		return nil, err
	}

	eval := &Evaluator{}
	matched := make([]Record, 0, len(records))
	for _, rec := range records {
		if eval.Evaluate(expr, rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Explain parses the query and renders the expression tree as a
// human-readable description. Useful for diagnosing why a query does
// or does not match; the rendering is equivalent in meaning to the
// query, not a byte-for-byte round trip.
func Explain(query string) (string, error) {
	expr, err := Parse(query)
	if err != nil {
		return "", err
	}
	return "matches records where " + expr.describe(), nil
}
