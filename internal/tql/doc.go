// Package tql implements the Task Query Language, a small boolean
// expression language for filtering task-like records client-side.
//
// A query is a boolean combination of field comparisons:
//
//	status == 'in progress' AND (priority >= 3 OR 'urgent' in tags)
//
// Queries are tokenized and parsed once into an immutable expression
// tree which can then be evaluated against any number of records, by
// any number of goroutines. Evaluation is total: an absent field or a
// type mismatch is a non-match, never an error.
//
// # Semantics worth knowing
//
//   - String comparisons are case-insensitive by default. Strict
//     matching can be enabled per Evaluator, not per query.
//   - When both sides of ==, !=, >, >=, <, <= are representable as
//     numbers (including numeric strings), they compare numerically.
//     A mixed numeric/non-numeric pair falls back to string comparison.
//   - `in` / `not in` is deliberately bidirectional: `'bug' in tags`
//     and `tags in 'bug'` are equivalent when tags is a list
//     containing "bug". This mirrors the behavior users rely on; do
//     not make it directional.
package tql
