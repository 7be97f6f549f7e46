package instrumentation

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Never put raw filter query strings or task IDs on metric labels.

// QueryLengthBucket reduces a filter query string to a coarse size label.
// The query text itself can contain customer data and is unbounded, so
// metrics only ever see the bucket.
//
// Example:
//
//	QueryLengthBucket("")                        // "empty"
//	QueryLengthBucket("status == 'open'")        // "short"
//	QueryLengthBucket(strings.Repeat("x", 200))  // "long"
func QueryLengthBucket(query string) string {
	switch n := len(query); {
	case n == 0:
		return "empty"
	case n <= 64:
		return "short"
	case n <= 256:
		return "medium"
	default:
		return "long"
	}
}

// Common operation types for ClickUp API metrics.
// Status and Resource constants are defined in config.go.
const (
	OperationList    = "list"
	OperationGet     = "get"
	OperationCreate  = "create"
	OperationUpdate  = "update"
	OperationDelete  = "delete"
	OperationClose   = "close"
	OperationComment = "comment"
	OperationFilter  = "filter"
)
