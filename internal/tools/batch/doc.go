// Package batch supports tools that accept one task ID or many, such
// as clickup_get_tasks, clickup_close_tasks and clickup_delete_tasks.
//
// It normalizes the string-or-array argument shape, runs an operation
// per ID without aborting on the first failure, and renders a summary
// with per-task outcomes so partial failures stay visible.
package batch
