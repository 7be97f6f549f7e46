// Package common provides shared utilities for MCP tool implementations.
// It contains the instrumentation wrapper and argument helpers used
// across all tool packages to keep behavior consistent.
package common
