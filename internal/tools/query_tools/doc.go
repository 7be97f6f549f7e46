// Package query_tools implements the MCP tools for the task query
// language: validating expressions and explaining how they parse.
package query_tools
