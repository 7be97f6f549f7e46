// Package task_tools implements the MCP tools for working with ClickUp
// tasks: listing with an optional task query expression, retrieving,
// creating, updating, closing and commenting. Write tools are only
// registered when the server runs with writes enabled.
package task_tools
