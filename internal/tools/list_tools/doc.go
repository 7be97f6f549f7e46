// Package list_tools implements the MCP tools for browsing ClickUp
// lists and folders.
package list_tools
