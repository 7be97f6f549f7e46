// Package space_tools implements the MCP tools for browsing ClickUp
// workspaces and spaces, including a tree rendering of a space's
// folders and lists.
package space_tools
