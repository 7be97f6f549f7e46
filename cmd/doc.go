// Package cmd implements the command-line interface for cuptool.
//
// This package provides the following commands:
//   - tasks: List, inspect, create, update, close and comment on tasks
//   - lists, spaces, workspaces: Browse the ClickUp hierarchy
//   - query: Validate a task query expression and print its parse tree
//   - auth: Save a personal API token or run the OAuth2 code exchange
//   - serve: Start the MCP server to provide tools for AI assistants
//   - generate-docs: Generate markdown documentation for all MCP tools
//   - version: Display version information
package cmd
