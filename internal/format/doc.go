// Package format renders ClickUp entities as compact, human-readable
// text instead of raw JSON. The output is deliberately token-efficient
// so that AI assistants reading tool results spend as few tokens as
// possible per task.
//
// Two shapes are provided: flat one-line-per-task listings and tree
// views built from Unicode box-drawing characters for hierarchies
// (space -> folder -> list, task -> subtask).
package format
