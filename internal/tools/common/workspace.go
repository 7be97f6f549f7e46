package common

// GetWorkspaceFromArgs extracts the workspace ID from request arguments,
// falling back to the given default when the caller did not name one.
func GetWorkspaceFromArgs(args map[string]interface{}, fallback string) string {
	if workspace, ok := args["workspace_id"].(string); ok && workspace != "" {
		return workspace
	}
	return fallback
}

// GetQueryFromArgs extracts the task query expression from request
// arguments, or "" when none was provided.
func GetQueryFromArgs(args map[string]interface{}) string {
	if query, ok := args["query"].(string); ok {
		return query
	}
	return ""
}
