// Package logging provides structured logging utilities for cuptool.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Token sanitization for safe credential logging
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "tasks.list")
//	logger.Info("listing tasks",
//	    logging.Workspace(workspaceID),
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("using credential",
//	    "token", logging.SanitizeToken(token))
//
// # Security Considerations
//
// API tokens are never logged directly; SanitizeToken reduces them to a
// length indicator.
package logging
