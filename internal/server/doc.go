// Package server provides the runtime plumbing for the cuptool MCP
// server: shared state, HTTP transport, and operational endpoints.
//
// ServerContext holds the ClickUp client, the default workspace, and
// the observability hooks (metrics recorder, audit logger) that tool
// handlers use. The client is created lazily from the stored token so
// the server can start before credentials are configured; the
// readiness probe reports this as a failing check until a token is
// available.
//
// HTTPServer mounts the MCP streamable HTTP transport at /mcp next to
// Kubernetes-style health endpoints (/healthz, /readyz,
// /healthz/detailed). The HTTP surface carries no credentials of its
// own; authentication against ClickUp uses the operator's server-side
// token, so the listener should sit behind a trusted ingress.
//
// MetricsServer serves Prometheus metrics on a dedicated port,
// keeping operational metrics off the main application listener.
package server
