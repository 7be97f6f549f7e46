package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrMethod      = "method"
	attrPath        = "path"
	attrStatus      = "status"
	attrOperation   = "operation"
	attrResource    = "resource"
	attrResult      = "result"
	attrTool        = "tool"
	attrWorkspace   = "workspace"
	attrQueryLength = "query_length"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// ClickUp API metrics
	clickupAPIOperationsTotal   metric.Int64Counter
	clickupAPIOperationDuration metric.Float64Histogram
	clickupAPIRetriesTotal      metric.Int64Counter
	clickupRateLimitWait        metric.Float64Histogram

	// Query engine metrics
	queryEvaluationsTotal   metric.Int64Counter
	queryEvaluationDuration metric.Float64Histogram

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Configuration
	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of active user sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_sessions gauge: %w", err)
	}

	// ClickUp API Metrics
	m.clickupAPIOperationsTotal, err = meter.Int64Counter(
		"clickup_api_operations_total",
		metric.WithDescription("Total number of ClickUp API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create clickup_api_operations_total counter: %w", err)
	}

	m.clickupAPIOperationDuration, err = meter.Float64Histogram(
		"clickup_api_operation_duration_seconds",
		metric.WithDescription("ClickUp API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create clickup_api_operation_duration_seconds histogram: %w", err)
	}

	m.clickupAPIRetriesTotal, err = meter.Int64Counter(
		"clickup_api_retries_total",
		metric.WithDescription("Total number of retried ClickUp API requests"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create clickup_api_retries_total counter: %w", err)
	}

	m.clickupRateLimitWait, err = meter.Float64Histogram(
		"clickup_rate_limit_wait_seconds",
		metric.WithDescription("Time spent waiting for the client-side rate limiter"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 15.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create clickup_rate_limit_wait_seconds histogram: %w", err)
	}

	// Query Engine Metrics
	m.queryEvaluationsTotal, err = meter.Int64Counter(
		"query_evaluations_total",
		metric.WithDescription("Total number of task filter query evaluations"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create query_evaluations_total counter: %w", err)
	}

	m.queryEvaluationDuration, err = meter.Float64Histogram(
		"query_evaluation_duration_seconds",
		metric.WithDescription("Task filter query evaluation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.001, 0.01, 0.1, 0.5, 1.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create query_evaluation_duration_seconds histogram: %w", err)
	}

	// MCP Tool Metrics
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordClickUpAPIOperation records a ClickUp API operation with resource,
// operation, status, and duration.
//
// Parameters:
//   - resource: ClickUp resource kind (tasks, lists, spaces, workspaces, comments)
//   - operation: Operation type (list, get, create, update, close, delete, comment)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordClickUpAPIOperation(ctx context.Context, resource, operation, status string, duration time.Duration) {
	if m.clickupAPIOperationsTotal == nil || m.clickupAPIOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResource, resource),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.clickupAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.clickupAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordAPIRetry records a retried ClickUp API request. The reason should
// be a low-cardinality cause such as "rate_limited" or "server_error".
func (m *Metrics) RecordAPIRetry(ctx context.Context, reason string) {
	if m.clickupAPIRetriesTotal == nil {
		return // Instrumentation not initialized
	}

	m.clickupAPIRetriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, reason),
	))
}

// RecordRateLimitWait records time spent blocked on the client-side rate limiter.
func (m *Metrics) RecordRateLimitWait(ctx context.Context, wait time.Duration) {
	if m.clickupRateLimitWait == nil {
		return // Instrumentation not initialized
	}

	m.clickupRateLimitWait.Record(ctx, wait.Seconds())
}

// RecordQueryEvaluation records a filter query evaluation. The query text
// never reaches the metric; only a coarse length bucket is used as a label.
func (m *Metrics) RecordQueryEvaluation(ctx context.Context, query, status string, duration time.Duration) {
	if m.queryEvaluationsTotal == nil || m.queryEvaluationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
		attribute.String(attrQueryLength, QueryLengthBucket(query)),
	}

	m.queryEvaluationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.queryEvaluationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
//
// Parameters:
//   - toolName: Name of the MCP tool (e.g., "clickup_list_tasks", "clickup_create_task")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the tool execution
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the active sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, -1)
}

// RecordToolInvocationWithWorkspace records an MCP tool invocation with workspace info.
// This is the detailed version that includes the workspace ID when detailedLabels is enabled.
//
// Parameters:
//   - toolName: Name of the MCP tool
//   - status: Result status ("success" or "error")
//   - workspace: Workspace ID (only included if detailedLabels is true)
//   - duration: Time taken for the tool execution
func (m *Metrics) RecordToolInvocationWithWorkspace(ctx context.Context, toolName, status, workspace string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels && workspace != "" {
		attrs = append(attrs, attribute.String(attrWorkspace, workspace))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
