package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, ctx context.Context, detailed bool) *Provider {
	t.Helper()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
		DetailedLabels:  detailed,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "POST", "/mcp", 500, 50*time.Millisecond)
}

func TestMetrics_RecordClickUpAPIOperation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordClickUpAPIOperation(ctx, ResourceTasks, OperationList, StatusSuccess, 200*time.Millisecond)
	metrics.RecordClickUpAPIOperation(ctx, ResourceLists, OperationCreate, StatusError, 500*time.Millisecond)
	metrics.RecordClickUpAPIOperation(ctx, ResourceSpaces, OperationGet, StatusSuccess, 100*time.Millisecond)
}

func TestMetrics_RecordAPIRetry(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordAPIRetry(ctx, "rate_limited")
	metrics.RecordAPIRetry(ctx, "server_error")
}

func TestMetrics_RecordRateLimitWait(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordRateLimitWait(ctx, 0)
	metrics.RecordRateLimitWait(ctx, 350*time.Millisecond)
}

func TestMetrics_RecordQueryEvaluation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordQueryEvaluation(ctx, "status == 'open'", StatusSuccess, time.Millisecond)
	metrics.RecordQueryEvaluation(ctx, "status ==", StatusError, time.Millisecond)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, "clickup_list_tasks", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "clickup_create_task", StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordToolInvocationWithWorkspace(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic - workspace should be ignored without detailed labels
	metrics.RecordToolInvocationWithWorkspace(ctx, "clickup_list_tasks", StatusSuccess, "9001", 100*time.Millisecond)
}

func TestMetrics_RecordToolInvocationWithWorkspace_DetailedLabels(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, true).Metrics()

	// Should not panic - workspace should be included
	metrics.RecordToolInvocationWithWorkspace(ctx, "clickup_list_tasks", StatusSuccess, "9001", 100*time.Millisecond)
}

func TestMetrics_ActiveSessions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx, false).Metrics()

	// Should not panic
	metrics.IncrementActiveSessions(ctx)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil even when disabled")
	}

	// All these should not panic even with nil underlying metrics
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, 100*time.Millisecond)
	metrics.RecordClickUpAPIOperation(ctx, ResourceTasks, OperationList, StatusSuccess, 200*time.Millisecond)
	metrics.RecordAPIRetry(ctx, "rate_limited")
	metrics.RecordRateLimitWait(ctx, time.Millisecond)
	metrics.RecordQueryEvaluation(ctx, "status == 'open'", StatusSuccess, time.Millisecond)
	metrics.RecordToolInvocation(ctx, "test_tool", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocationWithWorkspace(ctx, "test_tool", StatusSuccess, "9001", 100*time.Millisecond)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}
