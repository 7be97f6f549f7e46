package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuptool/cuptool/internal/auth"
	"github.com/cuptool/cuptool/internal/clickup"
	"github.com/cuptool/cuptool/internal/instrumentation"
)

// ServerContext holds the shared state of the MCP server: the ClickUp
// client, the default workspace, and the observability hooks handed to
// tool handlers.
type ServerContext struct {
	ctx              context.Context
	cancel           context.CancelFunc
	client           *clickup.Client
	clientFromToken  bool
	defaultWorkspace string
	metrics          *instrumentation.Metrics
	auditLogger      *instrumentation.AuditLogger
	mu               sync.RWMutex
	shutdown         bool
}

// NewServerContext creates a new server context. The ClickUp client is
// created lazily on first use so the server can start before a token
// is configured, and so a recorder set via SetMetrics during startup
// is attached to the client.
func NewServerContext(ctx context.Context, defaultWorkspace string) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:              shutdownCtx,
		cancel:           cancel,
		defaultWorkspace: defaultWorkspace,
	}, nil
}

func newClientFromStoredToken(sc *ServerContext) (*clickup.Client, error) {
	token, err := auth.LoadToken()
	if err != nil {
		return nil, err
	}

	opts := []clickup.Option{}
	if sc.metrics != nil {
		opts = append(opts, clickup.WithMetrics(sc.metrics))
	}
	return clickup.NewClient(token, opts...)
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the ClickUp client, creating it from the stored token
// on first use. Returns an error when no credential is available.
func (sc *ServerContext) Client() (*clickup.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.client != nil {
		return sc.client, nil
	}

	client, err := newClientFromStoredToken(sc)
	if err != nil {
		return nil, fmt.Errorf("no ClickUp client available: %w", err)
	}

	sc.client = client
	sc.clientFromToken = true
	return client, nil
}

// SetClient replaces the ClickUp client. Used by tests and by the auth
// flow after a new token is obtained.
func (sc *ServerContext) SetClient(client *clickup.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
	sc.clientFromToken = false
}

// DefaultWorkspace returns the workspace used when a tool call does
// not name one.
func (sc *ServerContext) DefaultWorkspace() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.defaultWorkspace
}

// SetDefaultWorkspace sets the fallback workspace ID.
func (sc *ServerContext) SetDefaultWorkspace(workspace string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.defaultWorkspace = workspace
}

// SetMetrics sets the metrics recorder for tool instrumentation. A
// client already built from the stored token is dropped so the next
// Client call rebuilds it with the recorder attached. Clients injected
// via SetClient are left alone.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
	if sc.clientFromToken {
		sc.client = nil
		sc.clientFromToken = false
	}
}

// Metrics returns the metrics recorder, or nil if instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool invocation logging.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil if audit logging is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
