package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Compile-time check that the adapter satisfies Logger.
var _ Logger = (*SlogAdapter)(nil)

func newCaptureAdapter() (*SlogAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return NewSlogAdapter(logger), &buf
}

func TestNewSlogAdapter_NilFallsBackToDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil {
		t.Fatal("NewSlogAdapter returned nil")
	}
	if adapter.Logger() == nil {
		t.Error("nil input should fall back to slog.Default()")
	}
}

func TestSlogAdapter_Levels(t *testing.T) {
	adapter, buf := newCaptureAdapter()

	adapter.Debug("fetching tasks", "list", "901203")
	adapter.Info("task closed", "task", "86c2tkwjq")
	adapter.Warn("rate limited", "retry_after", "12")
	adapter.Error("request failed", "status", "502")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "fetching tasks", "list=901203",
		"level=INFO", "task closed", "task=86c2tkwjq",
		"level=WARN", "rate limited", "retry_after=12",
		"level=ERROR", "request failed", "status=502",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapter_Logger(t *testing.T) {
	logger := slog.Default()
	adapter := NewSlogAdapter(logger)
	if adapter.Logger() != logger {
		t.Error("Logger() should return the wrapped logger")
	}
}

func TestDefaultLogger(t *testing.T) {
	adapter := DefaultLogger()
	if adapter == nil {
		t.Fatal("DefaultLogger returned nil")
	}
	if adapter.Logger() == nil {
		t.Error("DefaultLogger() should wrap slog.Default()")
	}
}
