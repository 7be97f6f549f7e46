package instrumentation

import (
	"strings"
	"testing"
)

func clearInstrumentationEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OTEL_SERVICE_NAME",
		"INSTRUMENTATION_ENABLED",
		"METRICS_EXPORTER",
		"TRACING_EXPORTER",
		"OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	clearInstrumentationEnv(t)

	config := DefaultConfig()

	if config.ServiceName != "cuptool" {
		t.Errorf("ServiceName = %q, want %q", config.ServiceName, "cuptool")
	}
	if !config.Enabled {
		t.Error("Enabled should default to true")
	}
	if config.MetricsExporter != ExporterPrometheus {
		t.Errorf("MetricsExporter = %q, want %q", config.MetricsExporter, ExporterPrometheus)
	}
	if config.TracingExporter != ExporterNone {
		t.Errorf("TracingExporter = %q, want %q", config.TracingExporter, ExporterNone)
	}
	if config.TraceSamplingRate != 0.1 {
		t.Errorf("TraceSamplingRate = %f, want 0.1", config.TraceSamplingRate)
	}
}

func TestDefaultConfig_FromEnv(t *testing.T) {
	clearInstrumentationEnv(t)
	t.Setenv("OTEL_SERVICE_NAME", "cuptool-staging")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	config := DefaultConfig()

	if config.ServiceName != "cuptool-staging" {
		t.Errorf("ServiceName = %q, want %q", config.ServiceName, "cuptool-staging")
	}
	if config.Enabled {
		t.Error("Enabled should follow INSTRUMENTATION_ENABLED=false")
	}
	if config.MetricsExporter != ExporterStdout {
		t.Errorf("MetricsExporter = %q, want %q", config.MetricsExporter, ExporterStdout)
	}
	if config.TracingExporter != ExporterStdout {
		t.Errorf("TracingExporter = %q, want %q", config.TracingExporter, ExporterStdout)
	}
	if config.TraceSamplingRate != 0.5 {
		t.Errorf("TraceSamplingRate = %f, want 0.5", config.TraceSamplingRate)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "prometheus metrics, no tracing",
			config: Config{
				ServiceName:     "cuptool",
				Enabled:         true,
				MetricsExporter: ExporterPrometheus,
				TracingExporter: ExporterNone,
			},
		},
		{
			name: "otlp tracing with endpoint",
			config: Config{
				ServiceName:     "cuptool",
				Enabled:         true,
				MetricsExporter: ExporterPrometheus,
				TracingExporter: ExporterOTLP,
				OTLPEndpoint:    "localhost:4318",
			},
		},
		{
			name:    "negative sampling rate",
			config:  Config{TraceSamplingRate: -0.5},
			wantErr: "sampling rate",
		},
		{
			name:    "sampling rate above 1",
			config:  Config{TraceSamplingRate: 1.5},
			wantErr: "sampling rate",
		},
		{
			name:    "unknown metrics exporter",
			config:  Config{MetricsExporter: "statsd"},
			wantErr: "invalid metrics exporter",
		},
		{
			name:    "unknown tracing exporter",
			config:  Config{TracingExporter: "jaeger"},
			wantErr: "invalid tracing exporter",
		},
		{
			name:    "otlp tracing without endpoint",
			config:  Config{TracingExporter: ExporterOTLP},
			wantErr: "OTLP endpoint is required",
		},
		{
			name:    "otlp metrics without endpoint",
			config:  Config{MetricsExporter: ExporterOTLP},
			wantErr: "OTLP endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("CUPTOOL_TEST_VAR", "from-env")

	if v := getEnvOrDefault("CUPTOOL_TEST_VAR", "fallback"); v != "from-env" {
		t.Errorf("getEnvOrDefault() = %q, want %q", v, "from-env")
	}
	if v := getEnvOrDefault("CUPTOOL_TEST_UNSET", "fallback"); v != "fallback" {
		t.Errorf("getEnvOrDefault() = %q, want %q", v, "fallback")
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	t.Setenv("CUPTOOL_TEST_TRUE", "true")
	t.Setenv("CUPTOOL_TEST_FALSE", "false")
	t.Setenv("CUPTOOL_TEST_JUNK", "not_a_bool")

	if !getEnvBoolOrDefault("CUPTOOL_TEST_TRUE", false) {
		t.Error("true value should parse as true")
	}
	if getEnvBoolOrDefault("CUPTOOL_TEST_FALSE", true) {
		t.Error("false value should parse as false")
	}
	if !getEnvBoolOrDefault("CUPTOOL_TEST_JUNK", true) {
		t.Error("unparseable value should fall back to the default")
	}
	if !getEnvBoolOrDefault("CUPTOOL_TEST_UNSET", true) {
		t.Error("unset variable should fall back to the default")
	}
}

func TestGetEnvFloatOrDefault(t *testing.T) {
	t.Setenv("CUPTOOL_TEST_FLOAT", "0.75")
	t.Setenv("CUPTOOL_TEST_JUNK", "not_a_float")

	if v := getEnvFloatOrDefault("CUPTOOL_TEST_FLOAT", 0.5); v != 0.75 {
		t.Errorf("getEnvFloatOrDefault() = %f, want 0.75", v)
	}
	if v := getEnvFloatOrDefault("CUPTOOL_TEST_JUNK", 0.5); v != 0.5 {
		t.Errorf("getEnvFloatOrDefault() = %f, want the 0.5 default", v)
	}
	if v := getEnvFloatOrDefault("CUPTOOL_TEST_UNSET", 0.5); v != 0.5 {
		t.Errorf("getEnvFloatOrDefault() = %f, want the 0.5 default", v)
	}
}
