package observability_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/lexfrei/go-fortiadc/observability"
)

func TestNoopLogger(t *testing.T) {
	t.Parallel()

	logger := observability.NoopLogger()

	// Must not panic, fields included.
	logger.Debug("debug", observability.Field{Key: "k", Value: 1})
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	if logger.With(observability.Field{Key: "k", Value: 1}) == nil {
		t.Error("With() = nil, want a logger")
	}
}

func TestNoopMetricsRecorder(t *testing.T) {
	t.Parallel()

	metrics := observability.NoopMetricsRecorder()

	metrics.RecordHTTPRequest("GET", "/api/x", 200, 0)
	metrics.RecordAuthRefresh("/api/x")
	metrics.RecordError("authenticate", "ConnectionError")
}

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := observability.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	logger.Info("authentication successful", observability.Field{Key: "base_url", Value: "https://10.0.0.5"})

	out := buf.String()
	if !strings.Contains(out, "authentication successful") {
		t.Errorf("output = %q, want the message", out)
	}
	if !strings.Contains(out, "base_url=https://10.0.0.5") {
		t.Errorf("output = %q, want the field", out)
	}
}

func TestSlogLoggerWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := observability.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	scoped := logger.With(observability.Field{Key: "component", Value: "client"})
	scoped.Warn("resource not found")

	out := buf.String()
	if !strings.Contains(out, "component=client") {
		t.Errorf("output = %q, want the pre-populated field", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("output = %q, want WARN level", out)
	}
}

func TestSlogLoggerNilFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if observability.NewSlogLogger(nil) == nil {
		t.Error("NewSlogLogger(nil) = nil, want the default-backed logger")
	}
}
