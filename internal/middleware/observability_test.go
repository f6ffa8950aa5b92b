package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lexfrei/go-fortiadc/internal/middleware"
	"github.com/lexfrei/go-fortiadc/observability"
)

type captureLogger struct {
	mu   sync.Mutex
	logs map[string][]string
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{logs: map[string][]string{}}
}

func (l *captureLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs[level] = append(l.logs[level], msg)
}

func (l *captureLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.logs[level])
}

func (l *captureLogger) Debug(msg string, _ ...observability.Field) { l.add("debug", msg) }
func (l *captureLogger) Info(msg string, _ ...observability.Field)  { l.add("info", msg) }
func (l *captureLogger) Warn(msg string, _ ...observability.Field)  { l.add("warn", msg) }
func (l *captureLogger) Error(msg string, _ ...observability.Field) { l.add("error", msg) }

func (l *captureLogger) With(...observability.Field) observability.Logger { return l }

type captureMetrics struct {
	mu       sync.Mutex
	requests int
	statuses []int
	errors   int
}

func (m *captureMetrics) RecordHTTPRequest(_, _ string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	m.statuses = append(m.statuses, status)
}

func (m *captureMetrics) RecordAuthRefresh(string) {}

func (m *captureMetrics) RecordError(string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors++
}

func TestObservabilityLogsAndRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := newCaptureLogger()
	metrics := &captureMetrics{}
	transport := middleware.Observability(logger, metrics)(http.DefaultTransport)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	defer resp.Body.Close()

	if logger.count("debug") != 2 {
		t.Errorf("debug logs = %d, want 2 (start + completion)", logger.count("debug"))
	}

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if metrics.requests != 1 {
		t.Errorf("recorded requests = %d, want 1", metrics.requests)
	}
	if len(metrics.statuses) != 1 || metrics.statuses[0] != http.StatusOK {
		t.Errorf("recorded statuses = %v, want [200]", metrics.statuses)
	}
}

func TestObservabilityWarnsOn404(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	logger := newCaptureLogger()
	transport := middleware.Observability(logger, nil)(http.DefaultTransport)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	defer resp.Body.Close()

	if logger.count("warn") != 1 {
		t.Errorf("warn logs = %d, want 1 for a 404", logger.count("warn"))
	}
	if logger.count("error") != 0 {
		t.Errorf("error logs = %d, want 0 (404 is not an error)", logger.count("error"))
	}
}

func TestObservabilityLogsConnectionError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	deadURL := server.URL
	server.Close()

	logger := newCaptureLogger()
	metrics := &captureMetrics{}
	transport := middleware.Observability(logger, metrics)(http.DefaultTransport)

	req, _ := http.NewRequest(http.MethodGet, deadURL, nil)
	if _, err := transport.RoundTrip(req); err == nil {
		t.Fatal("RoundTrip() error = nil, want connection error")
	}

	if logger.count("error") != 1 {
		t.Errorf("error logs = %d, want 1", logger.count("error"))
	}

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if metrics.errors != 1 {
		t.Errorf("recorded errors = %d, want 1", metrics.errors)
	}
}

func TestObservabilityNilCollaboratorsDefaultToNoop(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := middleware.Observability(nil, nil)(http.DefaultTransport)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	defer resp.Body.Close()
}
