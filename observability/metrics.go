package observability

import "time"

// MetricsRecorder records client metrics. Implementations can bridge to any
// metrics backend (Prometheus, StatsD).
type MetricsRecorder interface {
	// RecordHTTPRequest records a completed HTTP request.
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)

	// RecordAuthRefresh records a token refresh triggered by a 401.
	RecordAuthRefresh(path string)

	// RecordError records an error occurrence by operation and type.
	RecordError(operation, errorType string)
}

type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns a MetricsRecorder that does nothing. It is the
// default when no recorder is configured.
//
//nolint:ireturn // Factory returns the interface for dependency injection.
func NoopMetricsRecorder() MetricsRecorder {
	return &noopMetricsRecorder{}
}

func (m *noopMetricsRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (m *noopMetricsRecorder) RecordAuthRefresh(string)                             {}
func (m *noopMetricsRecorder) RecordError(string, string)                           {}
