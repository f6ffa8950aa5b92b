package middleware

import (
	"net/http"
	"time"

	"github.com/lexfrei/go-fortiadc/observability"
)

// Observability returns a middleware that logs every request and records
// request metrics. HTTP 404 logs at warning level: lookup-style calls miss
// legitimately and the caller handles absence, so it must stay
// distinguishable from real failures in the logs without raising.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "path", Value: req.URL.Path},
		observability.Field{Key: "query", Value: req.URL.RawQuery},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "path", Value: req.URL.Path},
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "ConnectionError")

		//nolint:wrapcheck // Logged here, classified by the client layer.
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "path", Value: req.URL.Path},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		t.logger.Warn("http request returned not found", fields...)
	case resp.StatusCode >= http.StatusBadRequest:
		t.logger.Warn("http request completed with error status", fields...)
	default:
		t.logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, req.URL.Path, resp.StatusCode, duration)

	return resp, nil
}
