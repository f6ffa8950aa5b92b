// Package observability defines the logging and metrics interfaces used by
// the FortiADC client.
//
// The client never talks to a logging library directly. It accepts a Logger
// and a MetricsRecorder through its configuration and falls back to no-op
// implementations when none are provided, so observability costs nothing
// unless it is wanted.
//
// NewSlogLogger adapts the standard library's log/slog to the Logger
// interface for callers that do not want to write their own adapter:
//
//	logger := observability.NewSlogLogger(slog.Default())
//	client, err := fortiadc.New(fortiadc.Config{
//	    BaseURL:  baseURL,
//	    Username: user,
//	    Password: pass,
//	    Logger:   logger,
//	})
package observability
