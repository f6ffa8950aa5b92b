package httpclient

import (
	"net/http"
	"time"
)

// Option configures the client during New.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Nil is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.base = client
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.base.Timeout = timeout
	}
}

// WithMiddleware appends middleware to the chain. Middleware listed first
// becomes the outermost layer:
//
//	WithMiddleware(A, B, C) builds A(B(C(transport)))
//
// so outer concerns (logging) read before inner ones (auth headers, TLS).
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}
