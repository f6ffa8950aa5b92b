// Package httpclient builds the HTTP session used by the FortiADC client,
// assembling an http.Client from a stack of RoundTripper middleware.
package httpclient

import (
	"net/http"
	"time"
)

// Middleware wraps an http.RoundTripper to add behavior. The first
// middleware in a chain becomes the outermost layer.
type Middleware func(http.RoundTripper) http.RoundTripper

// Client is an HTTP client with a middleware-composed transport.
type Client struct {
	base       *http.Client
	middleware []Middleware
}

// New assembles a client from the given options and builds the middleware
// chain. Without options it is a plain client with a 30 second timeout.
func New(opts ...Option) *Client {
	c := &Client{
		base: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.middleware) > 0 {
		transport := c.base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}

		// Wrap in reverse so the first middleware ends up outermost.
		for i := len(c.middleware) - 1; i >= 0; i-- {
			transport = c.middleware[i](transport)
		}

		c.base.Transport = transport
	}

	return c
}

// Do executes a request through the middleware chain.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	//nolint:wrapcheck // Transport errors pass through for the caller to classify.
	return c.base.Do(req)
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.base.CloseIdleConnections()
}

// HTTPClient exposes the underlying http.Client for code that requires the
// concrete type.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}
