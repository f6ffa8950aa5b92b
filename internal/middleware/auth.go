// Package middleware provides the HTTP middleware used by the FortiADC
// client: default header injection, bearer-token auth, TLS configuration,
// and request observability.
package middleware

import (
	"maps"
	"net/http"
)

// TokenSource supplies the current bearer token. It is consulted on every
// request so a token refreshed mid-session takes effect immediately.
type TokenSource func() string

// BearerAuth returns a middleware that sets "Authorization: Bearer <token>"
// on every request. While the source returns an empty string (before the
// first login) no header is added.
func BearerAuth(source TokenSource) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &bearerTransport{next: next, source: source}
	}
}

type bearerTransport struct {
	next   http.RoundTripper
	source TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.source()
	if token == "" {
		//nolint:wrapcheck // Middleware passes through errors from the chain.
		return t.next.RoundTrip(req)
	}

	req = cloneRequest(req)
	req.Header.Set("Authorization", "Bearer "+token)

	//nolint:wrapcheck // Middleware passes through errors from the chain.
	return t.next.RoundTrip(req)
}

// Headers returns a middleware that applies default headers to every
// request. Headers already present on a request are not overridden.
func Headers(defaults http.Header) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &headersTransport{next: next, defaults: defaults}
	}
}

type headersTransport struct {
	next     http.RoundTripper
	defaults http.Header
}

func (t *headersTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)
	for name, values := range t.defaults {
		if req.Header.Get(name) != "" {
			continue
		}
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	//nolint:wrapcheck // Middleware passes through errors from the chain.
	return t.next.RoundTrip(req)
}

// cloneRequest makes a shallow copy of the request with its own header map,
// so middleware never mutates the caller's request.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = make(http.Header, len(req.Header))
	maps.Copy(r.Header, req.Header)
	return r
}
