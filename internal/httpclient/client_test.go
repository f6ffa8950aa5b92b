package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lexfrei/go-fortiadc/internal/httpclient"
)

// tagTransport appends its tag to a request header so tests can observe
// middleware ordering.
func tagTransport(tag string) httpclient.Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.Header.Add("X-Chain", tag)
			return next.RoundTrip(req)
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var chain []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chain = r.Header.Values("X-Chain")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New(
		httpclient.WithMiddleware(tagTransport("outer"), tagTransport("inner")),
	)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	if len(chain) != 2 || chain[0] != "outer" || chain[1] != "inner" {
		t.Errorf("chain = %v, want [outer inner]", chain)
	}
}

func TestNoMiddleware(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	client := httpclient.New(httpclient.WithTimeout(5 * time.Second))

	if got := client.HTTPClient().Timeout; got != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", got)
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{Timeout: time.Second}
	client := httpclient.New(httpclient.WithHTTPClient(custom))

	if client.HTTPClient() != custom {
		t.Error("HTTPClient() did not return the injected client")
	}

	// Nil override is ignored rather than clobbering the default.
	client = httpclient.New(httpclient.WithHTTPClient(nil))
	if client.HTTPClient() == nil {
		t.Error("HTTPClient() = nil after nil override")
	}
}
