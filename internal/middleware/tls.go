package middleware

import (
	"crypto/tls"
	"net/http"
)

// TLSConfig returns a middleware that applies a TLS configuration to the
// transport. FortiADC appliances commonly run with self-signed certificates,
// so the usual configuration is InsecureSkipVerify.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		transport, ok := next.(*http.Transport)
		if ok {
			transport = transport.Clone()
		} else {
			defaultTransport, ok := http.DefaultTransport.(*http.Transport)
			if !ok {
				// Cannot reach a configurable transport; leave the chain as-is.
				return next
			}
			transport = defaultTransport.Clone()
		}

		transport.TLSClientConfig = config

		return transport
	}
}

// InsecureSkipVerify returns a TLS config that accepts any server
// certificate. Intended for appliances with factory self-signed certs;
// the client logs a warning once when this is enabled.
func InsecureSkipVerify() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // Opt-in toggle for self-signed appliance certs.
	}
}
