// Package testutil provides a mock FortiADC appliance for tests: it speaks
// the login protocol, enforces bearer auth, and answers with the vendor
// response envelope.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Default credentials and token used when the config leaves them empty.
const (
	DefaultUsername = "admin"
	DefaultPassword = "secret"
	DefaultToken    = "test-token-123"
)

// ApplianceConfig configures the mock appliance.
type ApplianceConfig struct {
	// Username and Password are the accepted login credentials.
	Username string
	Password string

	// Token is the bearer token issued on successful login.
	Token string

	// RejectLogin makes every login attempt answer 401 regardless of
	// credentials.
	RejectLogin bool

	// RequireAuth makes non-login endpoints answer 401 unless the request
	// carries the issued bearer token.
	RequireAuth bool

	// Handlers maps request paths to handlers for non-login endpoints.
	// Paths without a handler answer 404.
	Handlers map[string]http.HandlerFunc
}

// Appliance is a running mock appliance.
type Appliance struct {
	*httptest.Server

	cfg ApplianceConfig

	mu         sync.Mutex
	loginCalls int
}

// NewAppliance starts a mock appliance. The server is closed automatically
// when the test ends.
func NewAppliance(t *testing.T, cfg ApplianceConfig) *Appliance {
	t.Helper()

	if cfg.Username == "" {
		cfg.Username = DefaultUsername
	}
	if cfg.Password == "" {
		cfg.Password = DefaultPassword
	}
	if cfg.Token == "" {
		cfg.Token = DefaultToken
	}

	a := &Appliance{cfg: cfg}
	a.Server = httptest.NewServer(http.HandlerFunc(a.route))
	t.Cleanup(a.Server.Close)

	return a
}

// LoginCalls reports how many login attempts the appliance has seen.
func (a *Appliance) LoginCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loginCalls
}

func (a *Appliance) route(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/user/login" {
		a.handleLogin(w, r)
		return
	}

	if a.cfg.RequireAuth && r.Header.Get("Authorization") != "Bearer "+a.cfg.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	handler, ok := a.cfg.Handlers[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	handler(w, r)
}

func (a *Appliance) handleLogin(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.loginCalls++
	a.mu.Unlock()

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if a.cfg.RejectLogin || creds.Username != a.cfg.Username || creds.Password != a.cfg.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"token": a.cfg.Token}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// Envelope wraps a payload value in the vendor response envelope.
func Envelope(t *testing.T, payload any) []byte {
	t.Helper()

	raw, err := json.Marshal(map[string]any{"payload": payload})
	require.NoError(t, err, "marshal envelope payload")

	return raw
}

// WriteEnvelope writes a 200 response carrying the payload in the vendor
// envelope.
func WriteEnvelope(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write(Envelope(t, payload))
	require.NoError(t, err, "write envelope response")
}
