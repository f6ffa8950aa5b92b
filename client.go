package fortiadc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-fortiadc/internal/httpclient"
	"github.com/lexfrei/go-fortiadc/internal/middleware"
	"github.com/lexfrei/go-fortiadc/observability"
)

const (
	// loginPath is the appliance's token-issuing endpoint.
	loginPath = "/api/user/login"

	// DefaultTimeout is the per-request timeout when none is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxAuthRetries is how many times a 401 response triggers a
	// token refresh and re-issue before the 401 is handed to the caller.
	DefaultMaxAuthRetries = 1
)

// Config holds configuration for the FortiADC API client.
type Config struct {
	// BaseURL is the appliance's management address, e.g. "https://10.0.0.5".
	BaseURL string

	// Username and Password are the management credentials used for login.
	Username string
	Password string

	// InsecureSkipVerify disables TLS certificate verification. Required
	// for appliances running their factory self-signed certificate.
	InsecureSkipVerify bool

	// Timeout is the per-request timeout (defaults to DefaultTimeout).
	Timeout time.Duration

	// MaxAuthRetries bounds 401-triggered re-authentication attempts per
	// request (defaults to DefaultMaxAuthRetries).
	MaxAuthRetries int

	// Logger receives structured client logs (optional).
	Logger observability.Logger

	// Metrics receives request and error metrics (optional).
	Metrics observability.MetricsRecorder

	// HTTPClient overrides the underlying http.Client (optional).
	HTTPClient *http.Client
}

// Client is an authenticated FortiADC management API session.
//
// A Client owns exactly one HTTP session and one bearer token. It is meant
// for synchronous use; see the package documentation for the concurrency
// contract.
type Client struct {
	baseURL            string
	username           string
	password           string
	insecureSkipVerify bool
	timeout            time.Duration
	maxAuthRetries     int
	httpOverride       *http.Client

	logger  observability.Logger
	metrics observability.MetricsRecorder

	session *httpclient.Client

	mu    sync.RWMutex
	token string

	catalog errorCatalog
}

// New validates the configuration and constructs a Client. No I/O happens
// until Initialize.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("username and password are required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAuthRetries == 0 {
		cfg.MaxAuthRetries = DefaultMaxAuthRetries
	}
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	c := &Client{
		baseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		username:           cfg.Username,
		password:           cfg.Password,
		insecureSkipVerify: cfg.InsecureSkipVerify,
		timeout:            cfg.Timeout,
		maxAuthRetries:     cfg.MaxAuthRetries,
		httpOverride:       cfg.HTTPClient,
		logger: cfg.Logger.With(
			observability.Field{Key: "base_url", Value: strings.TrimRight(cfg.BaseURL, "/")},
		),
		metrics: cfg.Metrics,
	}

	c.logger.Info("initializing FortiADC API client")

	return c, nil
}

// Initialize opens the HTTP session and performs the first login. The
// session is live afterwards and must be released with Close.
func (c *Client) Initialize(ctx context.Context) error {
	if c.insecureSkipVerify {
		// Warn once at session setup rather than on every request.
		c.logger.Warn("TLS certificate verification disabled")
	}

	chain := []httpclient.Middleware{
		middleware.Observability(c.logger, c.metrics),
		middleware.Headers(defaultHeaders()),
		middleware.BearerAuth(c.bearerToken),
	}
	if c.insecureSkipVerify {
		// TLS middleware replaces the transport, so it goes innermost.
		chain = append(chain, middleware.TLSConfig(middleware.InsecureSkipVerify()))
	}

	opts := []httpclient.Option{
		httpclient.WithHTTPClient(c.httpOverride),
		httpclient.WithTimeout(c.timeout),
		httpclient.WithMiddleware(chain...),
	}

	c.session = httpclient.New(opts...)

	return c.Authenticate(ctx)
}

// Close releases the HTTP session. It is safe to call on a client that was
// never initialized.
func (c *Client) Close() error {
	if c.session == nil {
		return nil
	}

	c.session.Close()
	c.session = nil
	c.setToken("")
	c.logger.Info("session closed")

	return nil
}

// WithSession runs fn inside an initialized session, guaranteeing Close on
// every exit path including errors.
func (c *Client) WithSession(ctx context.Context, fn func(*Client) error) (err error) {
	if err := c.Initialize(ctx); err != nil {
		// The session may have opened before login failed; release it.
		return errors.CombineErrors(err, c.Close())
	}
	defer func() {
		err = errors.CombineErrors(err, c.Close())
	}()

	return fn(c)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Authenticate logs in with the configured credentials and installs the
// returned bearer token on the session. Rejected credentials surface as
// ErrAuthenticationFailed; transport failures and unexpected statuses are
// logged and returned, never swallowed.
func (c *Client) Authenticate(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, loginPath, nil, loginRequest{
		Username: c.username,
		Password: c.password,
	})
	if err != nil {
		c.metrics.RecordError("authenticate", "ConnectionError")
		c.logger.Error("cannot connect to appliance",
			observability.Field{Key: "error", Value: err.Error()},
		)
		return errors.Wrapf(err, "connect to %s", c.baseURL)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var login loginResponse
		if err := json.Unmarshal(resp.Body, &login); err != nil {
			c.logger.Error("cannot decode login response",
				observability.Field{Key: "error", Value: err.Error()},
			)
			return errors.Wrap(err, "decode login response")
		}
		if login.Token == "" {
			c.logger.Error("login response carried no token")
			return errors.New("login response carried no token")
		}

		c.setToken(login.Token)
		c.logger.Info("authentication successful")

		return nil

	case http.StatusUnauthorized:
		c.metrics.RecordError("authenticate", "AuthenticationFailed")
		c.logger.Error("authentication rejected, check username and password")

		return errors.Wrapf(ErrAuthenticationFailed, "login to %s", c.baseURL)

	default:
		c.logger.Error("unexpected login response",
			observability.Field{Key: "status", Value: resp.StatusCode},
		)
		return errors.Newf("unexpected status %d from login", resp.StatusCode)
	}
}

// Get issues a GET request. The response is returned raw, without envelope
// interpretation; see HandleResponse.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.send(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request. Structured body values are JSON-serialized;
// []byte and string bodies are transmitted as-is.
func (c *Client) Post(ctx context.Context, path string, params url.Values, body any) (*Response, error) {
	return c.send(ctx, http.MethodPost, path, params, body)
}

// Put issues a PUT request with the same body handling as Post.
func (c *Client) Put(ctx context.Context, path string, params url.Values, body any) (*Response, error) {
	return c.send(ctx, http.MethodPut, path, params, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params url.Values) (*Response, error) {
	return c.send(ctx, http.MethodDelete, path, params, nil)
}

// Do dispatches to the verb method matching the given method name
// (case-insensitive), wrapped in the bounded 401 re-authentication policy.
// Unrecognized methods fail with ErrUnsupportedMethod before any network
// call. A 404 response is returned like any other, logged as a warning.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body any) (*Response, error) {
	op, err := c.operation(method, path, params, body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("dispatching request",
		observability.Field{Key: "method", Value: strings.ToUpper(method)},
		observability.Field{Key: "path", Value: path},
	)

	resp, err := c.authRetryPolicy(path).do(ctx, op)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Warn("resource not found",
			observability.Field{Key: "path", Value: path},
			observability.Field{Key: "params", Value: params.Encode()},
		)
	}

	return resp, nil
}

// operation resolves a method name to the verb call it stands for.
func (c *Client) operation(method, path string, params url.Values, body any) (func(context.Context) (*Response, error), error) {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return func(ctx context.Context) (*Response, error) {
			return c.Get(ctx, path, params)
		}, nil
	case http.MethodPost:
		return func(ctx context.Context) (*Response, error) {
			return c.Post(ctx, path, params, body)
		}, nil
	case http.MethodPut:
		return func(ctx context.Context) (*Response, error) {
			return c.Put(ctx, path, params, body)
		}, nil
	case http.MethodDelete:
		return func(ctx context.Context) (*Response, error) {
			return c.Delete(ctx, path, params)
		}, nil
	default:
		c.logger.Error("unsupported request method",
			observability.Field{Key: "method", Value: method},
		)
		return nil, errors.Wrapf(ErrUnsupportedMethod, "%q", method)
	}
}

// send issues a single request through the session without retry handling.
func (c *Client) send(ctx context.Context, method, path string, params url.Values, body any) (*Response, error) {
	if c.session == nil {
		return nil, errors.New("client is not initialized: call Initialize first")
	}

	target := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s request for %s", method, path)
	}

	httpResp, err := c.session.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read response body for %s %s", method, path)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       raw,
	}, nil
}

// encodeBody prepares a request body for transmission. Structured values
// are JSON-serialized; raw byte and string bodies pass through unchanged.
func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		return raw, nil
	}
}

// authRetryPolicy builds the per-request 401 recovery policy.
func (c *Client) authRetryPolicy(path string) authRetry {
	return authRetry{
		maxAttempts: c.maxAuthRetries,
		recover:     c.Authenticate,
		onRefresh: func() {
			c.logger.Info("unauthorized, refreshing token",
				observability.Field{Key: "path", Value: path},
			)
			c.metrics.RecordAuthRefresh(path)
		},
	}
}

func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func defaultHeaders() http.Header {
	return http.Header{
		"Content-Type":  []string{"application/json"},
		"Accept":        []string{"application/json"},
		"Cache-Control": []string{"no-cache"},
	}
}
