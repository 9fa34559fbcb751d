// Package apiclient is the Go client for the ResearchConnect REST API.
//
// Every request reads the bearer token from a credentials.Store. A token that is
// about to expire is refreshed before the request is sent, and a request rejected
// with 401 is replayed once after a refresh. Concurrent callers share a single
// refresh; see renew.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/credentials"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
	"github.com/yigit/researchconnect/internal/pkg/auth"
	"github.com/yigit/researchconnect/internal/pkg/metrics"
)

const (
	DefaultBaseURL      = "http://localhost:8080/v1"
	DefaultTimeout      = 30 * time.Second
	DefaultExpiryLeeway = 30 * time.Second
	DefaultUserAgent    = "rcctl"

	// RequestIDHeader is set on every attempt, including replays
	RequestIDHeader = "X-Request-ID"
)

// Config holds client configuration.
type Config struct {
	BaseURL string
	// Timeout bounds every HTTP exchange, the refresh call included
	Timeout time.Duration
	// ExpiryLeeway treats a token as expired this long before its exp claim.
	// Zero selects DefaultExpiryLeeway; WithExpiryLeeway sets an exact value.
	ExpiryLeeway time.Duration
	// RateLimit is the maximum requests per second; 0 disables pacing
	RateLimit float64
	Burst     int
	UserAgent string
}

// Option customizes a Client
type Option func(*Client)

// WithLogger sets the logger used for request and refresh events
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics instruments the client
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient replaces the underlying http.Client. Config.Timeout is not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithOnSessionExpired registers fn to run once each time a refresh fails and the
// stored credential is cleared. The CLI uses it to tell the user to log in again.
func WithOnSessionExpired(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// WithExpiryLeeway sets the expiry leeway exactly, so 0 checks against exp itself
func WithExpiryLeeway(d time.Duration) Option {
	return func(c *Client) {
		if d < 0 {
			d = 0
		}
		c.leeway = d
	}
}

// WithClock overrides time.Now for expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client talks to the ResearchConnect API. It is safe for concurrent use.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	store            credentials.Store
	log              zerolog.Logger
	metrics          *metrics.ClientMetrics
	limiter          *rate.Limiter
	leeway           time.Duration
	userAgent        string
	now              func() time.Time
	onSessionExpired func()

	// refresh guard
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult
}

// New creates a client for cfg.BaseURL backed by store
func New(cfg Config, store credentials.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("credential store is required")
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", base)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	leeway := cfg.ExpiryLeeway
	if leeway < 0 {
		leeway = 0
	} else if leeway == 0 {
		leeway = DefaultExpiryLeeway
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := &Client{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		log:        zerolog.Nop(),
		metrics:    metrics.NewClientMetrics(nil),
		leeway:     leeway,
		userAgent:  userAgent,
		now:        time.Now,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request is everything needed to build one attempt. Bodies are kept as bytes so
// a replay sends exactly what the first attempt sent.
type request struct {
	method string
	path   string
	query  url.Values
	body   []byte
	// anonymous requests carry no credential and skip the refresh guard
	anonymous bool
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func newRequest(method, path string, in interface{}) (*request, error) {
	req := &request{method: method, path: path}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		req.body = body
	}
	return req, nil
}

// authEndpoints never enter the 401 retry path
var authEndpoints = map[string]bool{
	"/auth/login":    true,
	"/auth/register": true,
	"/auth/signup":   true,
	refreshPath:      true,
}

func isAuthEndpoint(path string) bool {
	return authEndpoints[path]
}

// do runs req through the credential pipeline and decodes a 2xx body into out.
//
// The request is sent at most twice: once with the current credential and, after
// a 401 on a non-auth endpoint, once more with the renewed one.
func (c *Client) do(ctx context.Context, req *request, out interface{}) error {
	token, err := c.credential(ctx, req)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized && token != "" && !isAuthEndpoint(req.path) {
		renewed, err := c.renew(ctx, token)
		if err != nil {
			return err
		}

		c.metrics.Retries.Inc()
		c.log.Debug().Str("method", req.method).Str("path", req.path).Msg("Replaying request with renewed token")

		resp, err = c.send(ctx, req, renewed)
		if err != nil {
			return err
		}
	}

	return c.decode(req, resp, out)
}

// credential returns the bearer token to attach, refreshing it first when the
// stored one is expired or about to be.
func (c *Client) credential(ctx context.Context, req *request) (string, error) {
	if req.anonymous {
		return "", nil
	}
	token, ok := c.store.Token()
	if !ok {
		return "", nil
	}
	if !auth.IsExpired(token, c.leeway, c.now()) {
		return token, nil
	}

	c.log.Debug().Str("path", req.path).Msg("Stored token expired, refreshing before send")
	return c.renew(ctx, token)
}

// send performs one HTTP exchange and reads the whole body
func (c *Client) send(ctx context.Context, req *request, token string) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveRequest(req.method, 0)
		c.log.Error().Err(err).
			Str("method", req.method).
			Str("path", req.path).
			Str("request_id", requestID).
			Msg("Request failed")
		return nil, fmt.Errorf("send %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(req.method, 0)
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.metrics.ObserveRequest(req.method, resp.StatusCode)
	c.log.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("latency", time.Since(start)).
		Msg("Request completed")

	return &response{status: resp.StatusCode, header: resp.Header, body: respBody}, nil
}

// decode turns a response into out or an *apperrors.APIError
func (c *Client) decode(req *request, resp *response, out interface{}) error {
	if resp.status >= 200 && resp.status < 300 {
		if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", req.method, req.path, err)
		}
		return nil
	}

	apiErr := newAPIError(req, resp)
	c.log.Error().
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.status).
		Str("error", apiErr.Message).
		Msg("API request returned an error")
	return apiErr
}

func newAPIError(req *request, resp *response) *apperrors.APIError {
	message, code := dto.ParseErrorBody(resp.body)
	return &apperrors.APIError{
		StatusCode: resp.status,
		Message:    message,
		Code:       code,
		Method:     req.method,
		Path:       req.path,
		Body:       resp.body,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, &request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: path}, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	req, err := newRequest(http.MethodPost, path, in)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	req, err := newRequest(http.MethodPut, path, in)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

// postAnonymous sends a body without a credential, for the pre-login auth endpoints
func (c *Client) postAnonymous(ctx context.Context, path string, in, out interface{}) error {
	req, err := newRequest(http.MethodPost, path, in)
	if err != nil {
		return err
	}
	req.anonymous = true
	return c.do(ctx, req, out)
}

// getAnonymous reads a public endpoint, so it works before login
func (c *Client) getAnonymous(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, &request{method: http.MethodGet, path: path, query: query, anonymous: true}, out)
}

// pathf builds a path, escaping each argument as one segment
func pathf(format string, segments ...string) string {
	args := make([]interface{}, len(segments))
	for i, s := range segments {
		args[i] = url.PathEscape(s)
	}
	return fmt.Sprintf(format, args...)
}
