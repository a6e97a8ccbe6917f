// Package http provides the HTTP transport layer for the Knowledge2 API:
// URL building, credential injection, retries with backoff, and debug
// logging. Resource clients sit on top of this package and never touch
// net/http directly.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	nethttp "net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/knowledge2-io/knowledge2-go/internal/constants"
	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

// Credentials holds the authentication material for a client. Exactly one
// credential header is injected per request; when more than one is set,
// precedence is APIKey, then BearerToken, then AdminToken.
type Credentials struct {
	APIKey      string
	BearerToken string
	AdminToken  string
}

// apply sets the single credential header on req.
func (c *Credentials) apply(req *nethttp.Request) {
	if c == nil {
		return
	}

	switch {
	case c.APIKey != "":
		req.Header.Set("X-API-Key", c.APIKey)
	case c.BearerToken != "":
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	case c.AdminToken != "":
		req.Header.Set("X-Admin-Token", c.AdminToken)
	}
}

// Request represents one logical API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// Response is the final response of a logical request, after retries.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client executes API requests with credential injection, bounded retries,
// and per-attempt debug logging. Safe for concurrent use.
type Client struct {
	baseURL     string
	credentials *Credentials
	retryClient *retryablehttp.Client
	transport   *nethttp.Transport
	userAgent   string
	headers     map[string]string
	logger      k2.Logger
	debug       bool
	jitter      func() float64
	closeOnce   sync.Once
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger receiving debug records.
func WithLogger(logger k2.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging for this client.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithDefaultHeaders sets extra headers sent with every request. They cannot
// override the credential headers.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithRetryConfig tunes the retry budget and backoff window. maxRetries is
// the number of retries after the first attempt; zero disables retries.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = maxRetries
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds each request attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
	}
}

// WithLimits tunes the connection pool.
func WithLimits(limits *k2.Limits) Option {
	return func(c *Client) {
		if limits == nil {
			return
		}

		c.transport.MaxConnsPerHost = limits.MaxConnections
		c.transport.MaxIdleConns = limits.MaxIdleConnections
		c.transport.MaxIdleConnsPerHost = limits.MaxIdleConnections
		c.transport.IdleConnTimeout = limits.IdleConnTimeout
	}
}

// WithJitterSource replaces the backoff jitter source. Tests inject a fixed
// source to make delays deterministic.
func WithJitterSource(source func() float64) Option {
	return func(c *Client) {
		if source != nil {
			c.jitter = source
		}
	}
}

// NewClient creates an HTTP client for the given base URL and credentials.
func NewClient(baseURL string, credentials *Credentials, opts ...Option) *Client {
	transport := &nethttp.Transport{
		MaxConnsPerHost:     constants.DefaultMaxConnections,
		MaxIdleConns:        constants.DefaultMaxIdleConnections,
		MaxIdleConnsPerHost: constants.DefaultMaxIdleConnections,
		IdleConnTimeout:     constants.DefaultIdleConnTimeout,
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultMaxRetries
	retryClient.RetryWaitMin = constants.DefaultBackoffFactor
	retryClient.RetryWaitMax = constants.DefaultBackoffMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = checkRetry
	// The last response must reach Do for classification, so the giving-up
	// handler passes it through instead of discarding it.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:     baseURL,
		credentials: credentials,
		retryClient: retryClient,
		transport:   transport,
		userAgent:   "knowledge2-go/" + constants.Version,
		jitter:      rand.Float64,
	}

	retryClient.Backoff = client.backoff

	for _, opt := range opts {
		opt(client)
	}

	retryClient.HTTPClient.Transport = &loggingTransport{base: transport, client: client}

	return client
}

// checkRetry decides whether an attempt's outcome is transient. The set of
// retryable outcomes matches the error taxonomy: connection failures,
// timeouts, HTTP 429, and HTTP 5xx. Everything else is final.
func checkRetry(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	if resp.StatusCode == nethttp.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}

	return false, nil
}

// backoff computes the wait before retry attempt attemptNum (0-based):
// base = waitMin * 2^attempt, plus up to 25% jitter, capped at waitMax. A
// Retry-After supplied with a 429 overrides the computed wait, even above
// the cap.
func (c *Client) backoff(waitMin, waitMax time.Duration, attemptNum int, resp *nethttp.Response) time.Duration {
	if resp != nil && resp.StatusCode == nethttp.StatusTooManyRequests {
		if after := retryAfter(resp); after > 0 {
			return after
		}
	}

	base := float64(waitMin) * math.Pow(2, float64(attemptNum))
	wait := base + c.jitter()*0.25*base

	if wait > float64(waitMax) {
		wait = float64(waitMax)
	}

	return time.Duration(wait)
}

// retryAfter reads a Retry-After header expressed in seconds.
func retryAfter(resp *nethttp.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}

	var seconds float64
	if _, err := fmt.Sscanf(raw, "%f", &seconds); err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}

// Do executes a request and returns the final response. Transient failures
// are retried within the configured budget; the error returned reflects the
// last attempt. A non-2xx final status yields both the response and the
// classified error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = encoded
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	// Credentials go last so neither default nor per-request headers can
	// shadow them.
	c.credentials.apply(httpReq.Request)

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransport(err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, k2.ClassifyTransport(fmt.Errorf("reading response body: %w", err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode >= 400 {
		return resp, k2.ClassifyResponse(httpResp.StatusCode, httpResp.Header, body)
	}

	return resp, nil
}

// classifyTransport unwraps retryablehttp's url.Error wrapping before
// mapping the failure onto the taxonomy.
func (c *Client) classifyTransport(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return k2.ClassifyTransport(urlErr)
	}

	return k2.ClassifyTransport(err)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// PostWithHeaders performs a POST request with a JSON body and extra
// per-request headers.
func (c *Client) PostWithHeaders(ctx context.Context, path string, body interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Headers: headers, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

// DeleteWithQuery performs a DELETE request with query parameters.
func (c *Client) DeleteWithQuery(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, Query: query})
}

// Close releases the connection pool. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.transport.CloseIdleConnections()
	})
}

// loggingTransport logs each attempt when debug logging is on. Secrets in
// headers are redacted before they reach the logger.
type loggingTransport struct {
	base   nethttp.RoundTripper
	client *Client
}

func (t *loggingTransport) RoundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	enabled := t.client.debug || k2.DebugEnabled()
	if !enabled {
		return t.base.RoundTrip(req)
	}

	logger := t.client.logger
	if logger == nil {
		logger = k2.DefaultLogger()
	}

	logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": k2.RedactHeaders(req.Header),
	})

	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		logger.Debug("HTTP Request Failed", map[string]interface{}{
			"method":      req.Method,
			"url":         req.URL.String(),
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})

		return nil, err
	}

	logger.Debug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"url":         req.URL.String(),
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return resp, nil
}
