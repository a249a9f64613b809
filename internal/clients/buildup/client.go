// Package buildup provides a client for the BuildUp financial-planning API
package buildup

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
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/buildup/internal/common"
	"github.com/bobmcallan/buildup/internal/interfaces"
	"github.com/bobmcallan/buildup/internal/models"
)

const (
	DefaultBaseURL = common.LocalOrigin
	DefaultTimeout = 0 // calls are bounded by the caller's context only
)

// API paths
const (
	PathAllocations     = "/api/v1/allocations"
	PathRiskValue       = "/api/v1/risk-value"
	PathIRAType         = "/api/v1/ira-type"
	PathAccountOverview = "/api/v1/account-overview"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Client implements the PlanningClient interface
type Client struct {
	baseURL    string
	creds      Credentials
	shape      Shape
	timeout    time.Duration
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL, e.g. http://localhost:6100
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithOrigin sets the base URL from a plain-HTTP host and port
func WithOrigin(host string, port int) ClientOption {
	return func(c *Client) {
		c.baseURL = fmt.Sprintf("http://%s:%d", host, port)
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit caps outbound requests per second. Zero or less disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithShape selects how request payloads are encoded and validated
func WithShape(shape Shape) ClientOption {
	return func(c *Client) {
		c.shape = shape
	}
}

// NewClient creates a new planning API client. It fails when either half of
// the credential pair is empty.
func NewClient(creds Credentials, opts ...ClientOption) (*Client, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		creds:      creds,
		shape:      ShapeJSON,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		logger:     common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

// BaseURL returns the origin requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Shape returns the request shape the client speaks
func (c *Client) Shape() Shape {
	return c.shape
}

// APIError is returned when the server answers with an HTTP error status.
// Info is the envelope info code when the body carried one. Body is the
// response body as received.
type APIError struct {
	StatusCode int
	Info       string
	Message    string
	Endpoint   string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("BuildUp API error: %s (status: %d, endpoint: %s)", e.Info, e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("BuildUp API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// apiRequest describes one outbound call before credentials are attached.
type apiRequest struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// Do sends payload as JSON to path and returns the raw response body. A nil
// payload sends no body.
func (c *Client) Do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	req := apiRequest{method: method, path: path}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		req.body = body
		req.contentType = contentTypeJSON
	}
	return c.send(ctx, req)
}

// send performs a rate-limited request and buffers the whole response body
func (c *Client) send(ctx context.Context, r apiRequest) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	u, err := url.Parse(c.baseURL + r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to build url: %w", err)
	}
	q := url.Values{}
	for k, vs := range r.query {
		q[k] = vs
	}
	c.creds.apply(q)
	u.RawQuery = q.Encode()

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", contentTypeJSON)

	c.logger.Debug().
		Str("method", r.method).
		Str("url", c.baseURL+r.path).
		Int("body_bytes", len(r.body)).
		Msg("BuildUp API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.baseURL + r.path
		}
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("url", c.baseURL+r.path).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Dur("elapsed", time.Since(start)).
		Msg("BuildUp API response")

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
			Endpoint:   r.path,
			Body:       respBody,
		}
		var env struct {
			Info string `json:"info"`
		}
		if json.Unmarshal(respBody, &env) == nil {
			apiErr.Info = env.Info
		}
		return nil, apiErr
	}

	return respBody, nil
}

// call sends r and decodes the envelope of an endpoint
func call[T any](ctx context.Context, c *Client, r apiRequest) (*models.Envelope[T], error) {
	body, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	env, err := models.DecodeEnvelope[T](body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", r.path, err)
	}
	if env.DataErr != nil {
		c.logger.Warn().
			Err(env.DataErr).
			Str("url", c.baseURL+r.path).
			Str("info", env.Info).
			Msg("BuildUp API data did not match the expected shape")
	}
	return env, nil
}

// Ensure Client implements PlanningClient
var _ interfaces.PlanningClient = (*Client)(nil)
