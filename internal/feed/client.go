package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fastjson"
)

const defaultTimeout = 30 * time.Second

// Payload is a parsed feed body together with fetch metadata.
type Payload struct {
	Value      *fastjson.Value
	URL        string
	StatusCode int
	Bytes      int
	Latency    time.Duration
	FetchedAt  time.Time
}

// Client fetches the data-status feed from a single endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(agent)
	}
}

// WithClock overrides the time source used for FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a feed client for endpoint, which must be an absolute http(s) URL.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("feed endpoint required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse feed endpoint: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("feed endpoint must be absolute, got %q", endpoint)
	}
	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Endpoint returns the URL this client fetches.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch performs one GET against the endpoint and parses the body as JSON.
// It never retries.
func (c *Client) Fetch(ctx context.Context) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s (latency=%v): %w", ErrNetwork, c.endpoint, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &HTTPError{URL: c.endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body from %s: %w", ErrNetwork, c.endpoint, err)
	}

	value, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	return &Payload{
		Value:      value,
		URL:        c.endpoint,
		StatusCode: resp.StatusCode,
		Bytes:      len(body),
		Latency:    time.Since(requestStart),
		FetchedAt:  c.now(),
	}, nil
}

// ParsePayload parses a feed body. Invalid JSON yields an error wrapping ErrParse.
func ParsePayload(body []byte) (*fastjson.Value, error) {
	value, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode feed body: %w", ErrParse, err)
	}
	return value, nil
}
