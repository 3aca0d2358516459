// Package objectstore implements the events.Store interface against a
// GCS-style object listing API.
package objectstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/eventfeed-io/server/internal/domain/events"
	"github.com/eventfeed-io/server/internal/metrics"
)

// DefaultTimeout bounds every store call so a slow upstream cannot suspend a
// request indefinitely.
const DefaultTimeout = 10 * time.Second

// Client talks to the remote object-listing store. Failures are never
// retried here; the caller maps them to an opaque upstream failure.
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates a store client for one bucket.
// baseURL is the listing API endpoint (e.g. "https://storage.googleapis.com").
func NewClient(baseURL, bucket string, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		bucket:     bucket,
		timeout:    DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type listResponse struct {
	Items []events.Object `json:"items"`
}

// List returns the objects whose names start with prefix.
func (c *Client) List(ctx context.Context, prefix string) ([]events.Object, error) {
	params := url.Values{}
	if prefix != "" {
		params.Set("prefix", prefix)
	}

	requestURL := fmt.Sprintf("%s/storage/v1/b/%s/o", c.baseURL, url.PathEscape(c.bucket))
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	body, err := c.do(ctx, "list", requestURL)
	if err != nil {
		return nil, fmt.Errorf("list bucket %s: %w", c.bucket, err)
	}

	var listing listResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	return listing.Items, nil
}

// Read returns the raw body of a single object.
func (c *Client) Read(ctx context.Context, name string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
		c.baseURL, url.PathEscape(c.bucket), url.PathEscape(name))

	body, err := c.do(ctx, "read", requestURL)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", name, err)
	}
	return body, nil
}

// Ping fetches the bucket resource itself as a lightweight probe.
func (c *Client) Ping(ctx context.Context) error {
	requestURL := fmt.Sprintf("%s/storage/v1/b/%s?fields=name",
		c.baseURL, url.PathEscape(c.bucket))

	if _, err := c.do(ctx, "ping", requestURL); err != nil {
		return fmt.Errorf("ping bucket %s: %w", c.bucket, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, operation, requestURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	body, err := c.get(ctx, requestURL)
	metrics.StoreRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.StoreRequestsTotal.WithLabelValues(operation, status).Inc()

	return body, err
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
