// Package client talks to a tzline server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
)

// ErrRejected is returned when the server refuses a request (any 4xx other than 429).
// Rejections are not retried.
var ErrRejected = errors.New("request rejected")

// APIError is a decoded server error.
type APIError struct {
	Body   ErrorResponse
	Status int
}

func (e *APIError) Error() string {
	if e.Body.Details != "" {
		return fmt.Sprintf("HTTP %d %s: %s (%s)", e.Status, e.Body.Code, e.Body.Error, e.Body.Details)
	}
	return fmt.Sprintf("HTTP %d %s: %s", e.Status, e.Body.Code, e.Body.Error)
}

// Unwrap lets errors.Is match ErrRejected for client errors.
func (e *APIError) Unwrap() error {
	if e.Status >= 400 && e.Status < 500 && e.Status != http.StatusTooManyRequests {
		return ErrRejected
	}
	return nil
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetry sets the attempt count and initial backoff delay.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// Client is a tzline API client.
type Client struct {
	http     *http.Client
	logger   *slog.Logger
	baseURL  string
	attempts uint
	delay    time.Duration
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   slog.Default(),
		attempts: 4,
		delay:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timezones searches the server registry. An empty query lists every timezone.
func (c *Client) Timezones(ctx context.Context, query string, limit int) (*TimezonesResponse, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/timezones"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out TimezonesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("listing timezones: %w", err)
	}
	return &out, nil
}

// Compare asks the server for the comparison of ids at hour in the first id's timezone.
// A nil hour means the current time there.
func (c *Client) Compare(ctx context.Context, ids []string, hour *float64) (*session.Snapshot, error) {
	body, err := json.Marshal(CompareRequest{IDs: ids, Hour: hour})
	if err != nil {
		return nil, fmt.Errorf("encoding compare request: %w", err)
	}

	var snap session.Snapshot
	if err := c.do(ctx, http.MethodPost, "/api/v1/compare", body, &snap); err != nil {
		return nil, fmt.Errorf("comparing timezones: %w", err)
	}
	return &snap, nil
}

// do sends a request, retrying transport failures, 429s and 5xx responses with
// jittered exponential backoff, and decodes a 200 body into out.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	target := c.baseURL + path

	var data []byte
	err := retry.Do(
		func() error {
			var reader io.Reader = http.NoBody
			if body != nil {
				reader = bytes.NewReader(body)
			}
			req, err := http.NewRequestWithContext(ctx, method, target, reader)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
			}
			req.Header.Set("Accept", "application/json")
			req.Header.Set("User-Agent", "tzline/1.0")
			if body != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() {
				if err := resp.Body.Close(); err != nil {
					c.logger.Debug("failed to close response body", "error", err)
				}
			}()

			payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if resp.StatusCode == http.StatusOK {
				data = payload
				return nil
			}

			apiErr := &APIError{Status: resp.StatusCode}
			if json.Unmarshal(payload, &apiErr.Body) != nil || apiErr.Body.Error == "" {
				apiErr.Body.Error = strings.TrimSpace(string(payload))
			}
			if errors.Is(apiErr, ErrRejected) {
				return retry.Unrecoverable(apiErr)
			}
			return apiErr
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying tzline API request", "attempt", n+1, "url", target, "error", err)
		}),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
