// Package external holds the clients for outbound collaborator APIs
// (Photon geocoding, OSRM routing). All calls go through a shared Client that
// enforces the same resilience pattern: circuit breaking plus bounded retry
// with exponential backoff.
package external

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"traffic-prediction-service/internal/apperr"
)

const defaultUserAgent = "traffic-prediction-service/1.0"

// Client wraps an *http.Client and a circuit breaker. One Client per upstream
// service, shared across requests; it is safe for concurrent use.
type Client struct {
	http        *http.Client
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	maxAttempts int
	minBackoff  time.Duration
	userAgent   string
	sleep       func(time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithSleepFunc overrides the backoff sleep between retries (test hook).
func WithSleepFunc(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithMaxAttempts overrides the retry budget per call.
func WithMaxAttempts(n int) Option {
	return func(c *Client) { c.maxAttempts = n }
}

// NewClient builds a Client for the named upstream with the given per-request
// timeout.
func NewClient(name string, timeout time.Duration, opts ...Option) *Client {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	c := &Client{
		http:        &http.Client{Timeout: timeout},
		breaker:     cb,
		maxAttempts: 4,
		minBackoff:  200 * time.Millisecond,
		userAgent:   defaultUserAgent,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusError is a non-2xx upstream response surfaced as an error.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Do executes the request produced by makeReq, retrying transient failures
// (429, 5xx, network errors) with exponential backoff. An open breaker fails
// immediately. The caller owns the returned response body.
//
// makeReq is called once per attempt: request bodies cannot be replayed after
// a failed send.
func (c *Client) Do(ctx context.Context, makeReq func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	backoff := c.minBackoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq(ctx)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			return c.attempt(req)
		})
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, lastErr
		}
		if !retryable(err) || attempt == c.maxAttempts {
			return nil, lastErr
		}

		c.sleep(backoff)
		backoff *= 2
	}

	return nil, lastErr
}

func (c *Client) attempt(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// unavailable wraps a transport-level failure in the collaborator taxonomy.
func unavailable(service string, err error) error {
	return apperr.Wrap(apperr.CodeServiceUnavailable, service+" request failed", err)
}

// normalizePlace produces consistent query and cache keys by collapsing
// whitespace and lowering case.
func normalizePlace(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
