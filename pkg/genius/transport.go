package genius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Backend selects which Genius API a Service talks to.
type Backend int

const (
	BackendAPI    Backend = iota // Token-authenticated API (api.genius.com)
	BackendPublic                // Unauthenticated public API (genius.com/api)
)

// String returns a human-readable representation of the Backend.
func (b Backend) String() string {
	switch b {
	case BackendAPI:
		return "api"
	case BackendPublic:
		return "public"
	default:
		return "unknown"
	}
}

const userAgent = "lyricsgenius/1.0"

// envelope is the JSON wrapper shared by both APIs.
type envelope struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Response json.RawMessage `json:"response"`

	// OAuth failures use a different shape.
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// getJSON calls an API endpoint and decodes the "response" member into v.
func (c *Client) getJSON(ctx context.Context, backend Backend, path string, params url.Values, v interface{}) error {
	httpClient := c.httpClient
	base := c.publicURL
	if backend == BackendAPI {
		if c.authClient == nil {
			return ErrNoAccessToken
		}
		httpClient = c.authClient
		base = c.baseURL
	}

	body, err := c.fetch(ctx, httpClient, buildURL(base, path, params), path, "application/json")
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("genius: failed to parse %s response: %w", path, err)
	}
	if env.Meta.Status != 0 && env.Meta.Status != http.StatusOK {
		return &Error{StatusCode: env.Meta.Status, Message: env.Meta.Message, Path: path}
	}
	// OAuth errors can arrive with a 200 status.
	if env.Error != "" {
		msg := env.ErrorDescription
		if msg == "" {
			msg = env.Error
		}
		return &Error{StatusCode: http.StatusUnauthorized, Message: msg, Path: path}
	}

	// Some public endpoints answer without an envelope.
	raw := env.Response
	if len(raw) == 0 {
		raw = body
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("genius: failed to decode %s response: %w", path, err)
	}
	return nil
}

// getPage fetches a Genius web page and returns its markup.
func (c *Client) getPage(ctx context.Context, path string) (string, error) {
	body, err := c.fetch(ctx, c.httpClient, buildURL(c.webURL, path, nil), path, "text/html")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetch performs a GET request with retry logic.
//
// It handles:
// - Per-attempt timeouts
// - Retrying network errors and 5xx responses up to the configured count
// - The fixed sleep between attempts and after each completed request
// - Context cancellation
func (c *Client) fetch(ctx context.Context, httpClient *http.Client, rawURL, path, accept string) ([]byte, error) {
	var lastErr error
	attempts := c.retries + 1

	for i := 0; i < attempts; i++ {
		c.logDebugf("genius: GET %s (attempt %d/%d)", path, i+1, attempts)

		body, status, err := c.attempt(ctx, httpClient, rawURL, accept)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("genius: request %s failed: %w", path, err)
			if shouldRetryNetworkError(err) && i < attempts-1 {
				c.logDebugf("genius: network error, retrying: %v", err)
				if !sleep(ctx, c.sleepTime) {
					return nil, ctx.Err()
				}
				continue
			}
			return nil, lastErr
		}

		if status < 200 || status > 299 {
			apiErr := &Error{StatusCode: status, Message: errorMessage(body), Path: path}
			if apiErr.Temporary() && i < attempts-1 {
				c.logDebugf("genius: server error, retrying: %v", apiErr)
				lastErr = apiErr
				if !sleep(ctx, c.sleepTime) {
					return nil, ctx.Err()
				}
				continue
			}
			return nil, apiErr
		}

		// Rate limiting between consecutive requests
		if !sleep(ctx, c.sleepTime) {
			return nil, ctx.Err()
		}

		c.logDebugf("genius: GET %s succeeded", path)
		if status == http.StatusNoContent {
			return nil, nil
		}
		return body, nil
	}

	return nil, fmt.Errorf("genius: max retries exceeded: %w", lastErr)
}

// attempt makes a single HTTP request bounded by the client timeout.
func (c *Client) attempt(ctx context.Context, httpClient *http.Client, rawURL, accept string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// errorMessage extracts a message from an error response body, if any.
func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Meta.Message != "" {
		return env.Meta.Message
	}
	if env.ErrorDescription != "" {
		return env.ErrorDescription
	}
	return env.Error
}

// buildURL joins base and path and encodes the non-empty params.
func buildURL(base, path string, params url.Values) string {
	u := base + path
	if len(params) == 0 {
		return u
	}
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
