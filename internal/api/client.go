// Package api is the typed HTTP gateway to the tutoring backend. It owns
// bearer-token attachment, the network retry policy, 401 handling, and
// error-shape normalization; everything above it works with Go types.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/soyeahso/studyline/internal/logging"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Credentials supplies the persisted bearer token and clears it when the
// server rejects it.
type Credentials interface {
	Token() string
	Clear() error
}

// Client talks to the tutoring API server.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	creds   Credentials
	log     *logging.Logger

	mu        sync.Mutex
	expired   bool
	onExpired func()
}

// New creates a client for the server at baseURL. Requests carry the token
// from creds when one is stored.
func New(baseURL string, creds Credentials, log *logging.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.Logger = nil
	rc.HTTPClient.Timeout = requestTimeout
	rc.CheckRetry = retryNetworkOnly
	rc.Backoff = retryBackoff

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
		creds:   creds,
		log:     log.Sub("api"),
	}
}

// OnSessionExpired registers a callback invoked exactly once when the
// server rejects the stored token, no matter how many in-flight requests
// observe the 401.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	c.onExpired = fn
	c.mu.Unlock()
}

// Reauthorized clears the expired latch after a successful login, allowing
// requests through again.
func (c *Client) Reauthorized() {
	c.mu.Lock()
	c.expired = false
	c.mu.Unlock()
}

// retryNetworkOnly retries only failures where no HTTP response was
// received. Responses carrying error status codes are never retried.
func retryNetworkOnly(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil && resp == nil {
		return true, nil
	}
	return false, nil
}

// retryBackoff waits 1s, 2s, 4s between attempts.
func retryBackoff(_, _ time.Duration, attempt int, _ *http.Response) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// do issues one API request. Auth endpoints pass skipAuthGate to stay
// usable after the expired latch trips.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doRequest(ctx, method, path, body, out, false)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any, skipAuthGate bool) error {
	c.mu.Lock()
	expired := c.expired
	c.mu.Unlock()
	if expired && !skipAuthGate {
		return ErrSessionExpired
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := c.creds.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Debug().Err(err).Str("path", path).Msg("request failed after retries")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized && !skipAuthGate {
		c.expire()
		return newAPIError(resp.StatusCode, data)
	}
	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// expire latches the expired state, clears both persisted token stores, and
// fires the session-expired callback. Only the first 401 does any of this;
// later observers find the latch already set.
func (c *Client) expire() {
	c.mu.Lock()
	if c.expired {
		c.mu.Unlock()
		return
	}
	c.expired = true
	fn := c.onExpired
	c.mu.Unlock()

	if err := c.creds.Clear(); err != nil {
		c.log.Error().Err(err).Msg("failed to clear credentials")
	}
	c.log.Warn().Msg("server rejected token; credentials cleared")
	if fn != nil {
		fn()
	}
}
