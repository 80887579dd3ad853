// Package api is the single choke point for all calls to the Jill backend.
// It attaches bearer credentials to every outbound request, applies JSON
// content negotiation, and classifies every failure into a fixed taxonomy
// (ServerError / NetworkError / RequestSetupError) before callers see it.
//
// The client is stateless and attempts each call exactly once. Retry and
// backoff are caller concerns, kept out deliberately so the client never
// has to coordinate in-flight state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTimeout is how long a call may wait for a response before it is
// abandoned and reported as a NetworkError.
const DefaultTimeout = 5 * time.Second

// TokenSource supplies the current access token for bearer attachment.
// An empty string means no credentials; the call is sent unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Config carries the process-wide client configuration, set once at startup.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:5000/api/v1".
	BaseURL string

	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration

	// Headers are sent on every request, in addition to the JSON
	// content-negotiation defaults.
	Headers map[string]string

	// Tokens supplies the bearer token. May be nil for a client that only
	// makes unauthenticated calls.
	Tokens TokenSource

	// Logger receives one event per classified error. The zero value
	// discards everything.
	Logger zerolog.Logger
}

// Client issues JSON calls against the backend. Safe for concurrent use.
type Client struct {
	httpc   *http.Client
	baseURL string
	headers map[string]string
	tokens  TokenSource
	log     zerolog.Logger
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpc:   &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: cfg.Headers,
		tokens:  cfg.Tokens,
		log:     cfg.Logger,
	}
}

// do issues one request and decodes a 2xx JSON response into out (skipped
// when out is nil). Any failure comes back as one of the classified error
// kinds; the error is also logged here so callers don't have to.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqID := uuid.NewString()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return c.classified(reqID, method, path, &RequestSetupError{Message: fmt.Sprintf("encode body: %v", err)})
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return c.classified(reqID, method, path, &RequestSetupError{Message: err.Error()})
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// The request left the client but nothing came back.
		return c.classified(reqID, method, path, &NetworkError{cause: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.classified(reqID, method, path, &NetworkError{cause: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classified(reqID, method, path, &ServerError{
			Status:  resp.StatusCode,
			Message: extractMessage(raw, resp.StatusCode),
			Raw:     raw,
		})
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return c.classified(reqID, method, path, &ServerError{
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("decode response: %v", err),
				Raw:     raw,
			})
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// classified logs one diagnostic event for the error and returns it as-is.
func (c *Client) classified(reqID, method, path string, err error) error {
	ev := c.log.Error().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path)
	if se, ok := err.(*ServerError); ok {
		ev = ev.Int("status", se.Status)
	}
	ev.Err(err).Msg("api call failed")
	return err
}
