// Package api implements the typed REST client for the case-management
// backend. All requests go through one base client that attaches the
// required identification headers, unwraps the `{payload: ...}` envelope
// and maps HTTP status codes onto the client's error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthorized is returned on any 401. Callers treat it as a session
// end: the terminal analogue of the browser's hard /login redirect.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned on 403; it is logged but never retried.
var ErrForbidden = errors.New("forbidden")

const basePath = "/api/v1"

// ClientConfig carries the connection and identification settings sent
// with every request.
type ClientConfig struct {
	BaseURL     string
	Environment string
	AppVersion  string
	Email       string
	Language    string
	Timeout     time.Duration
}

// Client is the base REST client. Safe for concurrent use.
type Client struct {
	baseURL    string
	cfg        ClientConfig
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a client for the given backend.
func NewClient(cfg ClientConfig, logger *log.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Payload json.RawMessage `json:"payload"`
}

// requestOptions tweak a single request.
type requestOptions struct {
	skipLoader   bool
	extraHeaders map[string]string
	contentType  string
}

// get issues a GET and decodes the payload into out. Reads get one
// generic retry on transport errors and 5xx; the retry policy lives here
// and nowhere per-call.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}, opts requestOptions) error {
	err := c.do(ctx, http.MethodGet, path, query, nil, out, opts)
	if err == nil || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) {
		return err
	}
	var se *statusError
	if errors.As(err, &se) && se.code < 500 {
		return err
	}
	c.logger.Printf("Retrying GET %s after error: %v", path, err)
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts)
}

// postJSON issues a POST with a JSON body. Mutations are never retried.
func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

// putJSON issues a PUT with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

// delete issues a DELETE. No body, no retry.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, requestOptions{})
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.doWithBody(ctx, method, path, nil, bytes.NewReader(payload), out, requestOptions{contentType: "application/json"})
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out interface{}, opts requestOptions) error {
	return c.doWithBody(ctx, method, path, query, body, out, opts)
}

// statusError carries a non-2xx response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.code, e.body)
}

func (c *Client) doWithBody(ctx context.Context, method, path string, query url.Values, body io.Reader, out interface{}, opts requestOptions) error {
	u := c.baseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	contentType := opts.contentType
	if contentType == "" && body != nil {
		contentType = "application/json"
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	req.Header.Set("X-Environment", c.cfg.Environment)
	req.Header.Set("X-App-Version", c.cfg.AppVersion)
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("email", c.cfg.Email)
	req.Header.Set("Accept-Language", c.cfg.Language)
	if opts.skipLoader {
		req.Header.Set("skipLoader", "yes")
	} else {
		req.Header.Set("skipLoader", "no")
	}
	for k, v := range opts.extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		c.logger.Printf("Access forbidden for %s %s", method, path)
		return ErrForbidden
	case resp.StatusCode >= 500:
		c.logger.Printf("Server error on %s %s: %s", method, path, truncate(respBody, 200))
		return &statusError{code: resp.StatusCode, body: truncate(respBody, 200)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &statusError{code: resp.StatusCode, body: truncate(respBody, 200)}
	}

	if out == nil {
		return nil
	}

	// Most endpoints wrap their payload; a few return it bare. Accept both.
	var env envelope
	if err := json.Unmarshal(respBody, &env); err == nil && len(env.Payload) > 0 {
		respBody = env.Payload
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
