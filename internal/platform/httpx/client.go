package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 64 * 1024

// Doer issues a request against the portal API and returns the raw JSON body
// of a 2xx response.
type Doer interface {
	Do(ctx context.Context, method, path string, params map[string]any) (json.RawMessage, error)
}

// TokenSource yields the bearer token attached to outgoing requests. An empty
// token means the request is sent anonymously.
type TokenSource func(ctx context.Context) (string, error)

// Client is the net/http implementation of Doer.
type Client struct {
	base   *url.URL
	http   *http.Client
	token  TokenSource
	logger *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource attaches bearer authentication.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.token = src }
}

// WithLogger sets the logger used for transport warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("httpx: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("httpx: base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: timeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do implements Doer. GET and DELETE params travel in the query string, other
// methods send them as a JSON body.
func (c *Client) Do(ctx context.Context, method, path string, params map[string]any) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, method, path, params)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{Status: resp.StatusCode, Message: serverMessage(body)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s %s: body is not json", ErrDecode, method, path)
	}
	return json.RawMessage(body), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, params map[string]any) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("httpx: parse path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	var body io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
		if len(params) > 0 {
			q := target.Query()
			for k, v := range params {
				q.Set(k, fmt.Sprint(v))
			}
			target.RawQuery = q.Encode()
		}
	default:
		if params != nil {
			raw, err := json.Marshal(params)
			if err != nil {
				return nil, fmt.Errorf("httpx: encode params: %w", err)
			}
			body = bytes.NewReader(raw)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("httpx: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			c.logger.Warn("httpx read token", slog.String("path", path), slog.Any("error", err))
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return ""
}
