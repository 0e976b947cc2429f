// Package authclient talks to the external AuthService over its JSON HTTP API.
package authclient

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
	"strings"
	"time"

	"github.com/franceviagens/portal/internal/domain"
)

const (
	LoginPath    = "/api/auth/login"
	RegisterPath = "/api/auth/register"

	// DefaultTimeout bounds a single AuthService request.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// Doer executes an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Reply is a 2xx answer from AuthService.
type Reply struct {
	StatusCode int
	Body       domain.MessageBody
}

// Client issues login and registration requests against one AuthService base URL.
type Client struct {
	baseURL string
	http    Doer
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// New creates a Client for the AuthService rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse auth base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("auth base url %q must be an absolute http(s) url", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized AuthService base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Login posts credentials to the login endpoint.
func (c *Client) Login(ctx context.Context, creds domain.LoginCredentials) (Reply, error) {
	return c.post(ctx, LoginPath, creds)
}

// Register posts registration details to the registration endpoint.
func (c *Client) Register(ctx context.Context, details domain.RegistrationDetails) (Reply, error) {
	return c.post(ctx, RegisterPath, details)
}

func (c *Client) post(ctx context.Context, path string, payload any) (Reply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, fmt.Errorf("encode %s request: %w", path, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{}, unreachable(ctx, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Reply{}, unreachable(ctx, path, err)
	}

	var msg domain.MessageBody
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.Debug("AuthService body is not JSON", "path", path, "status", resp.StatusCode, "error", err)
			msg = domain.MessageBody{}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, ok := msg.Message()
		return Reply{}, &RejectedError{StatusCode: resp.StatusCode, Message: text, HasMessage: ok}
	}
	return Reply{StatusCode: resp.StatusCode, Body: msg}, nil
}

// unreachable classifies a failure that left us without a response.
func unreachable(ctx context.Context, path string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w: %w", path, ErrCanceled, err)
	}
	return fmt.Errorf("%s: %w: %w", path, ErrUnreachable, err)
}
