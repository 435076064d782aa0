// Package upstream is the HTTP client for the remote authentication and
// catalog service.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config captures the settings for reaching the remote service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.AuthGateway and ports.CatalogGateway.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var (
	_ ports.AuthGateway    = (*Client)(nil)
	_ ports.CatalogGateway = (*Client)(nil)
)

// New builds a Client on a pooled transport. A default timeout is applied
// when none is provided.
func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		log:     log,
	}
}

// SignUp posts the profile to /signup.
func (c *Client) SignUp(ctx context.Context, profile domain.Profile) (*ports.AuthReply, error) {
	return c.postAuth(ctx, "/signup", profile)
}

// SignIn posts the credentials to /signin.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (*ports.AuthReply, error) {
	return c.postAuth(ctx, "/signin", creds)
}

// postAuth returns the decoded envelope whatever the status code; the remote
// service reports rejections through success=false.
func (c *Client) postAuth(ctx context.Context, path string, payload any) (*ports.AuthReply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	var reply ports.AuthReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode %s (status %d): %w", path, resp.StatusCode, err)
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Bool("success", reply.Success).
		Msg("upstream auth call")
	return &reply, nil
}

// FetchProducts issues GET /products and returns the body of a 2xx response.
func (c *Client) FetchProducts(ctx context.Context, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, &domain.CatalogFetchError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.CatalogFetchError{Err: fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domain.CatalogFetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.CatalogFetchError{Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// Ping reports whether the remote service answers at all. Any HTTP response
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	resp.Body.Close()
	return nil
}
