package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/i18nscout/internal/core/ports/driven"
	"github.com/custodia-labs/i18nscout/internal/logger"
	"github.com/custodia-labs/i18nscout/internal/metrics"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// APIVersion is sent with every request.
	APIVersion = "2022-11-28"

	// maxBodySize bounds a single response body.
	maxBodySize = 64 << 20
)

// UserAgent identifies the client to the API.
var UserAgent = "i18nscout"

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client performs rate-limited GET requests against the GitHub API.
// It is safe for concurrent use.
type Client struct {
	mu            sync.Mutex
	http          *http.Client
	base          *http.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	cfg           Config
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the base HTTP client. Authentication is layered on top
// of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// WithRateLimiter replaces the rate limiter built from the config.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) { c.rateLimiter = rl }
}

// NewClient creates a GitHub API client. A nil cfg uses DefaultConfig.
func NewClient(tokenProvider driven.TokenProvider, cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	normalized := *cfg
	if err := normalized.normalize(); err != nil {
		return nil, err
	}

	c := &Client{
		tokenProvider: tokenProvider,
		cfg:           normalized,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rateLimiter == nil {
		c.rateLimiter = NewRateLimiter(
			WithRequestsPerSecond(normalized.RequestsPerSecond),
			WithSafetyMargin(normalized.SafetyMargin),
			WithMaxWait(normalized.MaxWait),
		)
	}
	return c, nil
}

// ensureClient builds the HTTP client on first use so the token is read
// only when needed.
func (c *Client) ensureClient(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.http != nil {
		return c.http, nil
	}

	base := c.base
	if base == nil {
		base = &http.Client{}
	}

	token := ""
	if c.tokenProvider != nil {
		var err error
		token, err = c.tokenProvider.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}
	}

	if token == "" {
		hc := *base
		if hc.Timeout == 0 {
			hc.Timeout = c.cfg.Timeout
		}
		c.http = &hc
		return c.http, nil
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	tc.Timeout = c.cfg.Timeout
	if base.Timeout > 0 {
		tc.Timeout = base.Timeout
	}
	c.http = tc
	return c.http, nil
}

// Get fetches url, waiting out rate limits. Rate-limit responses are retried
// up to MaxRateLimitRetries times; other non-2xx responses return *APIError.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	hc, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			var rlErr *RateLimitError
			if errors.As(err, &rlErr) {
				rlErr.Attempts = attempt - 1
				return nil, rlErr
			}
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		resp, req, err := c.do(ctx, hc, url)
		if err != nil {
			return nil, err
		}

		rlErr := c.rateLimiter.CheckRateLimit(resp.StatusCode, resp.Header)
		if rlErr == nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}
			return nil, c.wrapError(resp, req)
		}

		rlErr.Attempts = attempt
		wait := rlErr.RetryAt.Sub(c.rateLimiter.Now())
		if attempt > c.cfg.MaxRateLimitRetries {
			logger.Warn("rate limit persisted after %d attempts: %s", attempt, url)
			return nil, rlErr
		}
		if wait > c.cfg.MaxWait {
			logger.Warn("rate limit wait %s exceeds maximum %s", wait.Round(time.Second), c.cfg.MaxWait)
			return nil, rlErr
		}

		logger.Info("rate limit hit (status %d), resuming at %s",
			resp.StatusCode, rlErr.RetryAt.Format(time.RFC3339))
		c.rateLimiter.Block(rlErr.RetryAt)
	}
}

func (c *Client) do(ctx context.Context, hc *http.Client, url string) (*Response, *http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", APIVersion)
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	httpResp, err := hc.Do(req)
	if err != nil {
		metrics.RecordAPIRequest(0, time.Since(start))
		return nil, req, fmt.Errorf("get %s: %w", url, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	metrics.RecordAPIRequest(httpResp.StatusCode, time.Since(start))
	if err != nil {
		return nil, req, fmt.Errorf("read %s: %w", url, err)
	}

	logger.Debug("GET %s -> %d", url, httpResp.StatusCode)
	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, req, nil
}

// wrapError converts an unsuccessful response into an APIError, taking the
// message from the platform's error body.
func (c *Client) wrapError(resp *Response, req *http.Request) error {
	httpResp := &http.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       io.NopCloser(bytes.NewReader(resp.Body)),
		Request:    req,
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		URL:        req.URL.String(),
	}

	err := gh.CheckResponse(httpResp)
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		apiErr.Message = ghErr.Message
	}
	return apiErr
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// Endpoints returns the configured endpoints.
func (c *Client) Endpoints() Endpoints {
	return c.cfg.Endpoints
}

// PerPage returns the configured page size.
func (c *Client) PerPage() int {
	return c.cfg.PerPage
}

// TokenProvider returns the token provider.
func (c *Client) TokenProvider() driven.TokenProvider {
	return c.tokenProvider
}

var _ driven.Platform = (*Client)(nil)
