package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmcdole/vitrine/internal/domain"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultResource = "artworks"
	userAgent       = "vitrine/1.0"
)

// Client implements domain.PageSource for the Art Institute of Chicago API
// (and any endpoint with the same pagination envelope)
type Client struct {
	baseURL    string
	resource   string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter // nil = unlimited
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithResource sets the collection path (default "artworks")
func WithResource(resource string) Option {
	return func(c *Client) {
		if resource != "" {
			c.resource = strings.Trim(resource, "/")
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second; rps <= 0 disables it
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the identifying agent string
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new collection API client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		resource:  defaultResource,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resource returns the collection path
func (c *Client) Resource() string {
	return c.resource
}

// FetchPage returns one page of records with its pagination metadata
func (c *Client) FetchPage(ctx context.Context, page, limit int) (*domain.Page, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	query.Set("fields", strings.Join(requestedFields, ","))

	body, err := c.doRequest(ctx, "/"+c.resource, query)
	if err != nil {
		return nil, err
	}

	resp, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	p := MapPage(resp, c.now())
	// Some deployments omit current_page; trust the request then.
	if p.Meta.CurrentPage == 0 {
		p.Meta.CurrentPage = page
	}
	if p.Meta.Limit == 0 {
		p.Meta.Limit = limit
	}
	return p, nil
}

// doRequest performs a rate-limited GET
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("AIC-User-Agent", c.userAgent)

	c.logger.Debug("collection request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("collection request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("collection request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrBadResponse, resp.StatusCode)
	}

	return body, nil
}

// parseResponse parses a JSON list response
func (c *Client) parseResponse(body []byte) (*APIResponse, error) {
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrBadResponse, err)
	}
	return &resp, nil
}
