// Package cloudflare provides a client for the Cloudflare Browser Rendering
// REST API.
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the Cloudflare v4 API.
const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client defines the Browser Rendering operations. Each method performs
// exactly one POST request.
type Client interface {
	// Content returns the rendered HTML of a page.
	Content(ctx context.Context, req PageRequest) (string, error)
	// Screenshot returns a PNG screenshot of a page.
	Screenshot(ctx context.Context, req ScreenshotRequest) ([]byte, error)
	// PDF returns a PDF rendering of a page.
	PDF(ctx context.Context, req PageRequest) ([]byte, error)
	// Snapshot returns the page HTML and a base64 screenshot in one payload.
	Snapshot(ctx context.Context, req PageRequest) (any, error)
	// Scrape returns the elements matching the requested selectors.
	Scrape(ctx context.Context, req ScrapeRequest) (any, error)
	// JSON returns structured data extracted from a page by the AI endpoint.
	JSON(ctx context.Context, req JSONRequest) (any, error)
	// Links returns all links found on a page.
	Links(ctx context.Context, req PageRequest) (any, error)
	// Markdown returns the page converted to Markdown.
	Markdown(ctx context.Context, req PageRequest) (string, error)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimiter paces outgoing requests. Every request waits on the
// limiter before it is sent.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

// WithUserAgent sets the User-Agent header of the API requests themselves.
// It does not change the user agent the remote browser uses.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiToken  string
	accountID string
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a new Browser Rendering client scoped to one account.
func NewClient(apiToken, accountID string, opts ...Option) Client {
	c := &httpClient{
		apiToken:  apiToken,
		accountID: accountID,
		baseURL:   defaultBaseURL,
		userAgent: "cbr/1.0",
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response is a successful (2xx) API response.
type response struct {
	body        []byte
	contentType string
}

func (c *httpClient) endpointURL(endpoint string) string {
	return fmt.Sprintf("%s/accounts/%s/browser-rendering/%s",
		c.baseURL, url.PathEscape(c.accountID), endpoint)
}

// post sends body to the endpoint. Non-2xx responses come back as *APIError
// without further wrapping so callers can inspect the status.
func (c *httpClient) post(ctx context.Context, endpoint string, body any) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "wait for rate limiter")
		}
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(buf))
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(endpoint, resp.StatusCode, data)
	}

	return &response{body: data, contentType: resp.Header.Get("Content-Type")}, nil
}
