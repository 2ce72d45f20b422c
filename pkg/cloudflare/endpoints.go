package cloudflare

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// PageRequest is the body shared by every endpoint.
type PageRequest struct {
	URL string `json:"url"`
	// UserAgent overrides the user agent of the remote browser.
	UserAgent string `json:"userAgent,omitempty"`
}

// ScreenshotOptions controls how the page is captured.
type ScreenshotOptions struct {
	FullPage bool `json:"fullPage,omitempty"`
}

// ScreenshotRequest is the body for POST /screenshot.
type ScreenshotRequest struct {
	PageRequest
	ScreenshotOptions *ScreenshotOptions `json:"screenshotOptions,omitempty"`
}

// Element selects page elements for the scrape endpoint.
type Element struct {
	Selector string `json:"selector"`
}

// ScrapeRequest is the body for POST /scrape.
type ScrapeRequest struct {
	PageRequest
	Elements []Element `json:"elements"`
}

// ResponseFormat constrains the output of the JSON endpoint.
type ResponseFormat struct {
	Type       string         `json:"type"`
	JSONSchema map[string]any `json:"json_schema,omitempty"`
}

// JSONRequest is the body for POST /json. The API requires a prompt or a
// response format; without a prompt the permissive default format is sent.
type JSONRequest struct {
	PageRequest
	Prompt         string          `json:"prompt,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// DefaultResponseFormat accepts any JSON object.
func DefaultResponseFormat() *ResponseFormat {
	return &ResponseFormat{
		Type:       "json_schema",
		JSONSchema: map[string]any{"type": "object"},
	}
}

// envelope is the standard Cloudflare v4 response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Errors  []ErrorDetail   `json:"errors"`
}

func (c *httpClient) Content(ctx context.Context, req PageRequest) (string, error) {
	resp, err := c.post(ctx, "content", req)
	if err != nil {
		return "", wrap(err, "content")
	}
	return resp.text(), nil
}

func (c *httpClient) Screenshot(ctx context.Context, req ScreenshotRequest) ([]byte, error) {
	resp, err := c.post(ctx, "screenshot", req)
	if err != nil {
		return nil, wrap(err, "screenshot")
	}
	return resp.body, nil
}

func (c *httpClient) PDF(ctx context.Context, req PageRequest) ([]byte, error) {
	resp, err := c.post(ctx, "pdf", req)
	if err != nil {
		return nil, wrap(err, "pdf")
	}
	return resp.body, nil
}

func (c *httpClient) Snapshot(ctx context.Context, req PageRequest) (any, error) {
	return c.structured(ctx, "snapshot", req)
}

func (c *httpClient) Scrape(ctx context.Context, req ScrapeRequest) (any, error) {
	if len(req.Elements) == 0 {
		return nil, eris.New("cloudflare: scrape: at least one selector is required")
	}
	return c.structured(ctx, "scrape", req)
}

func (c *httpClient) JSON(ctx context.Context, req JSONRequest) (any, error) {
	if req.Prompt == "" && req.ResponseFormat == nil {
		req.ResponseFormat = DefaultResponseFormat()
	}
	return c.structured(ctx, "json", req)
}

func (c *httpClient) Links(ctx context.Context, req PageRequest) (any, error) {
	return c.structured(ctx, "links", req)
}

func (c *httpClient) Markdown(ctx context.Context, req PageRequest) (string, error) {
	resp, err := c.post(ctx, "markdown", req)
	if err != nil {
		return "", wrap(err, "markdown")
	}
	return resp.text(), nil
}

// structured posts body and decodes the whole response as JSON.
func (c *httpClient) structured(ctx context.Context, endpoint string, body any) (any, error) {
	resp, err := c.post(ctx, endpoint, body)
	if err != nil {
		return nil, wrap(err, endpoint)
	}

	var v any
	if err := json.Unmarshal(resp.body, &v); err != nil {
		return nil, eris.Wrapf(err, "cloudflare: %s: decode response", endpoint)
	}
	return v, nil
}

// text returns the envelope's string result when the body is a JSON
// envelope, and the raw body otherwise.
func (r *response) text() string {
	if !strings.Contains(r.contentType, "json") && !json.Valid(r.body) {
		return string(r.body)
	}

	var env envelope
	if err := json.Unmarshal(r.body, &env); err != nil || len(env.Result) == 0 {
		return string(r.body)
	}

	var s string
	if err := json.Unmarshal(env.Result, &s); err != nil {
		return string(r.body)
	}
	return s
}

// wrap adds the endpoint to transport errors. API errors already name the
// endpoint and are returned as they are.
func wrap(err error, endpoint string) error {
	if _, ok := err.(*APIError); ok {
		return err
	}
	return eris.Wrapf(err, "cloudflare: %s", endpoint)
}
