package render

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Request carries the user input for one render.
type Request struct {
	URL string
	// Selectors are required by Scrape and ignored elsewhere.
	Selectors []string
	// Prompt is an optional instruction for JSON.
	Prompt string
	// FullPage captures the whole scrollable page for Screenshot.
	FullPage bool
	// UserAgent overrides the remote browser's user agent.
	UserAgent string
}

// ErrMissingURL is returned when a request has no URL.
var ErrMissingURL = eris.New("a URL is required")

// ErrMissingSelector is returned when a scrape request has no selector.
var ErrMissingSelector = eris.New("scrape requires at least one CSS selector")

// Validate checks req for endpoint e and normalizes its URL.
func (r *Request) Validate(e Endpoint) error {
	r.URL = NormalizeURL(r.URL)
	if r.URL == "" {
		return ErrMissingURL
	}

	if e == Scrape {
		selectors := make([]string, 0, len(r.Selectors))
		for _, s := range r.Selectors {
			if s = strings.TrimSpace(s); s != "" {
				selectors = append(selectors, s)
			}
		}
		r.Selectors = selectors
		if len(r.Selectors) == 0 {
			return ErrMissingSelector
		}
	}
	return nil
}

// NormalizeURL trims whitespace and prepends https:// when no scheme is
// present.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}
	return u
}
