// Package render shapes one Browser Rendering request per endpoint, runs it
// under the retry policy and tags the payload for the output dispatcher.
package render

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Endpoint names a Browser Rendering API endpoint.
type Endpoint string

// Supported endpoints.
const (
	Content    Endpoint = "content"
	Screenshot Endpoint = "screenshot"
	PDF        Endpoint = "pdf"
	Snapshot   Endpoint = "snapshot"
	Scrape     Endpoint = "scrape"
	JSON       Endpoint = "json"
	Links      Endpoint = "links"
	Markdown   Endpoint = "markdown"
)

var endpoints = []Endpoint{Content, Screenshot, PDF, Snapshot, Scrape, JSON, Links, Markdown}

var descriptions = map[Endpoint]string{
	Content:    "Fetch the rendered HTML of a page",
	Screenshot: "Capture a PNG screenshot of a page",
	PDF:        "Render a page to PDF",
	Snapshot:   "Fetch HTML and a screenshot in one call",
	Scrape:     "Extract elements matching CSS selectors",
	JSON:       "Extract structured data with AI",
	Links:      "List the links found on a page",
	Markdown:   "Convert a page to Markdown",
}

// Endpoints returns every endpoint in menu order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(endpoints))
	copy(out, endpoints)
	return out
}

// ParseEndpoint resolves a case-insensitive endpoint name.
func ParseEndpoint(s string) (Endpoint, error) {
	name := Endpoint(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := descriptions[name]; !ok {
		return "", eris.Errorf("unknown endpoint %q", s)
	}
	return name, nil
}

// Description is a one-line summary used in help text and the menu.
func (e Endpoint) Description() string {
	return descriptions[e]
}

// DefaultOutput is the file a result is saved to when no output path is
// given interactively. Only binary endpoints have one.
func (e Endpoint) DefaultOutput() string {
	switch e {
	case Screenshot:
		return "screenshot.png"
	case PDF:
		return "output.pdf"
	default:
		return ""
	}
}
