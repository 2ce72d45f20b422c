package cloudflare

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorDetail is one entry of the "errors" array in a Cloudflare envelope.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Errors     []ErrorDetail
}

func newAPIError(endpoint string, status int, body []byte) *APIError {
	e := &APIError{
		Endpoint:   endpoint,
		StatusCode: status,
		Body:       string(body),
	}
	var env envelope
	if json.Unmarshal(body, &env) == nil {
		e.Errors = env.Errors
	}
	return e
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for _, d := range e.Errors {
			parts = append(parts, fmt.Sprintf("%s (code %d)", d.Message, d.Code))
		}
		msg = strings.Join(parts, "; ")
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("cloudflare: %s: HTTP %d: %s", e.Endpoint, e.StatusCode, msg)
}

// RateLimited reports whether the API rejected the call for exceeding its
// rate limit. Only these failures are worth retrying.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
