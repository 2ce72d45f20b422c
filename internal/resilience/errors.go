package resilience

import (
	"errors"

	"github.com/rotisserie/eris"
)

var (
	// ErrInvalidPolicy is returned by Execute when the policy allows no attempts.
	ErrInvalidPolicy = eris.New("resilience: policy needs at least one attempt and a non-negative delay")

	// ErrRetryInvariant is returned when the retry loop ends without a value
	// or an error to report. Reaching it is a bug.
	ErrRetryInvariant = eris.New("resilience: retry loop exhausted without a result")
)

// rateLimited is implemented by errors that know whether they signal
// upstream rate limiting.
type rateLimited interface {
	RateLimited() bool
}

// IsRateLimited returns true if any error in the chain reports itself as
// rate limited. This is the only failure Execute retries by default.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var rl rateLimited
	if errors.As(err, &rl) {
		return rl.RateLimited()
	}
	return false
}

// ClassifyError categorizes an error as "transient" or "permanent".
func ClassifyError(err error) string {
	if IsRateLimited(err) {
		return "transient"
	}
	return "permanent"
}
