package resilience

import (
	"time"
)

// FromRetryConfig converts config values to a Policy. A non-positive attempt
// count or a negative delay keeps the default.
func FromRetryConfig(maxAttempts, baseDelayMs int) Policy {
	p := DefaultPolicy()
	if maxAttempts > 0 {
		p.MaxAttempts = maxAttempts
	}
	if baseDelayMs >= 0 {
		p.BaseDelay = time.Duration(baseDelayMs) * time.Millisecond
	}
	return p
}
