// Package resilience provides the retry-with-backoff executor used around
// every outbound Browser Rendering API call.
package resilience

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Policy controls how many times a call is attempted and how long to wait
// between attempts.
type Policy struct {
	// MaxAttempts is the total number of attempts (including the first try).
	// A value of 1 means no retries. Must be >= 1.
	MaxAttempts int

	// BaseDelay is the wait before the second attempt. Each further retry
	// doubles it: the delay before attempt k (k >= 2) is BaseDelay * 2^(k-2).
	BaseDelay time.Duration
}

// DefaultPolicy returns the policy used when nothing is configured:
// 3 attempts, 1s then 2s between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
	}
}

// Validate reports whether the policy can drive a retry loop.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return ErrInvalidPolicy
	}
	if p.BaseDelay < 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// Delay returns the wait before the given attempt (1-indexed). The first
// attempt is never delayed. Delays that would overflow saturate at the
// maximum time.Duration.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 2 {
		return 0
	}
	shift := attempt - 2
	if shift >= 63 || p.BaseDelay > time.Duration(math.MaxInt64)>>shift {
		return time.Duration(math.MaxInt64)
	}
	return p.BaseDelay << shift
}

// backoff returns the delay schedule for one Execute call. The schedule
// stops after MaxAttempts-1 retries.
func (p Policy) backoff() retry.Backoff {
	maxRetries := uint64(p.MaxAttempts - 1) // #nosec G115 - validated >= 1
	if p.BaseDelay <= 0 {
		return retry.WithMaxRetries(maxRetries, retry.BackoffFunc(func() (time.Duration, bool) {
			return 0, false
		}))
	}
	return retry.WithMaxRetries(maxRetries, retry.NewExponential(p.BaseDelay))
}

// Outcome classifies the result of a single attempt.
type Outcome int

const (
	// OutcomeUnknown is the zero value and indicates a missing classification.
	OutcomeUnknown Outcome = iota
	// OutcomeOK means the attempt produced a value.
	OutcomeOK
	// OutcomeTransient means the attempt failed in a way worth retrying.
	OutcomeTransient
	// OutcomePermanent means the attempt failed and retrying cannot help.
	OutcomePermanent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeTransient:
		return "transient"
	case OutcomePermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Attempt is what a thunk hands back to Execute: a value or an error, tagged
// with the retry decision for it.
type Attempt[T any] struct {
	Value   T
	Err     error
	Outcome Outcome
}

// Ok tags a successful attempt.
func Ok[T any](v T) Attempt[T] {
	return Attempt[T]{Value: v, Outcome: OutcomeOK}
}

// Transient tags a failed attempt that should be retried.
func Transient[T any](err error) Attempt[T] {
	return Attempt[T]{Err: err, Outcome: OutcomeTransient}
}

// Permanent tags a failed attempt that must not be retried.
func Permanent[T any](err error) Attempt[T] {
	return Attempt[T]{Err: err, Outcome: OutcomePermanent}
}

// FromResult converts a conventional (value, error) pair into an Attempt.
// A nil classify falls back to IsRateLimited.
func FromResult[T any](v T, err error, classify func(error) bool) Attempt[T] {
	if err == nil {
		return Ok(v)
	}
	if classify == nil {
		classify = IsRateLimited
	}
	if classify(err) {
		return Transient[T](err)
	}
	return Permanent[T](err)
}

// Notice describes a retry that is about to happen. It is emitted before
// each backoff sleep.
type Notice struct {
	// Attempt is the 1-indexed attempt that just failed.
	Attempt     int
	MaxAttempts int
	Delay       time.Duration
	Err         error
}

func (n Notice) String() string {
	return fmt.Sprintf("Rate limit hit (attempt %d/%d). Retrying in %.1fs …",
		n.Attempt, n.MaxAttempts, n.Delay.Seconds())
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures a single Execute call.
type Option func(*execOptions)

type execOptions struct {
	notify func(Notice)
	sleep  Sleeper
}

// WithNotifier registers a callback invoked before every backoff sleep.
func WithNotifier(fn func(Notice)) Option {
	return func(o *execOptions) {
		o.notify = fn
	}
}

// WithSleeper replaces the timer-based sleep. Tests use it to record delays
// without waiting.
func WithSleeper(s Sleeper) Option {
	return func(o *execOptions) {
		if s != nil {
			o.sleep = s
		}
	}
}

// Execute runs thunk until it returns OutcomeOK, returns OutcomePermanent, or
// policy.MaxAttempts transient failures have been seen. The error of the
// last attempt is returned unchanged.
func Execute[T any](ctx context.Context, policy Policy, thunk func(ctx context.Context) Attempt[T], opts ...Option) (T, error) {
	var zero T
	if err := policy.Validate(); err != nil {
		return zero, err
	}

	o := execOptions{sleep: sleepContext}
	for _, opt := range opts {
		opt(&o)
	}

	backoff := policy.backoff()
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		res := thunk(ctx)

		switch res.Outcome {
		case OutcomeOK:
			return res.Value, nil

		case OutcomePermanent:
			return zero, res.Err

		case OutcomeTransient:
			delay, stop := backoff.Next()
			if stop || attempt == policy.MaxAttempts {
				return zero, res.Err
			}

			if o.notify != nil {
				o.notify(Notice{
					Attempt:     attempt,
					MaxAttempts: policy.MaxAttempts,
					Delay:       delay,
					Err:         res.Err,
				})
			}

			if err := o.sleep(ctx, delay); err != nil {
				return zero, res.Err
			}

		default:
			return zero, fmt.Errorf("%w: attempt %d returned outcome %s", ErrRetryInvariant, attempt, res.Outcome)
		}
	}

	return zero, ErrRetryInvariant
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryLogger returns a notifier that logs each retry attempt at debug
// level. The user-facing notice is printed separately by the CLI.
func RetryLogger(service, operation string) func(Notice) {
	return func(n Notice) {
		zap.L().Debug("retrying operation",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", n.Attempt),
			zap.Int("max_attempts", n.MaxAttempts),
			zap.Duration("delay", n.Delay),
			zap.Error(n.Err),
		)
	}
}
