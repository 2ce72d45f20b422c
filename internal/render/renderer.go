package render

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/browser-render-cli/internal/output"
	"github.com/sells-group/browser-render-cli/internal/resilience"
	"github.com/sells-group/browser-render-cli/pkg/cloudflare"
)

// Renderer runs one endpoint call per Render under a retry policy.
type Renderer struct {
	client cloudflare.Client
	policy resilience.Policy
	notify []func(resilience.Notice)
	sleep  resilience.Sleeper
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNotifier adds a callback invoked before each retry delay.
func WithNotifier(fn func(resilience.Notice)) Option {
	return func(r *Renderer) {
		r.notify = append(r.notify, fn)
	}
}

// WithSleeper replaces the backoff sleep.
func WithSleeper(s resilience.Sleeper) Option {
	return func(r *Renderer) {
		r.sleep = s
	}
}

// New creates a Renderer around an already constructed client.
func New(client cloudflare.Client, policy resilience.Policy, opts ...Option) *Renderer {
	r := &Renderer{client: client, policy: policy}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render validates req, calls endpoint e and returns the tagged payload.
// Rate-limited calls are retried; every other error is returned at once.
func (r *Renderer) Render(ctx context.Context, e Endpoint, req Request) (output.Result, error) {
	if _, ok := descriptions[e]; !ok {
		return output.Result{}, eris.Errorf("unknown endpoint %q", string(e))
	}
	if err := req.Validate(e); err != nil {
		return output.Result{}, err
	}

	log := zap.L().With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("endpoint", string(e)),
		zap.String("url", req.URL),
	)
	start := time.Now()
	log.Debug("render: calling endpoint")

	res, err := resilience.Execute(ctx, r.policy,
		func(ctx context.Context) resilience.Attempt[output.Result] {
			v, err := r.call(ctx, e, req)
			return resilience.FromResult(v, err, resilience.IsRateLimited)
		},
		r.execOptions(e)...,
	)
	if err != nil {
		log.Debug("render: failed",
			zap.Error(err),
			zap.String("class", resilience.ClassifyError(err)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return output.Result{}, err
	}

	log.Debug("render: done",
		zap.Stringer("kind", res.Kind),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (r *Renderer) execOptions(e Endpoint) []resilience.Option {
	logRetry := resilience.RetryLogger("cloudflare", string(e))
	notify := func(n resilience.Notice) {
		logRetry(n)
		for _, fn := range r.notify {
			fn(n)
		}
	}

	opts := []resilience.Option{resilience.WithNotifier(notify)}
	if r.sleep != nil {
		opts = append(opts, resilience.WithSleeper(r.sleep))
	}
	return opts
}

// call performs exactly one API request and tags its payload. Decoded JSON
// payloads are tagged by their runtime shape.
func (r *Renderer) call(ctx context.Context, e Endpoint, req Request) (output.Result, error) {
	page := cloudflare.PageRequest{URL: req.URL, UserAgent: req.UserAgent}

	switch e {
	case Content:
		s, err := r.client.Content(ctx, page)
		return output.Text(s), err
	case Markdown:
		s, err := r.client.Markdown(ctx, page)
		return output.Text(s), err
	case Screenshot:
		sr := cloudflare.ScreenshotRequest{PageRequest: page}
		if req.FullPage {
			sr.ScreenshotOptions = &cloudflare.ScreenshotOptions{FullPage: true}
		}
		b, err := r.client.Screenshot(ctx, sr)
		return output.Binary(b), err
	case PDF:
		b, err := r.client.PDF(ctx, page)
		return output.Binary(b), err
	case Snapshot:
		v, err := r.client.Snapshot(ctx, page)
		return output.Classify(v), err
	case Scrape:
		elements := make([]cloudflare.Element, 0, len(req.Selectors))
		for _, s := range req.Selectors {
			elements = append(elements, cloudflare.Element{Selector: s})
		}
		v, err := r.client.Scrape(ctx, cloudflare.ScrapeRequest{PageRequest: page, Elements: elements})
		return output.Classify(v), err
	case JSON:
		v, err := r.client.JSON(ctx, cloudflare.JSONRequest{PageRequest: page, Prompt: req.Prompt})
		return output.Classify(v), err
	case Links:
		v, err := r.client.Links(ctx, page)
		return output.Classify(v), err
	default:
		return output.Result{}, eris.Errorf("unknown endpoint %q", string(e))
	}
}
