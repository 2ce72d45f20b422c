package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"

	"github.com/sells-group/browser-render-cli/internal/config"
	"github.com/sells-group/browser-render-cli/internal/output"
	"github.com/sells-group/browser-render-cli/internal/render"
	"github.com/sells-group/browser-render-cli/internal/resilience"
	"github.com/sells-group/browser-render-cli/pkg/cloudflare"
)

// app holds the dependencies shared by every endpoint command.
type app struct {
	renderer   *render.Renderer
	dispatcher *output.Dispatcher
	stderr     io.Writer
	warn       *color.Color
}

// newClient builds the API client from config. Tests replace it.
var newClient = func(c *config.Config) cloudflare.Client {
	opts := []cloudflare.Option{
		cloudflare.WithBaseURL(c.Cloudflare.BaseURL),
		cloudflare.WithHTTPClient(&http.Client{Timeout: c.Cloudflare.Timeout()}),
		cloudflare.WithUserAgent("cbr/" + version),
	}
	if l := c.Cloudflare.Limiter(); l != nil {
		opts = append(opts, cloudflare.WithRateLimiter(l))
	}
	return cloudflare.NewClient(c.Cloudflare.APIToken, c.Cloudflare.AccountID, opts...)
}

// newApp validates c and wires the renderer and dispatcher around client.
// Configuration errors surface here, before any request is sent.
func newApp(c *config.Config, client cloudflare.Client, stdout, stderr io.Writer) (*app, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	format, err := output.ParseFormat(c.Output.Format)
	if err != nil {
		return nil, err
	}

	errColor := output.ColorEnabled(stderr, flagNoColor)
	warn := color.New(color.FgYellow)
	if errColor {
		warn.EnableColor()
	} else {
		warn.DisableColor()
	}

	renderer := render.New(client, c.RetryPolicy(),
		render.WithNotifier(func(n resilience.Notice) {
			fmt.Fprintln(stderr, warn.Sprint(n.String()))
		}),
	)
	dispatcher := output.NewDispatcher(
		output.WithWriters(stdout, stderr),
		output.WithColor(output.ColorEnabled(stdout, flagNoColor), errColor),
		output.WithFormat(format),
	)
	return &app{renderer: renderer, dispatcher: dispatcher, stderr: stderr, warn: warn}, nil
}

// run renders one request and hands the result to the dispatcher.
func (a *app) run(ctx context.Context, e render.Endpoint, req render.Request, target string) error {
	res, err := a.renderer.Render(ctx, e, req)
	if err != nil {
		return err
	}
	if res.Kind == output.KindText {
		if c := render.DetectChallenge(res.Text); c != render.ChallengeNone {
			fmt.Fprintln(a.stderr, a.warn.Sprint(c.Warning()))
		}
	}
	return a.dispatcher.Dispatch(res, target)
}
