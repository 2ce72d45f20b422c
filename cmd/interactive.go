package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/sells-group/browser-render-cli/internal/render"
)

// prompter reads one line of input. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// selection is everything the menu collects for one render.
type selection struct {
	endpoint render.Endpoint
	request  render.Request
	output   string
}

// runInteractive shows the endpoint menu on the terminal and runs the
// chosen render.
func runInteractive(ctx context.Context, a *app, out io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeEndpoint)

	return interactive(ctx, line, a, out)
}

func interactive(ctx context.Context, p prompter, a *app, out io.Writer) error {
	sel, err := promptSelection(p, out)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}
	if err != nil {
		return err
	}
	return a.run(ctx, sel.endpoint, sel.request, sel.output)
}

func promptSelection(p prompter, out io.Writer) (selection, error) {
	var sel selection

	fmt.Fprintln(out, "Select an endpoint:")
	for i, e := range render.Endpoints() {
		fmt.Fprintf(out, "  %d) %-10s %s\n", i+1, e, e.Description())
	}

	for sel.endpoint == "" {
		in, err := p.Prompt(fmt.Sprintf("Endpoint [1-%d]: ", len(render.Endpoints())))
		if err != nil {
			return sel, err
		}
		e, err := parseChoice(in)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		sel.endpoint = e
	}

	for sel.request.URL == "" {
		in, err := p.Prompt("URL: ")
		if err != nil {
			return sel, err
		}
		sel.request.URL = render.NormalizeURL(in)
	}

	switch sel.endpoint {
	case render.Scrape:
		for len(sel.request.Selectors) == 0 {
			in, err := p.Prompt("CSS selector: ")
			if err != nil {
				return sel, err
			}
			if s := strings.TrimSpace(in); s != "" {
				sel.request.Selectors = []string{s}
			}
		}
	case render.JSON:
		in, err := p.Prompt("Prompt (optional): ")
		if err != nil {
			return sel, err
		}
		sel.request.Prompt = strings.TrimSpace(in)
	case render.Screenshot:
		in, err := p.Prompt("Full page? [y/N]: ")
		if err != nil {
			return sel, err
		}
		sel.request.FullPage = isYes(in)
	}

	def := sel.endpoint.DefaultOutput()
	label := "Output file (blank for console): "
	if def != "" {
		label = fmt.Sprintf("Output file [%s]: ", def)
	}
	in, err := p.Prompt(label)
	if err != nil {
		return sel, err
	}
	sel.output = strings.TrimSpace(in)
	if sel.output == "" {
		sel.output = def
	}
	sel.request.UserAgent = flagUserAgent

	return sel, nil
}

// parseChoice accepts a menu number or an endpoint name.
func parseChoice(in string) (render.Endpoint, error) {
	in = strings.TrimSpace(in)
	if n, err := strconv.Atoi(in); err == nil {
		eps := render.Endpoints()
		if n < 1 || n > len(eps) {
			return "", fmt.Errorf("choose a number between 1 and %d", len(eps))
		}
		return eps[n-1], nil
	}
	return render.ParseEndpoint(in)
}

func completeEndpoint(line string) []string {
	var out []string
	prefix := strings.ToLower(strings.TrimSpace(line))
	for _, e := range render.Endpoints() {
		if strings.HasPrefix(string(e), prefix) {
			out = append(out, string(e))
		}
	}
	return out
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
