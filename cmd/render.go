package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/browser-render-cli/internal/render"
)

// endpointFlags are the per-command flag values of one endpoint command.
type endpointFlags struct {
	output   string
	prompt   string
	fullPage bool
}

func newEndpointCmd(e render.Endpoint) *cobra.Command {
	var f endpointFlags

	cmd := &cobra.Command{
		Use:         string(e) + " URL",
		Short:       e.Description(),
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationNeedsAPI: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := render.Request{
				URL:       args[0],
				Prompt:    f.prompt,
				FullPage:  f.fullPage,
				UserAgent: flagUserAgent,
			}
			if e == render.Scrape {
				req.Selectors = args[1:]
			}
			return application.run(cmd.Context(), e, req, f.output)
		},
	}

	outputHelp := "write the result to this file instead of the console"
	if e.DefaultOutput() != "" {
		outputHelp = `write the result to this file ("" prints the byte count only)`
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", e.DefaultOutput(), outputHelp)

	switch e {
	case render.Scrape:
		cmd.Use = "scrape URL SELECTOR [SELECTOR...]"
		cmd.Args = cobra.MinimumNArgs(2)
		cmd.Example = "  cbr scrape example.com h1 'a[href]'"
	case render.JSON:
		cmd.Flags().StringVarP(&f.prompt, "prompt", "p", "", "instruction describing the data to extract")
		cmd.Example = "  cbr json example.com --prompt 'list every heading'"
	case render.Screenshot:
		cmd.Flags().BoolVar(&f.fullPage, "full-page", false, "capture the full scrollable page")
	}

	return cmd
}

func init() {
	for _, e := range render.Endpoints() {
		rootCmd.AddCommand(newEndpointCmd(e))
	}
}
