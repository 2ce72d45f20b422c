package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/sells-group/browser-render-cli/internal/config"
	"github.com/sells-group/browser-render-cli/internal/output"
)

// annotationNeedsAPI marks commands that call the rendering API.
const annotationNeedsAPI = "cbr/needs-api"

var (
	cfg         *config.Config
	application *app

	flagDebug      bool
	flagNoColor    bool
	flagConfig     string
	flagFormat     string
	flagUserAgent  string
	flagRetries    int
	flagRetryDelay time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "cbr",
	Short: "Cloudflare Browser Rendering from the command line",
	Long: "Renders web pages with the Cloudflare Browser Rendering API: fetch HTML or Markdown, " +
		"take screenshots and PDFs, scrape elements, extract links or structured JSON.\n\n" +
		"Credentials are read from CLOUDFLARE_API_TOKEN and CLOUDFLARE_ACCOUNT_ID (a .env file " +
		"in the working directory is loaded first). Run without a command on a terminal for an " +
		"interactive menu.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(flagConfig)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		applyFlagOverrides(cmd, c)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		if cmd.Annotations[annotationNeedsAPI] == "true" {
			a, err := newApp(cfg, newClient(cfg), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			application = a
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return cmd.Help()
		}
		a, err := newApp(cfg, newClient(cfg), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return runInteractive(cmd.Context(), a, cmd.OutOrStdout())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "show full error traces and debug logs")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable coloured output")
	pf.StringVar(&flagConfig, "config", "", "config file (default ./cbr.yaml)")
	pf.StringVar(&flagFormat, "format", "", "structured output format: json or yaml")
	pf.StringVar(&flagUserAgent, "user-agent", "", "user agent for the remote browser")
	pf.IntVar(&flagRetries, "retries", 0, "maximum attempts for rate-limited calls")
	pf.DurationVar(&flagRetryDelay, "retry-delay", 0, "base delay between rate-limited attempts")
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("retries") {
		c.Retry.MaxAttempts = flagRetries
	}
	if flags.Changed("retry-delay") {
		c.Retry.BaseDelayMs = wholeMillis(flagRetryDelay)
	}
	if flags.Changed("format") {
		c.Output.Format = flagFormat
	}
	if flagDebug {
		c.Log.Level = "debug"
	}
}

// wholeMillis converts d to milliseconds, rounding away from zero so a
// non-zero delay never collapses to 0.
func wholeMillis(d time.Duration) int {
	switch {
	case d > 0:
		return int((d + time.Millisecond - 1) / time.Millisecond)
	case d < 0:
		return int((d - time.Millisecond + 1) / time.Millisecond)
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err, flagDebug, output.ColorEnabled(os.Stderr, flagNoColor))
		os.Exit(1)
	}
}
