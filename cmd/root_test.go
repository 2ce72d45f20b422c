package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/browser-render-cli/internal/config"
)

// clearCredentials unsets the credential variables for the test and
// restores them afterwards.
func clearCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvAPIToken, config.EnvAccountID, "CBR_CLOUDFLARE_API_TOKEN", "CBR_CLOUDFLARE_ACCOUNT_ID"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func findCommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("subcommand %q not found", name)
	return nil
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"content", "screenshot", "pdf", "snapshot", "scrape", "json", "links", "markdown", "version"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "cbr", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, config.EnvAPIToken)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"debug", "no-color", "config", "format", "user-agent", "retries", "retry-delay"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "root should have --%s", name)
	}
}

func TestEndpointCommands_OutputDefaults(t *testing.T) {
	tests := map[string]string{
		"screenshot": "screenshot.png",
		"pdf":        "output.pdf",
		"content":    "",
		"markdown":   "",
		"links":      "",
	}
	for name, want := range tests {
		flag := findCommand(t, name).Flags().Lookup("output")
		require.NotNil(t, flag, "%s should have --output", name)
		assert.Equal(t, "o", flag.Shorthand)
		assert.Equal(t, want, flag.DefValue, name)
	}
}

func TestEndpointCommands_SpecificFlags(t *testing.T) {
	assert.NotNil(t, findCommand(t, "json").Flags().Lookup("prompt"))
	assert.NotNil(t, findCommand(t, "screenshot").Flags().Lookup("full-page"))
	assert.Nil(t, findCommand(t, "content").Flags().Lookup("full-page"))
}

func TestEndpointCommands_Args(t *testing.T) {
	content := findCommand(t, "content")
	assert.Error(t, content.Args(content, nil))
	assert.NoError(t, content.Args(content, []string{"example.com"}))
	assert.Error(t, content.Args(content, []string{"a", "b"}))

	scrape := findCommand(t, "scrape")
	assert.Error(t, scrape.Args(scrape, []string{"example.com"}), "scrape needs a selector")
	assert.NoError(t, scrape.Args(scrape, []string{"example.com", "h1", "p"}))
}

func TestEndpointCommands_NeedAPI(t *testing.T) {
	for _, name := range []string{"content", "scrape", "json"} {
		assert.Equal(t, "true", findCommand(t, name).Annotations[annotationNeedsAPI], name)
	}
	assert.Empty(t, versionCmd.Annotations[annotationNeedsAPI])
}

func TestApplyFlagOverrides(t *testing.T) {
	oldRetries, oldDelay, oldFormat, oldDebug := flagRetries, flagRetryDelay, flagFormat, flagDebug
	t.Cleanup(func() {
		flagRetries, flagRetryDelay, flagFormat, flagDebug = oldRetries, oldDelay, oldFormat, oldDebug
	})

	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&flagRetries, "retries", 0, "")
	cmd.Flags().DurationVar(&flagRetryDelay, "retry-delay", 0, "")
	cmd.Flags().StringVar(&flagFormat, "format", "", "")
	require.NoError(t, cmd.Flags().Set("retries", "5"))
	require.NoError(t, cmd.Flags().Set("retry-delay", "250ms"))
	require.NoError(t, cmd.Flags().Set("format", "yaml"))
	flagDebug = true

	c := &config.Config{
		Retry:  config.RetryConfig{MaxAttempts: 3, BaseDelayMs: 1000},
		Output: config.OutputConfig{Format: "json"},
		Log:    config.LogConfig{Level: "warn"},
	}
	applyFlagOverrides(cmd, c)

	assert.Equal(t, 5, c.Retry.MaxAttempts)
	assert.Equal(t, 250, c.Retry.BaseDelayMs)
	assert.Equal(t, "yaml", c.Output.Format)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestApplyFlagOverrides_UnchangedFlagsKeepConfig(t *testing.T) {
	oldDebug := flagDebug
	flagDebug = false
	t.Cleanup(func() { flagDebug = oldDebug })

	cmd := &cobra.Command{}
	var retries int
	var delay time.Duration
	cmd.Flags().IntVar(&retries, "retries", 0, "")
	cmd.Flags().DurationVar(&delay, "retry-delay", 0, "")

	c := &config.Config{Retry: config.RetryConfig{MaxAttempts: 3, BaseDelayMs: 1000}, Log: config.LogConfig{Level: "warn"}}
	applyFlagOverrides(cmd, c)

	assert.Equal(t, 3, c.Retry.MaxAttempts)
	assert.Equal(t, 1000, c.Retry.BaseDelayMs)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestApplyFlagOverrides_SubMillisecondDelayRoundsUp(t *testing.T) {
	oldDelay := flagRetryDelay
	t.Cleanup(func() { flagRetryDelay = oldDelay })

	cmd := &cobra.Command{}
	cmd.Flags().DurationVar(&flagRetryDelay, "retry-delay", 0, "")
	require.NoError(t, cmd.Flags().Set("retry-delay", "500us"))

	c := &config.Config{Retry: config.RetryConfig{MaxAttempts: 3, BaseDelayMs: 1000}}
	applyFlagOverrides(cmd, c)

	assert.Equal(t, 1, c.Retry.BaseDelayMs)
}

func TestWholeMillis(t *testing.T) {
	cases := map[time.Duration]int{
		0:                       0,
		time.Nanosecond:         1,
		500 * time.Microsecond:  1,
		time.Millisecond:        1,
		1500 * time.Microsecond: 2,
		250 * time.Millisecond:  250,
		-500 * time.Microsecond: -1,
	}
	for d, want := range cases {
		assert.Equal(t, want, wholeMillis(d), "duration %v", d)
	}
}

func TestRootCmd_PersistentPreRunE_WithValidConfig(t *testing.T) {
	dir := chdirTemp(t)
	clearCredentials(t)
	configContent := `
retry:
  max_attempts: 4
log:
  level: info
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cbr.yaml"), []byte(configContent), 0o644))

	oldCfg := cfg
	cfg = nil
	defer func() { cfg = oldCfg }()

	// version does not call the API, so missing credentials are fine.
	err := rootCmd.PersistentPreRunE(versionCmd, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestRootCmd_PersistentPreRunE_MissingCredentials(t *testing.T) {
	chdirTemp(t)
	clearCredentials(t)

	oldCfg, oldApp := cfg, application
	defer func() { cfg, application = oldCfg, oldApp }()
	application = nil

	err := rootCmd.PersistentPreRunE(findCommand(t, "markdown"), nil)

	require.Error(t, err)
	var cfgErr *config.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{config.EnvAPIToken, config.EnvAccountID}, cfgErr.Missing)
	assert.Nil(t, application, "no client is wired without credentials")
}

func TestRootCmd_PersistentPreRunE_BadLogLevel(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CBR_LOG_LEVEL", "loud")

	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	err := rootCmd.PersistentPreRunE(versionCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init logger")
}
