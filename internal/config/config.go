package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/sells-group/browser-render-cli/internal/output"
	"github.com/sells-group/browser-render-cli/internal/resilience"
)

// Environment variables holding the Cloudflare credentials.
const (
	EnvAPIToken  = "CLOUDFLARE_API_TOKEN"
	EnvAccountID = "CLOUDFLARE_ACCOUNT_ID"
)

// Config holds the full application configuration.
type Config struct {
	Cloudflare CloudflareConfig `yaml:"cloudflare" mapstructure:"cloudflare"`
	Retry      RetryConfig      `yaml:"retry" mapstructure:"retry"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// CloudflareConfig configures the Browser Rendering API client.
type CloudflareConfig struct {
	APIToken    string  `yaml:"api_token" mapstructure:"api_token"`
	AccountID   string  `yaml:"account_id" mapstructure:"account_id"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/sec, 0 = unlimited
	RateBurst   int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// RetryConfig configures the backoff applied to rate-limited calls.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	BaseDelayMs int `yaml:"base_delay_ms" mapstructure:"base_delay_ms"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // json or yaml
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from a .env file, an optional YAML file and the
// environment. An empty path looks for cbr.yaml in the working directory;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	// Variables already in the environment win over .env entries.
	if err := gotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cbr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("CBR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("cloudflare.api_token", "CBR_CLOUDFLARE_API_TOKEN", EnvAPIToken)
	_ = v.BindEnv("cloudflare.account_id", "CBR_CLOUDFLARE_ACCOUNT_ID", EnvAccountID)

	// Defaults
	v.SetDefault("cloudflare.api_token", "")
	v.SetDefault("cloudflare.account_id", "")
	v.SetDefault("cloudflare.base_url", "https://api.cloudflare.com/client/v4")
	v.SetDefault("cloudflare.timeout_secs", 60)
	v.SetDefault("cloudflare.rate_limit", 0)
	v.SetDefault("cloudflare.rate_burst", 1)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay_ms", 1000)
	v.SetDefault("output.format", "json")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ConfigurationError reports missing credentials or invalid settings. It is
// returned before any remote call is made.
type ConfigurationError struct {
	// Missing lists the environment variables that must be set.
	Missing []string
	// Invalid lists settings with unusable values.
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", ")+
			" (set them in the environment or a .env file)")
	}
	parts = append(parts, e.Invalid...)
	return "config: " + strings.Join(parts, "; ")
}

// Validate checks that credentials are present and every setting is usable.
func (c *Config) Validate() error {
	var e ConfigurationError

	if strings.TrimSpace(c.Cloudflare.APIToken) == "" {
		e.Missing = append(e.Missing, EnvAPIToken)
	}
	if strings.TrimSpace(c.Cloudflare.AccountID) == "" {
		e.Missing = append(e.Missing, EnvAccountID)
	}

	if c.Cloudflare.BaseURL == "" {
		e.Invalid = append(e.Invalid, "cloudflare.base_url is required")
	}
	if c.Cloudflare.TimeoutSecs <= 0 {
		e.Invalid = append(e.Invalid, "cloudflare.timeout_secs must be positive")
	}
	if c.Cloudflare.RateLimit < 0 {
		e.Invalid = append(e.Invalid, "cloudflare.rate_limit must not be negative")
	}
	if c.Cloudflare.RateLimit > 0 && c.Cloudflare.RateBurst < 1 {
		e.Invalid = append(e.Invalid, "cloudflare.rate_burst must be at least 1")
	}
	if c.Retry.MaxAttempts < 1 {
		e.Invalid = append(e.Invalid, "retry.max_attempts must be at least 1")
	}
	if c.Retry.BaseDelayMs < 0 {
		e.Invalid = append(e.Invalid, "retry.base_delay_ms must not be negative")
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		e.Invalid = append(e.Invalid, "output.format must be json or yaml")
	}

	if len(e.Missing) > 0 || len(e.Invalid) > 0 {
		return &e
	}
	return nil
}

// RetryPolicy converts the retry settings into an executor policy.
func (c *Config) RetryPolicy() resilience.Policy {
	return resilience.FromRetryConfig(c.Retry.MaxAttempts, c.Retry.BaseDelayMs)
}

// Timeout returns the per-request HTTP timeout.
func (c CloudflareConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Limiter returns a request limiter, or nil when requests are unpaced.
func (c CloudflareConfig) Limiter() *rate.Limiter {
	if c.RateLimit <= 0 {
		return nil
	}
	burst := c.RateBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit), burst)
}

// InitLogger initializes the global zap logger. Logs go to stderr so they
// never mix with rendered output on stdout.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.DisableStacktrace = true

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
