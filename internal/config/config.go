// Package config loads sheet-events settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then a .env
// file, then SHEET_EVENTS_* environment variables. Command-line flags are applied
// on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/sheet-events/internal/feed"
	"github.com/pfrederiksen/sheet-events/internal/logger"
	"github.com/pfrederiksen/sheet-events/internal/sheet"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SHEET_EVENTS_"

type FeedConfig struct {
	URL       string        `yaml:"url"`
	Transport string        `yaml:"transport"` // csv | gviz | html
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	GViz      sheet.Wrapper `yaml:"gviz"` // wrapper offsets for the gviz transport
}

type FallbackConfig struct {
	Path string `yaml:"path"` // JSON array of events; empty uses the built-in set
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | console
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Feed     FeedConfig     `yaml:"feed"`
	Fallback FallbackConfig `yaml:"fallback"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Feed: FeedConfig{
			URL:       feed.DefaultURL,
			Transport: string(feed.TransportCSV),
			Timeout:   feed.Timeout,
			UserAgent: feed.UserAgent,
			GViz:      sheet.DefaultWrapper,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped when
// empty), the dotenv file at envFile (skipped when empty or missing) and the process
// environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	if envFile != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	setString("FEED_URL", &c.Feed.URL)
	setString("FEED_TRANSPORT", &c.Feed.Transport)
	setString("FEED_USER_AGENT", &c.Feed.UserAgent)
	setString("FALLBACK_PATH", &c.Fallback.Path)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)
	setString("SERVER_ADDR", &c.Server.Addr)

	if v, ok := os.LookupEnv(EnvPrefix + "FEED_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sFEED_TIMEOUT: %w", EnvPrefix, err)
		}
		c.Feed.Timeout = d
	}

	if v, ok := os.LookupEnv(EnvPrefix + "SERVER_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	}
	return nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if strings.TrimSpace(c.Feed.URL) == "" {
		return errors.New("feed.url is required")
	}
	if _, err := feed.ParseTransport(c.Feed.Transport); err != nil {
		return err
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be positive, got %s", c.Feed.Timeout)
	}
	if c.Feed.GViz.PrefixLen < 0 || c.Feed.GViz.SuffixLen < 0 {
		return errors.New("feed.gviz offsets must not be negative")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the logger described by the log section
func (c Config) NewLogger() *logger.Logger {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		level = logger.LevelInfo
	}
	if c.Log.Format == "console" {
		return logger.NewConsole(level, os.Stderr)
	}
	return logger.New(level, os.Stderr)
}

// FeedOptions converts the feed section to feed client options
func (c Config) FeedOptions() []feed.Option {
	transport, _ := feed.ParseTransport(c.Feed.Transport)
	return []feed.Option{
		feed.WithURL(c.Feed.URL),
		feed.WithTransport(transport),
		feed.WithTimeout(c.Feed.Timeout),
		feed.WithUserAgent(c.Feed.UserAgent),
		feed.WithWrapper(c.Feed.GViz),
	}
}
