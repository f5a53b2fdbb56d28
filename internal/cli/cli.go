package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/sheet-events/internal/config"
	"github.com/pfrederiksen/sheet-events/internal/event"
	"github.com/pfrederiksen/sheet-events/internal/fallback"
	"github.com/pfrederiksen/sheet-events/internal/feed"
	"github.com/pfrederiksen/sheet-events/internal/logger"
	"github.com/pfrederiksen/sheet-events/internal/metrics"
	"github.com/pfrederiksen/sheet-events/internal/session"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagEnvFile   string
	flagURL       string
	flagTransport string
	flagFormat    string
	flagVerbose   bool
)

// app carries what every subcommand needs after configuration is loaded
type app struct {
	cfg     config.Config
	format  OutputFormat
	metrics *metrics.Metrics
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sheet-events",
		Short: "Browse campus events published from a Google Sheet",
		Long: `A CLI for the campus events sheet.
Fetches the published sheet once per command, normalizes every row into an event
and falls back to a built-in list when the sheet cannot be read.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	flags.StringVar(&flagEnvFile, "env-file", ".env", "Path to a .env file (ignored when missing)")
	flags.StringVar(&flagURL, "url", "", "Feed URL (overrides config)")
	flags.StringVar(&flagTransport, "transport", "", "Feed transport: csv, gviz or html (overrides config)")
	flags.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	flags.BoolVar(&flagVerbose, "verbose", false, "Enable verbose output and debug logging")

	cmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newICSCmd(a),
		newServeCmd(a),
	)
	return cmd
}

// setup loads configuration and applies command-line overrides
func (a *app) setup(cmd *cobra.Command) error {
	format, err := ParseOutputFormat(flagFormat)
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := config.Load(flagConfig, flagEnvFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Feed.URL = flagURL
	}
	if flags.Changed("transport") {
		cfg.Feed.Transport = flagTransport
	}
	if flagVerbose {
		cfg.Log.Level = string(logger.LevelDebug)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.metrics = metrics.New()
	logger.SetDefault(cfg.NewLogger())

	logger.Debug("Configuration loaded", logger.Fields{
		"url":       cfg.Feed.URL,
		"transport": cfg.Feed.Transport,
	})
	return nil
}

// newSession builds a session over the configured feed
func (a *app) newSession() *session.Session {
	opts := append(a.cfg.FeedOptions(), feed.WithMetrics(a.metrics))
	client := feed.New(opts...)
	return session.New(client, a.fallbackEvents, session.WithMetrics(a.metrics))
}

// fallbackEvents reads the configured fallback file, or the built-in list
func (a *app) fallbackEvents() []*event.Event {
	path := a.cfg.Fallback.Path
	if path == "" {
		return fallback.Default()
	}
	events, err := fallback.Load(path)
	if err != nil {
		logger.Error("Failed to load fallback events, using built-in list", logger.Fields{
			"path": path,
		}, err)
		return fallback.Default()
	}
	return events
}

// signalContext is canceled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
