/*
Package commands implements the CLI command structure for tqdm. It provides
the root command and the demo, bench, lines, themes and version subcommands,
with flag handling layered over the environment configuration.
*/
package commands

import (
	"fmt"

	"github.com/mevatron/gotqdm/cmd/tqdm/app"
	"github.com/mevatron/gotqdm/internal/config"
	"github.com/mevatron/gotqdm/pkg/logger"
	"github.com/spf13/cobra"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Config     *config.Config
	ConfigPath string
	Verbose    int

	Width        int
	Theme        string
	Label        string
	Estimator    string
	Alpha        float64
	ThemeFile    string
	NoColor      bool
	NoTransition bool
	ASCII        bool

	// Streams default to the process streams; tests replace them
	Streams app.Streams

	// AppOptions are passed to every app.New call
	AppOptions []app.Option
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{})
}

func newRootCommand(opts *Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tqdm [command] [flags]",
		Short: "Single-line progress reporting for tight loops",
		Long: `tqdm renders a self-overwriting progress line with throughput, elapsed
time and ETA. Sampling adapts to the loop speed so reporting costs almost
nothing per iteration.

Use "demo" to see every theme, "bench" to measure per-call overhead and
"lines" to show progress while piping text through.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.Verbose, "verbose", "v",
		"verbose output (can be used multiple times)")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "",
		"config file (yaml, toml or json)")
	flags.IntVarP(&opts.Width, "width", "W", 0,
		"bar width in cells (0 fits the terminal)")
	flags.StringVarP(&opts.Theme, "theme", "t", "",
		"theme: blocks|basic|line|circle|braille|braille-spin|vertical or a custom name")
	flags.StringVarP(&opts.Label, "label", "l", "",
		"text shown after the statistics")
	flags.StringVar(&opts.Estimator, "estimator", "",
		"throughput estimator: ema|sma")
	flags.Float64Var(&opts.Alpha, "alpha", 0,
		"EMA smoothing factor in (0, 1]")
	flags.StringVar(&opts.ThemeFile, "theme-file", "",
		"YAML file with custom themes")
	flags.BoolVar(&opts.NoColor, "no-color", false,
		"disable colored output")
	flags.BoolVar(&opts.NoTransition, "no-transition", false,
		"keep the bar a fixed green")
	flags.BoolVar(&opts.ASCII, "ascii", false,
		"use ASCII glyphs only")

	rootCmd.AddCommand(
		newDemoCommand(opts),
		newBenchCommand(opts),
		newLinesCommand(opts),
		newThemesCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// initializeCommand loads the configuration and applies explicit flags on top
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	log := logger.NewLogger(logger.Config{
		Verbosity: opts.Verbose,
		Output:    cmd.ErrOrStderr(),
	})

	log.WithFields(logger.Fields{
		"verbosity": opts.Verbose,
		"command":   cmd.Name(),
	}).Debug("Initializing command")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to load configuration")
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override config with command line flags
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = opts.Width
	}
	if flags.Changed("theme") {
		cfg.Theme = opts.Theme
	}
	if flags.Changed("label") {
		cfg.Label = opts.Label
	}
	if flags.Changed("estimator") {
		cfg.Estimator = opts.Estimator
	}
	if flags.Changed("alpha") {
		cfg.Alpha = opts.Alpha
	}
	if flags.Changed("theme-file") {
		cfg.ThemeFile = opts.ThemeFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	cfg.NoColor = cfg.NoColor || opts.NoColor
	cfg.NoTransition = cfg.NoTransition || opts.NoTransition
	cfg.ASCII = cfg.ASCII || opts.ASCII

	if err := cfg.Validate(); err != nil {
		return err
	}

	opts.Config = &cfg
	return nil
}

// newApp builds the application container for a command
func newApp(cmd *cobra.Command, opts *Options) (*app.App, error) {
	streams := opts.Streams
	if streams.In == nil {
		streams.In = cmd.InOrStdin()
	}
	if streams.Out == nil {
		streams.Out = cmd.OutOrStdout()
	}
	if streams.Err == nil {
		streams.Err = cmd.ErrOrStderr()
	}

	appOpts := append([]app.Option{app.WithConfigPath(opts.ConfigPath)}, opts.AppOptions...)
	return app.New(opts.Config, streams, appOpts...)
}
