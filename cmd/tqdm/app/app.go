/*
Package app provides the application container for the tqdm command. It wires
configuration, logging, terminal capabilities and custom themes into progress
reporters, and runs the demo, bench and lines workloads.

The application container initializes and manages:
- Logger for structured logging
- Terminal capability detection per output stream
- Custom themes loaded from the configured theme file
- Worker runner for concurrent demo loops
- Report formatting for benchmarks

Usage:

	app, err := app.New(cfg, app.Streams{Out: os.Stdout, Err: os.Stderr})
	if err != nil {
	    log.Fatal(err)
	}
	defer app.Shutdown()

	err = app.RunDemo(app.DemoOptions{Count: 2000})
*/
package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/mevatron/gotqdm/internal/config"
	"github.com/mevatron/gotqdm/internal/termcaps"
	"github.com/mevatron/gotqdm/internal/version"
	"github.com/mevatron/gotqdm/pkg/logger"
	"github.com/mevatron/gotqdm/pkg/output"
	"github.com/mevatron/gotqdm/pkg/progress"
	"github.com/mevatron/gotqdm/pkg/workload"
	"github.com/spf13/afero"
)

// Streams are the standard streams the application reads and writes
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App represents the main application container
type App struct {
	config     *config.Config
	configPath string
	log        logger.Logger
	fs         afero.Fs
	streams    Streams
	themes     map[progress.ThemeName]progress.Theme

	ctx     context.Context
	cancel  context.CancelFunc
	signals chan os.Signal
	mu      sync.RWMutex
}

// Option customizes an App
type Option func(*App)

// WithFs reads the theme file from fs instead of the OS filesystem
func WithFs(fs afero.Fs) Option {
	return func(a *App) { a.fs = fs }
}

// WithLogger replaces the JSON logger built from the configuration
func WithLogger(log logger.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithConfigPath remembers the config file so SIGHUP can reload it
func WithConfigPath(path string) Option {
	return func(a *App) { a.configPath = path }
}

// WithoutSignals skips installing signal handlers
func WithoutSignals() Option {
	return func(a *App) { a.signals = nil }
}

// New creates a new application instance
func New(cfg *config.Config, streams Streams, opts ...Option) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	if streams.In == nil {
		streams.In = os.Stdin
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}

	a := &App{
		config:  cfg,
		fs:      afero.NewOsFs(),
		streams: streams,
		signals: make(chan os.Signal, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.initLogger()
	if err := a.initThemes(); err != nil {
		cancel()
		return nil, err
	}
	if a.signals != nil {
		a.setupSignalHandling()
	}

	a.log.WithFields(logger.Fields{
		"theme":     cfg.Theme,
		"estimator": cfg.Estimator,
		"verbose":   cfg.Verbose,
	}).Debug("Application initialized")

	return a, nil
}

// Config returns a copy of the current configuration
func (a *App) Config() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return *a.config
}

// Context is cancelled on the first interrupt
func (a *App) Context() context.Context {
	return a.ctx
}

// Shutdown releases signal handlers and flushes the logger
func (a *App) Shutdown() error {
	a.cancel()
	a.stopSignalHandling()
	a.log.Debug("Shutdown complete")
	_ = a.log.Sync()
	return nil
}

// initLogger initializes the application logger
func (a *App) initLogger() {
	if a.log == nil {
		a.log = logger.NewLogger(logger.Config{
			Verbosity: a.config.Verbose,
			Output:    a.streams.Err,
		})
	}

	a.log.WithFields(logger.Fields{
		"verbosity": a.config.Verbose,
	}).Debug("Logger initialized")
}

// initThemes loads the custom theme file, if any
func (a *App) initThemes() error {
	themes, err := a.config.LoadThemes(a.fs)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"file":  a.config.ThemeFile,
			"error": err,
		}).Error("Failed to load custom themes")
		return err
	}
	a.themes = themes

	if len(themes) > 0 {
		a.log.WithFields(logger.Fields{
			"file":   a.config.ThemeFile,
			"themes": len(themes),
		}).Debug("Custom themes loaded")
	}
	return nil
}

// capabilities inspects w when it is a real file
func (a *App) capabilities(w io.Writer) termcaps.Capabilities {
	f, ok := w.(*os.File)
	if !ok {
		return termcaps.Capabilities{Unicode: true}
	}
	caps := termcaps.Detect(f)
	a.log.WithFields(logger.Fields{
		"stream": f.Name(),
		"caps":   caps.String(),
	}).Debug("Detected terminal capabilities")
	return caps
}

// NewReporter builds a progress reporter writing to w, downgrading colors and
// glyphs to what w can display.
func (a *App) NewReporter(w io.Writer) *progress.Reporter {
	a.mu.RLock()
	cfg := *a.config
	themes := a.themes
	a.mu.RUnlock()

	caps := a.capabilities(w)
	pc := cfg.Progress(themes, !caps.Unicode)
	pc.NoColor = pc.NoColor || !caps.Color
	pc.NoTransition = pc.NoTransition || !caps.TrueColor
	pc.Output = w

	return progress.New(pc, a.log)
}

// ThemeNames lists built-in themes followed by custom ones
func (a *App) ThemeNames() []progress.ThemeName {
	names := progress.BuiltinThemes()
	for name := range a.themes {
		if !containsTheme(names, name) {
			names = append(names, name)
		}
	}
	sortThemes(names[len(progress.BuiltinThemes()):])
	return names
}

// Environment describes what reporters created now would render with
func (a *App) Environment() version.Environment {
	cfg := a.Config()
	env := version.Environment{
		Estimator: cfg.Estimator,
		Alpha:     cfg.Alpha,
		Streams: []version.Stream{
			{Name: "stdout", Capabilities: a.capabilities(a.streams.Out).String()},
			{Name: "stderr", Capabilities: a.capabilities(a.streams.Err).String()},
		},
	}
	for _, name := range a.ThemeNames() {
		env.Themes = append(env.Themes, string(name))
	}
	return env
}

// DemoOptions controls a demo run
type DemoOptions struct {
	// Themes to cycle through (empty for every theme)
	Themes []progress.ThemeName

	// Count is the number of items per theme
	Count int

	// Workers drive the loop concurrently when greater than one
	Workers int

	// Rate caps items per second (0 for unlimited)
	Rate int

	// Work is the number of spin rounds per item
	Work int
}

// RunDemo replays one loop per theme on the output stream
func (a *App) RunDemo(opts DemoOptions) (err error) {
	defer a.recoverPanic(&err)

	themes := opts.Themes
	if len(themes) == 0 {
		themes = a.ThemeNames()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	a.log.WithFields(logger.Fields{
		"themes":  len(themes),
		"count":   opts.Count,
		"workers": opts.Workers,
		"rate":    opts.Rate,
	}).Info("Starting demo")

	runner, err := workload.NewRunner(workload.Config{
		Workers: opts.Workers,
		Rate:    opts.Rate,
	})
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	bar := a.NewReporter(a.streams.Out)
	label := a.Config().Label
	for _, theme := range themes {
		if err := bar.SetTheme(theme); err != nil {
			return err
		}
		fmt.Fprintf(a.streams.Out, "%s:\n", theme)
		bar.Reset()
		if label == "" {
			bar.SetLabel(string(theme))
		}

		count := opts.Count
		_, err := runner.Run(a.ctx, count, workload.Spin(opts.Work), func(done int) {
			bar.Progress(done, count)
		})
		bar.Finish()
		if err != nil {
			a.log.WithFields(logger.Fields{
				"theme": theme,
				"error": err,
			}).Warn("Demo interrupted")
			return err
		}

		stats := bar.Stats()
		a.log.WithFields(logger.Fields{
			"theme":   theme,
			"updates": stats.Updates,
			"period":  stats.Period,
			"elapsed": stats.Elapsed,
		}).Debug("Demo loop finished")
	}

	return nil
}

// BenchOptions controls a bench run
type BenchOptions struct {
	Themes []progress.ThemeName
	Calls  int
	Format output.Format
	Stats  bool
}

// RunBench measures the per-call overhead of Progress for each theme and
// writes a report to the output stream.
func (a *App) RunBench(opts BenchOptions) (err error) {
	defer a.recoverPanic(&err)

	if opts.Calls <= 0 {
		return fmt.Errorf("calls must be positive")
	}
	themes := opts.Themes
	if len(themes) == 0 {
		themes = a.ThemeNames()
	}

	a.log.WithFields(logger.Fields{
		"themes": len(themes),
		"calls":  opts.Calls,
	}).Info("Starting benchmark")

	cfg := a.Config()
	report := &output.Report{Estimator: cfg.Estimator}
	for _, theme := range themes {
		if err := a.ctx.Err(); err != nil {
			return fmt.Errorf("benchmark interrupted: %w", err)
		}
		run, err := a.benchTheme(theme, opts.Calls)
		if err != nil {
			return err
		}
		report.Runs = append(report.Runs, run)
	}

	caps := a.capabilities(a.streams.Out)
	formatter := output.NewFormatter(output.Config{
		Format:     opts.Format,
		WithStats:  opts.Stats,
		WithColors: caps.Color && !cfg.NoColor,
	}, a.log)

	text, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}
	_, err = fmt.Fprintln(a.streams.Out, text)
	return err
}

func (a *App) benchTheme(theme progress.ThemeName, calls int) (output.Run, error) {
	a.mu.RLock()
	pc := a.config.Progress(a.themes, false)
	a.mu.RUnlock()
	pc.Output = io.Discard
	pc.Theme = theme

	bar := progress.New(pc, a.log)
	if bar.Theme() != theme {
		return output.Run{}, fmt.Errorf("%w: %q", progress.ErrUnknownTheme, theme)
	}

	start := time.Now()
	for i := 0; i < calls; i++ {
		bar.Progress(i, calls)
	}
	elapsed := time.Since(start)
	stats := bar.Stats()
	bar.Finish()

	return output.Run{
		Theme:       string(theme),
		Items:       calls,
		Ticks:       stats.Updates,
		FinalPeriod: stats.Period,
		Smoothing:   stats.Smoothing,
		Rate:        stats.Rate,
		Elapsed:     elapsed,
		PerCall:     elapsed / time.Duration(calls),
	}, nil
}

// RunLines copies the input stream to the output stream line by line while
// reporting progress over total lines on the error stream.
func (a *App) RunLines(total int) (err error) {
	defer a.recoverPanic(&err)

	if total <= 0 {
		return fmt.Errorf("total must be positive")
	}

	bar := a.NewReporter(a.streams.Err)
	out := bufio.NewWriter(a.streams.Out)
	defer out.Flush()

	scanner := bufio.NewScanner(a.streams.In)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		if err := a.ctx.Err(); err != nil {
			bar.Finish()
			return fmt.Errorf("interrupted after %d lines: %w", n, err)
		}
		if _, err := out.Write(append(scanner.Bytes(), '\n')); err != nil {
			bar.Finish()
			return fmt.Errorf("write line %d: %w", n+1, err)
		}
		n++
		bar.Progress(n, total)
	}
	bar.Finish()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"lines": n,
		"total": total,
	}).Debug("Lines copied")
	return nil
}

// ThemeSample renders the line for a theme at the given fraction complete,
// without the leading carriage return.
func (a *App) ThemeSample(theme progress.ThemeName, width int, fraction float64) (string, error) {
	const steps = 1000

	a.mu.RLock()
	pc := a.config.Progress(a.themes, false)
	a.mu.RUnlock()

	caps := a.capabilities(a.streams.Out)
	var buf bytes.Buffer
	pc.Output = &buf
	pc.Theme = theme
	pc.Width = width
	pc.Label = ""
	pc.ASCII = pc.ASCII || !caps.Unicode
	pc.NoColor = pc.NoColor || !caps.Color
	pc.NoTransition = pc.NoTransition || !caps.TrueColor

	bar := progress.New(pc, logger.Nop())
	if bar.Theme() != theme {
		return "", fmt.Errorf("%w: %q", progress.ErrUnknownTheme, theme)
	}
	bar.Progress(int(fraction*steps), steps)

	return trimCarriageReturn(buf.String()), nil
}

// recoverPanic turns a panic inside a workload into an error
func (a *App) recoverPanic(err *error) {
	if r := recover(); r != nil {
		a.log.WithFields(logger.Fields{
			"panic": r,
			"stack": string(debug.Stack()),
		}).Error("Recovered from panic")
		*err = fmt.Errorf("panic: %v", r)
	}
}
