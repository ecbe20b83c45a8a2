package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/mevatron/gotqdm/pkg/progress"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Width is the bar width in cells (0 picks a width that fits the terminal)
	Width int

	// Theme is the name of the glyph table to start with
	Theme string

	// Label is the free text shown after the statistics
	Label string

	// Estimator selects the throughput estimator: ema or sma
	Estimator string

	// Alpha is the EMA smoothing factor in (0, 1]
	Alpha float64

	// NoColor disables colored output
	NoColor bool

	// NoTransition keeps the bar a fixed green instead of fading from red
	NoTransition bool

	// ASCII restricts every theme to ASCII glyphs
	ASCII bool

	// ThemeFile is a YAML file with custom themes (empty for none)
	ThemeFile string

	// Workers is the number of concurrent workers driving a demo loop
	Workers int

	// Rate is the maximum number of demo items per second (0 for unlimited)
	Rate int

	// Count is the number of items per demo loop
	Count int

	// Verbose sets the verbosity level
	Verbose int
}

var validEstimators = map[string]bool{
	string(progress.EstimatorEMA): true,
	string(progress.EstimatorSMA): true,
}

// Load reads configuration from environment variables and, when file is not
// empty, from that config file. Environment variables win over the file.
func Load(file string) (Config, error) {
	return LoadFs(afero.NewOsFs(), file)
}

// LoadFs is Load reading the config file from fs
func LoadFs(fs afero.Fs, file string) (Config, error) {
	v := viper.New()
	v.SetFs(fs)

	// Set default values
	v.SetDefault("width", 0)
	v.SetDefault("theme", string(progress.ThemeBlocks))
	v.SetDefault("label", "")
	v.SetDefault("estimator", string(progress.EstimatorEMA))
	v.SetDefault("alpha", progress.DefaultAlpha)
	v.SetDefault("no_color", false)
	v.SetDefault("no_transition", false)
	v.SetDefault("ascii", false)
	v.SetDefault("theme_file", "")
	v.SetDefault("workers", 1)
	v.SetDefault("rate", 0)
	v.SetDefault("count", DefaultCount)
	v.SetDefault("verbose", 0)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := Config{
		Width:        v.GetInt("width"),
		Theme:        v.GetString("theme"),
		Label:        v.GetString("label"),
		Estimator:    strings.ToLower(v.GetString("estimator")),
		Alpha:        v.GetFloat64("alpha"),
		NoColor:      v.GetBool("no_color"),
		NoTransition: v.GetBool("no_transition"),
		ASCII:        v.GetBool("ascii"),
		ThemeFile:    v.GetString("theme_file"),
		Workers:      v.GetInt("workers"),
		Rate:         v.GetInt("rate"),
		Count:        v.GetInt("count"),
		Verbose:      parseVerbosity(v.GetString("verbose")),
	}

	// Handle special case for workers=0
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// parseVerbosity accepts either a number or a string of 'v's
func parseVerbosity(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return strings.Count(s, "v")
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("width must be non-negative")
	}
	if c.Width > MaxWidth {
		return fmt.Errorf("width cannot exceed %d", MaxWidth)
	}

	if !validEstimators[c.Estimator] {
		return fmt.Errorf("invalid estimator: must be one of [ema sma]")
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1]")
	}

	// Custom themes are only known once the theme file is loaded
	if c.ThemeFile == "" {
		if _, err := progress.LookupTheme(progress.ThemeName(c.Theme), nil, false); err != nil {
			return err
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers count must be positive")
	}
	if c.Workers > runtime.NumCPU()*MaxWorkerMultiplier {
		return fmt.Errorf("workers count cannot exceed system CPU count * %d", MaxWorkerMultiplier)
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must be non-negative")
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be non-negative")
	}

	return nil
}

// LoadThemes reads the custom theme file, if any, from fs
func (c Config) LoadThemes(fs afero.Fs) (map[progress.ThemeName]progress.Theme, error) {
	if c.ThemeFile == "" {
		return nil, nil
	}

	f, err := fs.Open(c.ThemeFile)
	if err != nil {
		return nil, fmt.Errorf("open theme file: %w", err)
	}
	defer f.Close()

	themes, err := progress.DecodeThemes(f)
	if err != nil {
		return nil, fmt.Errorf("load theme file %s: %w", c.ThemeFile, err)
	}

	name := progress.ThemeName(c.Theme)
	if _, err := progress.LookupTheme(name, themes, false); err != nil {
		return nil, errors.Join(err, fmt.Errorf("theme %q is neither built in nor defined in %s", c.Theme, c.ThemeFile))
	}
	return themes, nil
}

// Progress builds the reporter configuration. ascii is OR-ed with the
// configured flag so a terminal without extended glyphs always gets ASCII.
func (c Config) Progress(themes map[progress.ThemeName]progress.Theme, ascii bool) progress.Config {
	return progress.Config{
		Width:        c.Width,
		Theme:        progress.ThemeName(c.Theme),
		Themes:       themes,
		Label:        c.Label,
		NoColor:      c.NoColor,
		NoTransition: c.NoTransition,
		ASCII:        c.ASCII || ascii,
		Estimator:    progress.Estimator(c.Estimator),
		Alpha:        c.Alpha,
	}
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Width: %d, Theme: %s, Label: %q, Estimator: %s, Alpha: %g, "+
			"NoColor: %v, NoTransition: %v, ASCII: %v, ThemeFile: %s, "+
			"Workers: %d, Rate: %d, Count: %d, Verbose: %d}",
		c.Width, c.Theme, c.Label, c.Estimator, c.Alpha,
		c.NoColor, c.NoTransition, c.ASCII, c.ThemeFile,
		c.Workers, c.Rate, c.Count, c.Verbose,
	)
}
