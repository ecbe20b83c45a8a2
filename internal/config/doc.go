// Package config provides configuration management for gotqdm. It reads
// environment variables and an optional config file through viper, validates
// the result and loads custom theme files.
//
// # Configuration Loading
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load accepts a path to a config file in any format viper understands
// (YAML, TOML, JSON, ...). Environment variables override values from the
// file.
//
// # Environment Variables
//
//	TQDM_WIDTH          Bar width in cells (0 fits the terminal)
//	TQDM_THEME          Starting theme (default: blocks)
//	TQDM_LABEL          Text shown after the statistics
//	TQDM_ESTIMATOR      Throughput estimator: ema|sma
//	TQDM_ALPHA          EMA smoothing factor in (0, 1]
//	TQDM_NO_COLOR       Disable colored output (true/false)
//	TQDM_NO_TRANSITION  Keep the bar a fixed green (true/false)
//	TQDM_ASCII          Use ASCII glyphs only (true/false)
//	TQDM_THEME_FILE     YAML file with custom themes
//	TQDM_WORKERS        Goroutines driving the demo loop
//	TQDM_RATE           Demo items per second (0 for unlimited)
//	TQDM_COUNT          Demo items per theme (default: 2000)
//	TQDM_VERBOSE        Verbosity level (number of 'v's)
//
// # Theme Files
//
//	themes:
//	  dots:
//	    glyphs: [" ", ".", ".", ".", "o", "o", "o", "o", "O"]
//	    right_pad: "|"
//
// Custom themes shadow built-in themes of the same name. Theme files are read
// through an afero.Fs so tests can use an in-memory filesystem.
//
// # Configuration Validation
//
//   - Width must be between 0 and 500
//   - Estimator must be one of: ema, sma
//   - Alpha must be in (0, 1]
//   - Theme must be built in unless a theme file is configured
//   - Workers must be positive and not exceed CPU cores * 4
//   - Rate and Count must be non-negative
package config
