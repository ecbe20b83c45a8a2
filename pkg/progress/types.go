package progress

import (
	"io"
	"time"
)

// Estimator selects how the throughput estimate is derived from the sample window
type Estimator string

const (
	// EstimatorEMA weights recent samples more heavily (default)
	EstimatorEMA Estimator = "ema"

	// EstimatorSMA gives every sample in the window equal weight
	EstimatorSMA Estimator = "sma"
)

// Tuning constants for the sampling and refresh logic
const (
	// DefaultWidth is the number of glyphs in the bar
	DefaultWidth = 40

	// DefaultAlpha is the EMA smoothing factor
	DefaultAlpha = 0.1

	// InitialSmoothing is the sample window capacity during warm-up
	InitialSmoothing = 50

	// RefreshHz is the target number of redraws per second after warm-up
	RefreshHz = 25

	// SmoothingSeconds is how many seconds of samples the window spans after warm-up
	SmoothingSeconds = 3

	// SteadySmoothing is the sample window capacity after warm-up
	SteadySmoothing = RefreshHz * SmoothingSeconds

	// WarmupTicks is the number of sample ticks taken with period 1
	WarmupTicks = 10

	// MaxPeriod caps the throttling period
	MaxPeriod = 500000

	// transitionSaturation and transitionValue are the HSV components of the bar color
	transitionSaturation = 0.65
	transitionValue      = 1.0
)

// Config holds the render configuration of a Reporter.
// Render configuration survives Reset.
type Config struct {
	// Width is the bar length in glyphs (0 = DefaultWidth)
	Width int

	// Theme is the initial glyph table (empty = ThemeBlocks)
	Theme ThemeName

	// Themes holds custom themes that shadow built-ins of the same name
	Themes map[ThemeName]Theme

	// Label is free text appended after the statistics
	Label string

	// NoColor disables all escape sequences
	NoColor bool

	// NoTransition renders the bar in fixed green instead of the red to green sweep
	NoTransition bool

	// ASCII selects ASCII-only glyph tables for outputs that cannot render
	// extended glyphs
	ASCII bool

	// Estimator selects the rate estimator (empty = EstimatorEMA)
	Estimator Estimator

	// Alpha is the EMA smoothing factor (0 = DefaultAlpha)
	Alpha float64

	// Output is where the status line is written (nil = os.Stdout)
	Output io.Writer
}

// Stats is a snapshot of the reporter's session state
type Stats struct {
	// Updates is the number of sample ticks taken this session
	Updates int

	// Period is the current throttling interval
	Period int

	// Smoothing is the current sample window capacity
	Smoothing int

	// Samples is the number of entries in the sample window
	Samples int

	// Rate is the last estimated throughput in items per second
	Rate float64

	// Total is the last observed target
	Total int

	// Elapsed is the time since the session started
	Elapsed time.Duration
}

// Option customizes a Reporter beyond its render configuration
type Option func(*Reporter)

// WithClock replaces time.Now as the reporter's time source
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// WithEstimator overrides Config.Estimator
func WithEstimator(e Estimator) Option {
	return func(r *Reporter) {
		r.estimator = e
	}
}

// WithAlpha overrides Config.Alpha
func WithAlpha(alpha float64) Option {
	return func(r *Reporter) {
		if alpha > 0 && alpha <= 1 {
			r.alpha = alpha
		}
	}
}
