package progress

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/mevatron/gotqdm/pkg/logger"
	"golang.org/x/term"
)

// statusColumns is the width of everything on the line except the bar and label
const statusColumns = 48

// Reporter renders a single self-overwriting status line. It is not safe for
// concurrent use; callers reporting from several goroutines must serialize.
type Reporter struct {
	log logger.Logger
	out *bufio.Writer
	now func() time.Time

	// Session state, cleared by Reset
	tFirst    time.Time
	tOld      time.Time
	nOld      int
	nUpdates  int
	period    int
	smoothing int
	total     int
	rate      float64
	window    *sampleWindow

	// Render configuration, kept across Reset
	themes     map[ThemeName]Theme
	themeName  ThemeName
	ascii      bool
	useColors  bool
	transition bool
	estimator  Estimator
	alpha      float64
	renderer   renderer
}

// New creates a Reporter with the given render configuration
func New(config Config, log logger.Logger, opts ...Option) *Reporter {
	if log == nil {
		log = logger.Nop()
	}
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	r := &Reporter{
		log:        log,
		out:        bufio.NewWriter(out),
		now:        time.Now,
		themes:     config.Themes,
		ascii:      config.ASCII,
		useColors:  !config.NoColor,
		transition: !config.NoColor && !config.NoTransition,
		estimator:  config.Estimator,
		alpha:      config.Alpha,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.estimator != EstimatorSMA {
		r.estimator = EstimatorEMA
	}
	if r.alpha <= 0 || r.alpha > 1 {
		r.alpha = DefaultAlpha
	}

	width := config.Width
	if width <= 0 {
		width = DefaultWidth
		if tw := terminalWidth(out); tw > 0 {
			if fit := tw - statusColumns - len(config.Label); fit >= 10 && fit < width {
				width = fit
			}
		}
	}
	r.renderer = renderer{
		width:   width,
		label:   config.Label,
		palette: newPalette(r.useColors, r.transition),
	}

	name := config.Theme
	if name == "" {
		name = ThemeBlocks
	}
	if err := r.SetTheme(name); err != nil {
		r.log.WithFields(logger.Fields{
			"theme": name,
			"error": err,
		}).Warn("Falling back to default theme")
		_ = r.SetTheme(ThemeBlocks)
	}

	r.window = newSampleWindow(InitialSmoothing)
	r.Reset()

	r.log.WithFields(logger.Fields{
		"theme":     r.themeName,
		"width":     width,
		"ascii":     r.ascii,
		"colors":    r.useColors,
		"estimator": r.estimator,
	}).Debug("Created new progress reporter")

	return r
}

// Progress reports that current out of total items are done. Only calls where
// current is a multiple of the adaptive period update the estimate and redraw;
// every other call costs a single modulo. A non-positive total renders nothing.
func (r *Reporter) Progress(current, total int) {
	if total <= 0 || !isSampleTick(current, r.period) {
		return
	}
	r.tick(current, total)
}

// Finish renders the final 100% line, terminates it with a newline and
// flushes the output.
func (r *Reporter) Finish() {
	if r.total > 0 {
		r.tick(r.total, r.total)
	}
	r.out.WriteByte('\n') //nolint:errcheck // reported by Flush
	if err := r.out.Flush(); err != nil {
		r.log.WithFields(logger.Fields{
			"error": err,
		}).Debug("Failed to flush progress output")
	}

	r.log.WithFields(logger.Fields{
		"updates": r.nUpdates,
		"period":  r.period,
		"rate":    r.rate,
		"total":   r.total,
	}).Debug("Progress finished")
}

// Reset clears timers, counters and the sample window so the reporter can
// measure a new loop. Theme, colors, width and label are kept.
func (r *Reporter) Reset() {
	now := r.now()
	r.tFirst = now
	r.tOld = now
	r.nOld = 0
	r.nUpdates = 0
	r.period = 1
	r.total = 0
	r.rate = 0
	r.smoothing = InitialSmoothing
	r.window.clear()
	r.window.resize(InitialSmoothing)

	r.log.Trace("Progress session reset")
}

// SetTheme swaps the glyph table used from the next render on
func (r *Reporter) SetTheme(name ThemeName) error {
	theme, err := LookupTheme(name, r.themes, r.ascii)
	if err != nil {
		return err
	}
	r.themeName = name
	r.renderer.theme = theme

	r.log.WithFields(logger.Fields{
		"theme": name,
	}).Trace("Theme changed")
	return nil
}

// SetLabel replaces the free text shown after the statistics
func (r *Reporter) SetLabel(label string) {
	r.renderer.label = label
}

// DisableColors stops all escape sequence output
func (r *Reporter) DisableColors() {
	r.useColors = false
	r.transition = false
	r.renderer.palette = newPalette(false, false)
}

// Theme returns the name of the active theme
func (r *Reporter) Theme() ThemeName {
	return r.themeName
}

// Stats returns a snapshot of the session state
func (r *Reporter) Stats() Stats {
	return Stats{
		Updates:   r.nUpdates,
		Period:    r.period,
		Smoothing: r.smoothing,
		Samples:   r.window.len(),
		Rate:      r.rate,
		Total:     r.total,
		Elapsed:   r.tOld.Sub(r.tFirst),
	}
}

// tick is a sample tick: fold the new sample into the estimate, adapt the
// period and redraw.
func (r *Reporter) tick(current, total int) {
	r.total = total
	r.nUpdates++

	now := r.now()
	dt := now.Sub(r.tOld).Seconds()
	elapsed := now.Sub(r.tFirst).Seconds()
	dn := current - r.nOld
	r.nOld = current
	r.tOld = now

	r.window.push(dt, dn)
	rate := estimateRate(r.window, r.estimator, r.alpha)

	if r.nUpdates > WarmupTicks {
		r.period = nextPeriod(r.period, current, elapsed)
		if r.smoothing != SteadySmoothing {
			r.smoothing = SteadySmoothing
			r.window.resize(SteadySmoothing)
			r.log.WithFields(logger.Fields{
				"period":    r.period,
				"smoothing": r.smoothing,
			}).Trace("Sampling warm-up complete")
		}
	}

	f := frame{
		current: current,
		total:   total,
		percent: percentOf(current, total),
		rate:    rate,
		elapsed: elapsed,
		eta:     etaOf(total-current, rate),
	}

	// Too few sampled calls remain to trust the window; show completion.
	complete := total-current <= r.period
	if complete {
		f.percent = 100
		if elapsed > 0 {
			f.rate = float64(total) / elapsed
		}
		f.current = total
		f.eta = 0
	}
	r.rate = f.rate

	r.renderer.render(r.out, f)
	if !complete {
		r.out.Flush() //nolint:errcheck // the hot path never fails
	}
}

func percentOf(current, total int) float64 {
	pct := float64(current) / float64(total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

func etaOf(remaining int, rate float64) float64 {
	if rate <= 0 || remaining <= 0 {
		return 0
	}
	return float64(remaining) / rate
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
