package progress

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// frame is everything one status line shows
type frame struct {
	current int
	total   int
	percent float64
	rate    float64
	elapsed float64
	eta     float64
}

type renderer struct {
	theme   Theme
	palette palette
	width   int
	label   string
	buf     strings.Builder
}

// render writes one status line for f into w. The line starts with a
// carriage return so it overwrites the previous one.
func (r *renderer) render(w io.Writer, f frame) {
	r.buf.Reset()
	r.buf.WriteString("\r ")

	bar := r.bar(f)
	if r.palette.enabled {
		r.buf.WriteString(r.palette.barColor(f.percent).Sprint(" " + bar))
	} else {
		r.buf.WriteString(bar)
	}
	r.buf.WriteString(r.theme.RightPad)
	r.buf.WriteByte(' ')

	pct := fmt.Sprintf("%4.1f%% ", f.percent)
	value, unit := scaleRate(f.rate)
	stats := fmt.Sprintf("[%4d/%4d | %3.1f %s | %.0fs<%.0fs] %s ",
		f.current, f.total, value, unit, f.elapsed, f.eta, r.label)
	if r.palette.enabled {
		r.buf.WriteString(r.palette.percent.Sprint(pct))
		r.buf.WriteString(r.palette.stats.Sprint(stats))
	} else {
		r.buf.WriteString(pct)
		r.buf.WriteString(stats)
	}

	io.WriteString(w, r.buf.String()) //nolint:errcheck // the hot path never fails
}

// bar builds the glyph run for f: full cells, one partial cell unless
// complete, then empty cells up to width.
func (r *renderer) bar(f frame) string {
	fills := 0.0
	if f.total > 0 {
		fills = float64(f.current) / float64(f.total) * float64(r.width)
	}
	if fills < 0 || math.IsNaN(fills) {
		fills = 0
	}
	if fills > float64(r.width) {
		fills = float64(r.width)
	}
	full := int(fills)

	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteString(r.theme.Glyphs[8])
	}
	if full < r.width {
		idx := int(8 * (fills - float64(full)))
		if idx > 8 {
			idx = 8
		}
		b.WriteString(r.theme.Glyphs[idx])
		for i := full + 1; i < r.width; i++ {
			b.WriteString(r.theme.Glyphs[0])
		}
	}
	return b.String()
}

// scaleRate picks the display unit for a throughput in items per second
func scaleRate(rate float64) (float64, string) {
	switch {
	case rate > 1e6:
		return rate / 1e6, "MHz"
	case rate > 1e3:
		return rate / 1e3, "kHz"
	default:
		return rate, "Hz"
	}
}
