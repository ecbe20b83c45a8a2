package progress

import (
	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// palette holds the escape sequences for one render configuration.
// A zero palette emits no escapes at all.
type palette struct {
	enabled    bool
	transition bool
	bar        *color.Color // fixed bar color when transition is off
	percent    *color.Color
	stats      *color.Color
	shade      *shade // last transition color, shared by copies
}

// shade remembers the most recent transition color so consecutive ticks in
// the same hue step reuse it.
type shade struct {
	rgb   [3]int
	color *color.Color
}

func newPalette(useColors, transition bool) palette {
	if !useColors {
		return palette{}
	}
	p := palette{
		enabled:    true,
		transition: transition,
		bar:        color.New(color.FgGreen),
		percent:    color.New(color.Bold, color.FgRed),
		stats:      color.New(color.FgBlue),
	}
	if transition {
		p.shade = &shade{}
	}
	// The package-level NoColor guess is based on os.Stdout; the reporter
	// decides for its own writer.
	p.bar.EnableColor()
	p.percent.EnableColor()
	p.stats.EnableColor()
	return p
}

// barColor returns the color for the bar at the given percent complete.
func (p palette) barColor(pct float64) *color.Color {
	if !p.transition {
		return p.bar
	}
	r, g, b := hsvToRGB(pct/300, transitionSaturation, transitionValue)
	rgb := [3]int{r, g, b}
	if p.shade.color != nil && p.shade.rgb == rgb {
		return p.shade.color
	}
	c := color.RGB(r, g, b)
	c.EnableColor()
	p.shade.rgb = rgb
	p.shade.color = c
	return c
}

// hsvToRGB converts a hue in turns (0..1) plus saturation and value (0..1)
// into 8-bit RGB components. Red is hue 0, green is hue 1/3.
func hsvToRGB(h, s, v float64) (r, g, b int) {
	if s < 1e-6 {
		gray := int(v * 255)
		return gray, gray, gray
	}
	h -= float64(int(h))
	if h < 0 {
		h++
	}
	r8, g8, b8 := colorful.Hsv(h*360, s, v).RGB255()
	return int(r8), int(g8), int(b8)
}
