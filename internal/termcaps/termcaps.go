// Package termcaps decides what an output stream can display: whether it is
// a terminal, which colors it understands and whether it renders glyphs
// beyond ASCII.
package termcaps

import (
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Capabilities describes one output stream
type Capabilities struct {
	// Terminal is true when the stream is an interactive terminal
	Terminal bool

	// Color is true when escape sequences should be written at all
	Color bool

	// TrueColor is true when 24-bit colors are understood
	TrueColor bool

	// Unicode is true when glyphs beyond ASCII render correctly
	Unicode bool

	// Profile is the color profile reported by termenv
	Profile termenv.Profile
}

// Detect inspects f and the process environment
func Detect(f *os.File) Capabilities {
	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	profile := termenv.NewOutput(f).EnvColorProfile()
	return detect(tty, profile, runtime.GOOS, os.Getenv)
}

func detect(tty bool, profile termenv.Profile, goos string, getenv func(string) string) Capabilities {
	caps := Capabilities{
		Terminal: tty,
		Profile:  profile,
		Unicode:  unicodeLocale(goos, getenv),
	}
	if getenv("NO_COLOR") != "" {
		caps.Profile = termenv.Ascii
		return caps
	}
	caps.Color = profile != termenv.Ascii
	caps.TrueColor = profile == termenv.TrueColor
	return caps
}

// unicodeLocale reports whether the locale promises UTF-8 output. Classic
// Windows consoles do not, Windows Terminal does.
func unicodeLocale(goos string, getenv func(string) string) bool {
	if goos == "windows" {
		return getenv("WT_SESSION") != ""
	}
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(key); v != "" {
			v = strings.ToLower(v)
			return strings.Contains(v, "utf-8") || strings.Contains(v, "utf8")
		}
	}
	// No locale at all: assume a modern UTF-8 terminal
	return true
}

// String returns a short description for logs and the version command
func (c Capabilities) String() string {
	var parts []string
	if c.Terminal {
		parts = append(parts, "terminal")
	} else {
		parts = append(parts, "pipe")
	}
	switch {
	case c.TrueColor:
		parts = append(parts, "truecolor")
	case c.Color:
		parts = append(parts, "ansi")
	default:
		parts = append(parts, "no-color")
	}
	if c.Unicode {
		parts = append(parts, "unicode")
	} else {
		parts = append(parts, "ascii")
	}
	return strings.Join(parts, ",")
}
