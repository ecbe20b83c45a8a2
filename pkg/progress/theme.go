package progress

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// ThemeName identifies a glyph table
type ThemeName string

const (
	ThemeBlocks      ThemeName = "blocks"
	ThemeBasic       ThemeName = "basic"
	ThemeLine        ThemeName = "line"
	ThemeCircle      ThemeName = "circle"
	ThemeBraille     ThemeName = "braille"
	ThemeBrailleSpin ThemeName = "braille-spin"
	ThemeVertical    ThemeName = "vertical"
)

// Theme is an immutable glyph table. Glyphs[0] is the empty cell, Glyphs[8]
// the full cell and 1..7 the partial fills in between. RightPad closes the bar.
type Theme struct {
	Glyphs   [9]string
	RightPad string
}

type themeVariants struct {
	unicode Theme
	ascii   Theme
}

var basicTheme = Theme{
	Glyphs:   [9]string{" ", "\\", "-", "/", "|", "\\", "-", "/", "|"},
	RightPad: "|",
}

var builtinThemes = map[ThemeName]themeVariants{
	ThemeBlocks: {
		unicode: Theme{Glyphs: [9]string{" ", "▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"}, RightPad: "▏"},
		ascii:   basicTheme,
	},
	ThemeBasic: {
		unicode: basicTheme,
		ascii:   basicTheme,
	},
	ThemeLine: {
		unicode: Theme{Glyphs: [9]string{"─", "─", "─", "╾", "╾", "╾", "╾", "━", "═"}, RightPad: "▏"},
		ascii:   Theme{Glyphs: [9]string{" ", "_", "_", "_", "-", "-", "-", "-", "="}, RightPad: "|"},
	},
	ThemeCircle: {
		unicode: Theme{Glyphs: [9]string{" ", "◓", "◑", "◒", "◐", "◓", "◑", "◒", "#"}, RightPad: "▏"},
		ascii:   Theme{Glyphs: [9]string{" ", ".", ".", ".", "o", "o", "o", "o", "O"}, RightPad: "|"},
	},
	ThemeBraille: {
		unicode: Theme{Glyphs: [9]string{" ", "⡀", "⡄", "⡆", "⡇", "⡏", "⡟", "⡿", "⣿"}, RightPad: "▏"},
		ascii:   basicTheme,
	},
	ThemeBrailleSpin: {
		unicode: Theme{Glyphs: [9]string{" ", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠇", "⠿"}, RightPad: "▏"},
		ascii:   basicTheme,
	},
	ThemeVertical: {
		unicode: Theme{Glyphs: [9]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█", "█"}, RightPad: "▏"},
		ascii:   Theme{Glyphs: [9]string{" ", ".", ".", ".", ":", ":", ":", ":", "|"}, RightPad: "|"},
	},
}

// ErrUnknownTheme is returned when a theme name resolves to no glyph table
var ErrUnknownTheme = errors.New("unknown theme")

// BuiltinThemes returns the names of the built-in themes in display order
func BuiltinThemes() []ThemeName {
	return []ThemeName{
		ThemeBlocks,
		ThemeBasic,
		ThemeLine,
		ThemeCircle,
		ThemeBraille,
		ThemeBrailleSpin,
		ThemeVertical,
	}
}

// LookupTheme resolves name against custom first, then the built-ins.
// ascii selects the ASCII-only variant of a built-in theme.
func LookupTheme(name ThemeName, custom map[ThemeName]Theme, ascii bool) (Theme, error) {
	if t, ok := custom[name]; ok {
		return t, nil
	}
	v, ok := builtinThemes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if ascii {
		return v.ascii, nil
	}
	return v.unicode, nil
}

type themeFile struct {
	Themes map[string]struct {
		Glyphs   []string `yaml:"glyphs"`
		RightPad string   `yaml:"right_pad"`
	} `yaml:"themes"`
}

// DecodeThemes reads custom themes from YAML:
//
//	themes:
//	  dots:
//	    glyphs: [" ", ".", ".", ".", "o", "o", "o", "o", "O"]
//	    right_pad: "|"
//
// Every theme must list exactly 9 glyphs.
func DecodeThemes(r io.Reader) (map[ThemeName]Theme, error) {
	var f themeFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return map[ThemeName]Theme{}, nil
		}
		return nil, fmt.Errorf("decode themes: %w", err)
	}

	names := make([]string, 0, len(f.Themes))
	for name := range f.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	themes := make(map[ThemeName]Theme, len(names))
	for _, name := range names {
		def := f.Themes[name]
		if name == "" {
			return nil, errors.New("decode themes: empty theme name")
		}
		if len(def.Glyphs) != 9 {
			return nil, fmt.Errorf("decode themes: theme %q has %d glyphs, want 9", name, len(def.Glyphs))
		}
		var t Theme
		copy(t.Glyphs[:], def.Glyphs)
		t.RightPad = def.RightPad
		if t.RightPad == "" {
			t.RightPad = "|"
		}
		themes[ThemeName(name)] = t
	}
	return themes, nil
}
