package progress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinThemesResolve(t *testing.T) {
	for _, name := range BuiltinThemes() {
		for _, ascii := range []bool{false, true} {
			theme, err := LookupTheme(name, nil, ascii)
			require.NoError(t, err, "theme %s ascii=%v", name, ascii)
			assert.NotEmpty(t, theme.RightPad)
			for i, g := range theme.Glyphs {
				assert.NotEmpty(t, g, "theme %s glyph %d", name, i)
				if ascii {
					for _, r := range g {
						assert.Less(t, r, rune(128), "theme %s glyph %d is not ASCII", name, i)
					}
				}
			}
		}
	}
}

func TestLookupTheme(t *testing.T) {
	custom := map[ThemeName]Theme{
		"mine": {Glyphs: [9]string{".", ".", ".", ".", ".", ".", ".", ".", "#"}, RightPad: "]"},
	}

	theme, err := LookupTheme("mine", custom, true)
	require.NoError(t, err)
	assert.Equal(t, "]", theme.RightPad)

	theme, err = LookupTheme(ThemeBlocks, nil, true)
	require.NoError(t, err)
	assert.Equal(t, basicTheme, theme, "Blocks has no ASCII glyphs of its own")

	_, err = LookupTheme("nope", custom, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestDecodeThemes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		verify  func(*testing.T, map[ThemeName]Theme)
	}{
		{
			name: "valid file",
			input: `
themes:
  dots:
    glyphs: [" ", ".", ".", ".", "o", "o", "o", "o", "O"]
    right_pad: "]"
  hashes:
    glyphs: ["-", "-", "-", "-", "=", "=", "=", "=", "#"]
`,
			verify: func(t *testing.T, themes map[ThemeName]Theme) {
				require.Len(t, themes, 2)
				assert.Equal(t, "O", themes["dots"].Glyphs[8])
				assert.Equal(t, "]", themes["dots"].RightPad)
				assert.Equal(t, "|", themes["hashes"].RightPad, "Right pad defaults to a pipe")
			},
		},
		{
			name:  "empty input",
			input: "",
			verify: func(t *testing.T, themes map[ThemeName]Theme) {
				assert.Empty(t, themes)
			},
		},
		{
			name: "wrong glyph count",
			input: `
themes:
  short:
    glyphs: [" ", "#"]
`,
			wantErr: `theme "short" has 2 glyphs, want 9`,
		},
		{
			name:    "malformed yaml",
			input:   "themes: [",
			wantErr: "decode themes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			themes, err := DecodeThemes(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.verify(t, themes)
		})
	}
}
