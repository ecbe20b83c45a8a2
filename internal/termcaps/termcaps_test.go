package termcaps

import (
	"os"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		tty      bool
		profile  termenv.Profile
		goos     string
		env      map[string]string
		expected Capabilities
		str      string
	}{
		{
			name:    "truecolor utf-8 terminal",
			tty:     true,
			profile: termenv.TrueColor,
			goos:    "linux",
			env:     map[string]string{"LANG": "en_US.UTF-8"},
			expected: Capabilities{
				Terminal: true, Color: true, TrueColor: true, Unicode: true, Profile: termenv.TrueColor,
			},
			str: "terminal,truecolor,unicode",
		},
		{
			name:    "256 colors",
			tty:     true,
			profile: termenv.ANSI256,
			goos:    "darwin",
			env:     map[string]string{"LC_ALL": "C.utf8"},
			expected: Capabilities{
				Terminal: true, Color: true, Unicode: true, Profile: termenv.ANSI256,
			},
			str: "terminal,ansi,unicode",
		},
		{
			name:    "pipe",
			profile: termenv.Ascii,
			goos:    "linux",
			expected: Capabilities{
				Unicode: true, Profile: termenv.Ascii,
			},
			str: "pipe,no-color,unicode",
		},
		{
			name:    "NO_COLOR wins",
			tty:     true,
			profile: termenv.TrueColor,
			goos:    "linux",
			env:     map[string]string{"NO_COLOR": "1", "LANG": "en_US.UTF-8"},
			expected: Capabilities{
				Terminal: true, Unicode: true, Profile: termenv.Ascii,
			},
			str: "terminal,no-color,unicode",
		},
		{
			name:    "posix locale",
			tty:     true,
			profile: termenv.ANSI,
			goos:    "linux",
			env:     map[string]string{"LC_ALL": "C", "LANG": "en_US.UTF-8"},
			expected: Capabilities{
				Terminal: true, Color: true, Profile: termenv.ANSI,
			},
			str: "terminal,ansi,ascii",
		},
		{
			name:    "classic windows console",
			tty:     true,
			profile: termenv.ANSI256,
			goos:    "windows",
			env:     map[string]string{"LANG": "en_US.UTF-8"},
			expected: Capabilities{
				Terminal: true, Color: true, Profile: termenv.ANSI256,
			},
			str: "terminal,ansi,ascii",
		},
		{
			name:    "windows terminal",
			tty:     true,
			profile: termenv.TrueColor,
			goos:    "windows",
			env:     map[string]string{"WT_SESSION": "abc"},
			expected: Capabilities{
				Terminal: true, Color: true, TrueColor: true, Unicode: true, Profile: termenv.TrueColor,
			},
			str: "terminal,truecolor,unicode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := detect(tt.tty, tt.profile, tt.goos, envOf(tt.env))
			assert.Equal(t, tt.expected, caps)
			assert.Equal(t, tt.str, caps.String())
		})
	}
}

func TestDetectRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	caps := Detect(f)
	t.Logf("Capabilities: %s", caps)
	assert.False(t, caps.Terminal)
	assert.False(t, caps.TrueColor)
}
