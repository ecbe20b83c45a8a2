package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/mevatron/gotqdm/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// mockLogger implements logger.Logger interface for testing
type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(msg string)                               { m.logs = append(m.logs, "INFO: "+msg) }
func (m *mockLogger) Debug(msg string)                              { m.logs = append(m.logs, "DEBUG: "+msg) }
func (m *mockLogger) Error(msg string)                              { m.logs = append(m.logs, "ERROR: "+msg) }
func (m *mockLogger) Warn(msg string)                               { m.logs = append(m.logs, "WARN: "+msg) }
func (m *mockLogger) Trace(msg string)                              { m.logs = append(m.logs, "TRACE: "+msg) }
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }
func (m *mockLogger) Sync() error                                   { return nil }

func createTestReport() *Report {
	return &Report{
		Estimator: "ema",
		Runs: []Run{
			{
				Theme:       "blocks",
				Items:       1000000,
				Ticks:       18,
				FinalPeriod: 500000,
				Smoothing:   75,
				Rate:        2.5e8,
				Elapsed:     4 * time.Millisecond,
				PerCall:     4 * time.Nanosecond,
			},
			{
				Theme:       "braille",
				Items:       1000000,
				Ticks:       22,
				FinalPeriod: 250000,
				Smoothing:   75,
				Rate:        2e8,
				Elapsed:     5 * time.Millisecond,
				PerCall:     5 * time.Nanosecond,
			},
		},
	}
}

func newTestFormatter(config Config, log logger.Logger) *formatter {
	f := NewFormatter(config, log).(*formatter)
	f.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestFormatter(t *testing.T) {
	tests := []struct {
		name       string
		format     Format
		withStats  bool
		withColors bool
		verify     func(*testing.T, string, *mockLogger)
	}{
		{
			name:   "text format basic",
			format: FormatText,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "Benchmark (estimator ema)")
				assert.Contains(t, output, "THEME")
				assert.Contains(t, output, "PER CALL")
				assert.Contains(t, output, "1,000,000")
				assert.Contains(t, output, "500,000")
				assert.Contains(t, output, "250 MHz")
				assert.Contains(t, output, "4ns")
				assert.NotContains(t, output, "Statistics:")
				assert.NotContains(t, output, "\x1b[")
			},
		},
		{
			name:       "text format with colors",
			format:     FormatText,
			withColors: true,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "\x1b[34;1m") // Bold blue title
				assert.Contains(t, output, "\x1b[0m")
				assert.Contains(t, log.logs, "DEBUG: Applying color formatting")
			},
		},
		{
			name:      "text format with stats",
			format:    FormatText,
			withStats: true,
			verify: func(t *testing.T, output string, log *mockLogger) {
				assert.Contains(t, output, "Statistics:")
				assert.Contains(t, output, "Runs: 2")
				assert.Contains(t, output, "Total Items: 2,000,000")
				assert.Contains(t, output, "Sample Ticks: 40 (0.0020% of calls)")
				assert.Contains(t, output, "Total Time: 9ms")
				assert.Contains(t, output, "Fastest: blocks (4ns/call)")
				assert.Contains(t, output, "Slowest: braille (5ns/call)")
				assert.Contains(t, log.logs, "DEBUG: Statistics calculated")
			},
		},
		{
			name:      "json format",
			format:    FormatJSON,
			withStats: true,
			verify: func(t *testing.T, output string, log *mockLogger) {
				var doc map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(output), &doc))

				assert.Equal(t, "ema", doc["estimator"])
				runs := doc["runs"].([]interface{})
				require.Len(t, runs, 2)
				first := runs[0].(map[string]interface{})
				assert.Equal(t, "blocks", first["theme"])
				assert.Equal(t, float64(500000), first["finalPeriod"])
				assert.Equal(t, float64(4), first["perCallNs"])

				stats := doc["statistics"].(map[string]interface{})
				assert.Equal(t, float64(40), stats["totalTicks"])
				assert.Equal(t, "blocks", stats["fastest"])
				assert.Equal(t, "2026-01-01T12:00:00Z", doc["generated"])
			},
		},
		{
			name:   "yaml format",
			format: FormatYAML,
			verify: func(t *testing.T, output string, log *mockLogger) {
				var doc map[string]interface{}
				require.NoError(t, yaml.Unmarshal([]byte(output), &doc))

				assert.Equal(t, "ema", doc["estimator"])
				assert.NotContains(t, doc, "statistics")
				assert.Contains(t, output, "final_period: 500000")
				assert.Contains(t, output, "per_call: 4ns")
				assert.Contains(t, log.logs, "DEBUG: Formatting YAML output")
			},
		},
	}

	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &mockLogger{}
			f := newTestFormatter(Config{
				Format:     tt.format,
				WithStats:  tt.withStats,
				WithColors: tt.withColors,
			}, log)

			output, err := f.Format(createTestReport())
			require.NoError(t, err)
			t.Logf("Output:\n%s", output)

			tt.verify(t, output, log)
		})
	}
}

func TestFormatterErrors(t *testing.T) {
	t.Run("nil report", func(t *testing.T) {
		log := &mockLogger{}
		_, err := NewFormatter(Config{Format: FormatText}, log).Format(nil)
		require.Error(t, err)
		assert.Contains(t, log.logs, "ERROR: nil report provided for formatting")
	})

	t.Run("unsupported format", func(t *testing.T) {
		log := &mockLogger{}
		_, err := NewFormatter(Config{Format: "xml"}, log).Format(createTestReport())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format: xml")
	})

	t.Run("empty report", func(t *testing.T) {
		output, err := NewFormatter(Config{Format: FormatText, WithStats: true}, nil).Format(&Report{Estimator: "sma"})
		require.NoError(t, err)
		assert.Contains(t, output, "Runs: 0")
		assert.NotContains(t, output, "Fastest")
	})
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "yaml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("tree")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "tree"))
}
