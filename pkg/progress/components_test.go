package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowOf(capacity int, samples ...[2]float64) *sampleWindow {
	w := newSampleWindow(capacity)
	for _, s := range samples {
		w.push(s[0], int(s[1]))
	}
	return w
}

func contents(w *sampleWindow) ([]float64, []int) {
	dts := make([]float64, 0, w.len())
	dns := make([]int, 0, w.len())
	for i := 0; i < w.len(); i++ {
		dt, dn := w.at(i)
		dts = append(dts, dt)
		dns = append(dns, dn)
	}
	return dts, dns
}

func TestSampleWindow(t *testing.T) {
	t.Run("push below capacity", func(t *testing.T) {
		w := windowOf(3, [2]float64{1, 10}, [2]float64{2, 20})
		dts, dns := contents(w)
		assert.Equal(t, []float64{1, 2}, dts)
		assert.Equal(t, []int{10, 20}, dns)
		assert.Equal(t, 3, w.capacity())
	})

	t.Run("push evicts oldest", func(t *testing.T) {
		w := windowOf(3,
			[2]float64{1, 10}, [2]float64{2, 20}, [2]float64{3, 30},
			[2]float64{4, 40}, [2]float64{5, 50})
		dts, dns := contents(w)
		assert.Equal(t, []float64{3, 4, 5}, dts)
		assert.Equal(t, []int{30, 40, 50}, dns)
	})

	t.Run("grow keeps everything in order", func(t *testing.T) {
		w := windowOf(2, [2]float64{1, 10}, [2]float64{2, 20}, [2]float64{3, 30})
		w.resize(4)
		w.push(4, 40)
		dts, dns := contents(w)
		assert.Equal(t, []float64{2, 3, 4}, dts)
		assert.Equal(t, []int{20, 30, 40}, dns)
		assert.Equal(t, 4, w.capacity())
	})

	t.Run("shrink keeps newest", func(t *testing.T) {
		w := windowOf(5,
			[2]float64{1, 10}, [2]float64{2, 20}, [2]float64{3, 30}, [2]float64{4, 40})
		w.resize(2)
		dts, dns := contents(w)
		assert.Equal(t, []float64{3, 4}, dts)
		assert.Equal(t, []int{30, 40}, dns)
	})

	t.Run("clear", func(t *testing.T) {
		w := windowOf(2, [2]float64{1, 10})
		w.clear()
		assert.Equal(t, 0, w.len())
		assert.Equal(t, 2, w.capacity())
	})

	t.Run("invalid capacity", func(t *testing.T) {
		w := newSampleWindow(0)
		assert.Equal(t, 1, w.capacity())
		w.resize(-3)
		assert.Equal(t, 1, w.capacity())
	})
}

func TestEstimateRate(t *testing.T) {
	tests := []struct {
		name    string
		samples [][2]float64
		kind    Estimator
		want    float64
	}{
		{
			name:    "ema seeded from first sample",
			samples: [][2]float64{{1, 100}, {1, 200}},
			kind:    EstimatorEMA,
			want:    110,
		},
		{
			name:    "ema skips zero dt",
			samples: [][2]float64{{1, 10}, {0, 5}, {1, 20}},
			kind:    EstimatorEMA,
			want:    11,
		},
		{
			name:    "sma",
			samples: [][2]float64{{1, 10}, {0, 5}, {1, 20}},
			kind:    EstimatorSMA,
			want:    17.5,
		},
		{
			name:    "empty window",
			samples: nil,
			kind:    EstimatorEMA,
			want:    0,
		},
		{
			name:    "only zero dt",
			samples: [][2]float64{{0, 5}, {0, 7}},
			kind:    EstimatorSMA,
			want:    0,
		},
		{
			name:    "negative progress clamps to zero",
			samples: [][2]float64{{1, -50}},
			kind:    EstimatorEMA,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := windowOf(10, tt.samples...)
			got := estimateRate(w, tt.kind, DefaultAlpha)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestNextPeriod(t *testing.T) {
	tests := []struct {
		name    string
		prev    int
		current int
		elapsed float64
		want    int
	}{
		{"refresh target", 1, 1000, 1, 40},
		{"rounds", 1, 10, 0.011, 36},
		{"slow loop clamps to one", 7, 3, 10, 1},
		{"fast loop clamps to max", 1, 1 << 40, 0.001, MaxPeriod},
		{"no elapsed time keeps previous", 17, 1000, 0, 17},
		{"negative elapsed keeps previous", 17, 1000, -1, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPeriod(tt.prev, tt.current, tt.elapsed))
		})
	}
}

func TestIsSampleTick(t *testing.T) {
	assert.True(t, isSampleTick(0, 36))
	assert.True(t, isSampleTick(72, 36))
	assert.False(t, isSampleTick(73, 36))
	assert.True(t, isSampleTick(5, 1))
}

func TestRendererLine(t *testing.T) {
	basic, err := LookupTheme(ThemeBasic, nil, false)
	require.NoError(t, err)

	r := renderer{theme: basic, width: 4, label: "label"}
	var out []byte
	w := &sliceWriter{b: &out}
	r.render(w, frame{current: 1000, total: 2000, percent: 50, rate: 2500, elapsed: 3, eta: 4})

	assert.Equal(t, "\r ||  | 50.0% [1000/2000 | 2.5 kHz | 3s<4s] label ", string(out))
}

type sliceWriter struct{ b *[]byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.b = append(*w.b, p...)
	return len(p), nil
}

func TestRendererBar(t *testing.T) {
	blocks, err := LookupTheme(ThemeBlocks, nil, false)
	require.NoError(t, err)

	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"empty", 0, 8, "    "},
		{"partial cell", 1, 8, "▌   "},
		{"half", 4, 8, "██  "},
		{"full", 8, 8, "████"},
		{"overflow clamps", 16, 8, "████"},
		{"negative clamps", -4, 8, "    "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := renderer{theme: blocks, width: 4}
			got := r.bar(frame{current: tt.current, total: tt.total})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScaleRate(t *testing.T) {
	tests := []struct {
		rate  float64
		value float64
		unit  string
	}{
		{0, 0, "Hz"},
		{999, 999, "Hz"},
		{1000, 1000, "Hz"},
		{2500, 2.5, "kHz"},
		{3.5e6, 3.5, "MHz"},
	}

	for _, tt := range tests {
		value, unit := scaleRate(tt.rate)
		assert.InDelta(t, tt.value, value, 1e-9)
		assert.Equal(t, tt.unit, unit)
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		r, g, b int
	}{
		{"red", 0, transitionSaturation, transitionValue, 255, 89, 89},
		{"green", 100.0 / 300, transitionSaturation, transitionValue, 89, 255, 89},
		{"gray", 0.5, 0, 0.5, 127, 127, 127},
		{"hue wraps", 1, transitionSaturation, transitionValue, 255, 89, 89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := hsvToRGB(tt.h, tt.s, tt.v)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}

func TestPaletteBarColor(t *testing.T) {
	fixed := newPalette(true, false)
	assert.Same(t, fixed.bar, fixed.barColor(10))
	assert.Same(t, fixed.bar, fixed.barColor(90))

	p := newPalette(true, true)
	half := p.barColor(50)
	assert.Same(t, half, p.barColor(50), "same hue step reuses the color")

	done := p.barColor(100)
	assert.NotSame(t, half, done)
	assert.Contains(t, done.Sprint("x"), "38;2;89;255;89")

	// Copies of the palette share the cache
	copied := p
	assert.Same(t, done, copied.barColor(100))
}
