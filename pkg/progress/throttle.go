package progress

import "math"

// nextPeriod picks the sampling interval that yields roughly RefreshHz redraws
// per second given how fast current has advanced over the whole session.
// It returns prev unchanged when the session has no measurable duration.
func nextPeriod(prev, current int, elapsed float64) int {
	if elapsed <= 0 {
		return prev
	}
	p := math.Round(float64(current) / RefreshHz / elapsed)
	if math.IsNaN(p) {
		return prev
	}
	return clampPeriod(p)
}

func clampPeriod(p float64) int {
	switch {
	case p < 1:
		return 1
	case p > MaxPeriod:
		return MaxPeriod
	default:
		return int(p)
	}
}

// isSampleTick reports whether a call at current should update and redraw.
func isSampleTick(current, period int) bool {
	return current%period == 0
}
