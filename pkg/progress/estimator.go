package progress

import "math"

// estimateRate returns the throughput in items per second over the window.
// Samples with dt <= 0 carry no usable instantaneous rate and are skipped by
// the EMA; the SMA only divides when the summed time is positive. The result
// is never negative, NaN or infinite.
func estimateRate(w *sampleWindow, kind Estimator, alpha float64) float64 {
	var rate float64
	switch kind {
	case EstimatorSMA:
		rate = smaRate(w)
	default:
		rate = emaRate(w, alpha)
	}
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}

func emaRate(w *sampleWindow, alpha float64) float64 {
	var (
		rate   float64
		seeded bool
	)
	for i := 0; i < w.len(); i++ {
		dt, dn := w.at(i)
		if dt <= 0 {
			continue
		}
		r := float64(dn) / dt
		if !seeded {
			rate = r
			seeded = true
			continue
		}
		rate = alpha*r + (1-alpha)*rate
	}
	return rate
}

func smaRate(w *sampleWindow) float64 {
	var (
		dtSum float64
		dnSum int
	)
	for i := 0; i < w.len(); i++ {
		dt, dn := w.at(i)
		dtSum += dt
		dnSum += dn
	}
	if dtSum <= 0 {
		return 0
	}
	return float64(dnSum) / dtSum
}
