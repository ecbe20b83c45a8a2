package output

import (
	"time"

	"github.com/mevatron/gotqdm/pkg/logger"
)

// stats summarizes every run of a report
type stats struct {
	Runs        int           `json:"runs" yaml:"runs"`
	TotalItems  int           `json:"totalItems" yaml:"total_items"`
	TotalTicks  int           `json:"totalTicks" yaml:"total_ticks"`
	TickRatio   float64       `json:"tickRatio" yaml:"tick_ratio"`
	Elapsed     time.Duration `json:"elapsedNs" yaml:"elapsed"`
	FastestRun  string        `json:"fastest,omitempty" yaml:"fastest,omitempty"`
	SlowestRun  string        `json:"slowest,omitempty" yaml:"slowest,omitempty"`
	fastestCost time.Duration
	slowestCost time.Duration
}

func (f *formatter) calculateStats(report *Report) *stats {
	f.log.Debug("Calculating benchmark statistics")

	s := &stats{Runs: len(report.Runs)}
	for i, run := range report.Runs {
		s.TotalItems += run.Items
		s.TotalTicks += run.Ticks
		s.Elapsed += run.Elapsed

		if i == 0 || run.PerCall < s.fastestCost {
			s.fastestCost = run.PerCall
			s.FastestRun = run.Theme
		}
		if i == 0 || run.PerCall > s.slowestCost {
			s.slowestCost = run.PerCall
			s.SlowestRun = run.Theme
		}
	}
	if s.TotalItems > 0 {
		s.TickRatio = float64(s.TotalTicks) / float64(s.TotalItems)
	}

	f.log.WithFields(logger.Fields{
		"runs":  s.Runs,
		"items": s.TotalItems,
		"ticks": s.TotalTicks,
	}).Debug("Statistics calculated")

	return s
}
