package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mevatron/gotqdm/pkg/logger"
)

var textColumns = []string{"THEME", "ITEMS", "TICKS", "PERIOD", "RATE", "PER CALL", "ELAPSED"}

// formatText lays the runs out as an aligned table
func (f *formatter) formatText(report *Report) (string, error) {
	f.log.Debug("Formatting text output")

	var builder strings.Builder
	title := fmt.Sprintf("Benchmark (estimator %s)", report.Estimator)
	if f.config.WithColors {
		f.log.Debug("Applying color formatting")
		title = color.New(color.FgBlue, color.Bold).Sprint(title)
	}
	builder.WriteString(title + "\n\n")

	tw := tabwriter.NewWriter(&builder, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(textColumns, "\t"))
	for _, run := range report.Runs {
		f.log.WithFields(logger.Fields{
			"theme": run.Theme,
		}).Trace("Formatting run")

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			run.Theme,
			humanize.Comma(int64(run.Items)),
			humanize.Comma(int64(run.Ticks)),
			humanize.Comma(int64(run.FinalPeriod)),
			humanize.SIWithDigits(run.Rate, 1, "Hz"),
			run.PerCall,
			run.Elapsed,
		)
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}

	if f.config.WithStats {
		s := f.calculateStats(report)
		builder.WriteString("\nStatistics:\n")
		builder.WriteString(fmt.Sprintf("  Runs: %d\n", s.Runs))
		builder.WriteString(fmt.Sprintf("  Total Items: %s\n", humanize.Comma(int64(s.TotalItems))))
		builder.WriteString(fmt.Sprintf("  Sample Ticks: %s (%.4f%% of calls)\n", humanize.Comma(int64(s.TotalTicks)), s.TickRatio*100))
		builder.WriteString(fmt.Sprintf("  Total Time: %s\n", s.Elapsed))
		if s.Runs > 0 {
			builder.WriteString(fmt.Sprintf("  Fastest: %s (%s/call)\n", s.FastestRun, s.fastestCost))
			builder.WriteString(fmt.Sprintf("  Slowest: %s (%s/call)\n", s.SlowestRun, s.slowestCost))
		}
	}

	return builder.String(), nil
}
