package commands

import (
	"github.com/mevatron/gotqdm/cmd/tqdm/app"
	"github.com/mevatron/gotqdm/pkg/output"
	"github.com/mevatron/gotqdm/pkg/progress"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	*Options
	calls     int
	format    string
	withStats bool
}

func newBenchCommand(opts *Options) *cobra.Command {
	bo := &benchOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "bench [flags] [theme...]",
		Short: "Measure the per-call overhead of progress reporting",
		Long: `Call Progress in a tight loop for each theme, discarding the rendered
output, and report the time per call, the number of sample ticks and the final
sampling period.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, args, bo)
		},
	}

	cmd.Flags().IntVarP(&bo.calls, "calls", "n", 10000000,
		"Progress calls per theme")
	cmd.Flags().StringVarP(&bo.format, "output", "o", "text",
		"output format: text|json|yaml")
	cmd.Flags().BoolVar(&bo.withStats, "stats", true,
		"include summary statistics")

	return cmd
}

func runBench(cmd *cobra.Command, args []string, opts *benchOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	application, err := newApp(cmd, opts.Options)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	bench := app.BenchOptions{
		Calls:  opts.calls,
		Format: format,
		Stats:  opts.withStats,
	}
	for _, name := range args {
		bench.Themes = append(bench.Themes, progress.ThemeName(name))
	}

	return application.RunBench(bench)
}
