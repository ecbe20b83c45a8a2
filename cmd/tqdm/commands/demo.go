package commands

import (
	"github.com/mevatron/gotqdm/cmd/tqdm/app"
	"github.com/mevatron/gotqdm/pkg/progress"
	"github.com/spf13/cobra"
)

type demoOptions struct {
	*Options
	count   int
	workers int
	rate    int
	work    int
}

func newDemoCommand(opts *Options) *cobra.Command {
	do := &demoOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "demo [flags] [theme...]",
		Short: "Run a sample loop for each theme",
		Long: `Run one loop per theme (all themes when none are named), resetting the
reporter between loops. With --workers or --rate the items are processed by a
pool of goroutines whose completions drive the bar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, args, do)
		},
	}

	cmd.Flags().IntVarP(&do.count, "count", "n", 0,
		"items per theme (default from TQDM_COUNT, 2000)")
	cmd.Flags().IntVarP(&do.workers, "workers", "w", 0,
		"goroutines processing items (default from TQDM_WORKERS, 1)")
	cmd.Flags().IntVarP(&do.rate, "rate", "r", -1,
		"items per second, 0 for unlimited (default from TQDM_RATE)")
	cmd.Flags().IntVar(&do.work, "work", 200,
		"arithmetic rounds per item")

	return cmd
}

func runDemo(cmd *cobra.Command, args []string, opts *demoOptions) error {
	application, err := newApp(cmd, opts.Options)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	cfg := application.Config()
	demo := app.DemoOptions{
		Count:   cfg.Count,
		Workers: cfg.Workers,
		Rate:    cfg.Rate,
		Work:    opts.work,
	}
	if cmd.Flags().Changed("count") {
		demo.Count = opts.count
	}
	if cmd.Flags().Changed("workers") {
		demo.Workers = opts.workers
	}
	if opts.rate >= 0 {
		demo.Rate = opts.rate
	}
	for _, name := range args {
		demo.Themes = append(demo.Themes, progress.ThemeName(name))
	}

	return application.RunDemo(demo)
}
