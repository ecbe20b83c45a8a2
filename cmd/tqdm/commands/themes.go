package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	sampleWidth    = 24
	sampleFraction = 0.625
)

func newThemesCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes with a sample bar",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			out := cmd.OutOrStdout()
			if opts.Streams.Out != nil {
				out = opts.Streams.Out
			}
			for _, name := range application.ThemeNames() {
				sample, err := application.ThemeSample(name, sampleWidth, sampleFraction)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-14s %s\n", name, sample)
			}
			return nil
		},
	}
}
