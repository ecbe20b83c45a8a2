package commands

import (
	"fmt"

	"github.com/mevatron/gotqdm/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCommand(opts *Options) *cobra.Command {
	var showFull bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.Streams.Out != nil {
				out = opts.Streams.Out
			}
			if !showFull {
				fmt.Fprintln(out, version.Short())
				return nil
			}

			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			fmt.Fprint(out, version.FullVersion(application.Environment()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showFull, "full", "f", false,
		"show full version information")

	return cmd
}
