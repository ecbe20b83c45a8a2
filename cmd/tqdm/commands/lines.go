package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinesCommand(opts *Options) *cobra.Command {
	var total int

	cmd := &cobra.Command{
		Use:   "lines --total N",
		Short: "Copy stdin to stdout, showing progress on stderr",
		Long: `Copy standard input to standard output line by line while rendering a
progress line over the expected number of lines on standard error.

  find . -type f | tqdm lines --total "$(find . -type f | wc -l)" > files.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if total <= 0 {
				return fmt.Errorf("--total must be positive")
			}
			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			return application.RunLines(total)
		},
	}

	cmd.Flags().IntVarP(&total, "total", "n", 0,
		"expected number of lines")

	return cmd
}
