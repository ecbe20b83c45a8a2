/*
Package progress renders a single, self-overwriting status line for loops
that report their position on every iteration.

Basic usage:

	bar := progress.New(progress.Config{
		Theme: progress.ThemeBraille,
		Label: "indexing",
	}, log)

	for i := 0; i < n; i++ {
		work(i)
		bar.Progress(i, n)
	}
	bar.Finish()

Output Example:

	 ⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⣿⡆                   ▏ 52.5% [1050/2000 | 41.3 kHz | 0s<0s] indexing

Sampling:

The first 10 sample ticks happen on every call. After that the reporter only
samples calls where current is a multiple of an adaptive period chosen so the
line is redrawn about 25 times per second, capped at 500000. Non-sampled
calls cost one modulo, so the reporter can sit inside loops running at
hundreds of millions of iterations per second.

Throughput is an exponential moving average (or, optionally, a simple moving
average) over a window of the most recent samples: 50 during warm-up, 75
afterwards.

Themes:

	blocks        ▏▎▍▌▋▊▉█ (default)
	basic         \-/|
	line          ─╾━═
	circle        ◓◑◒◐#
	braille       ⡀⡄⡆⡇⡏⡟⡿⣿
	braille-spin  ⠙⠹⠸⠼⠴⠦⠇⠿
	vertical      ▁▂▃▄▅▆▇█

Set Config.ASCII when the output cannot render these glyphs; every theme then
resolves to an ASCII table.

Thread Safety:

A Reporter is owned by one goroutine. It holds no locks; when several
goroutines make progress, funnel their completions to one goroutine that
calls Progress.
*/
package progress
