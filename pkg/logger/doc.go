/*
Package logger wraps uber-go/zap behind a small interface with verbosity
levels and structured fields.

Basic Usage:

	log := logger.NewLogger(logger.Config{
	    Verbosity: 0,  // Default level (INFO)
	})

	log.Info("Demo started")
	log.Debug("Reporter created") // Only shown with verbosity >= 1
	log.Trace("Theme changed")    // Only shown with verbosity >= 2

Verbosity Levels:

	0: Info, Warn, Error (default)
	1: Debug + Level 0
	2: Trace + Level 1

Structured Logging:

	log.WithFields(logger.Fields{
	    "theme":   "braille",
	    "updates": 42,
	}).Debug("Progress finished")

Output Example (JSON):

	{
	    "level": "debug",
	    "ts": "2026-01-20T15:04:05.000Z",
	    "message": "Progress finished",
	    "theme": "braille",
	    "updates": 42
	}

Logs go to stderr by default. The progress line owns stdout, and a log entry
written to the same stream mid-line would break the in-place redraw.

Library code that has no logger to pass uses Nop().
*/
package logger
