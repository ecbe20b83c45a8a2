package workload

import "time"

// Status represents the current state of the runner
type Status string

const (
	// StatusIdle indicates the runner is ready but not processing
	StatusIdle Status = "idle"

	// StatusProcessing indicates items are being worked on
	StatusProcessing Status = "processing"

	// StatusStopped indicates the last run has ended
	StatusStopped Status = "stopped"
)

// Stats provides runtime statistics about a run
type Stats struct {
	// ActiveWorkers is the number of workers currently inside an item
	ActiveWorkers int

	// Completed is the number of items that finished without error
	Completed int

	// Failed is the number of items that returned an error
	Failed int

	// Status is the current state of the runner
	Status Status

	// Uptime is how long the current or last run has taken
	Uptime time.Duration
}
