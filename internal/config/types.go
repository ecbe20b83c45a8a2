package config

// Constants for configuration limits and defaults
const (
	// EnvPrefix is prepended to every environment variable name
	EnvPrefix = "TQDM"

	// MaxWidth is the widest bar accepted, in cells
	MaxWidth = 500

	// MaxWorkerMultiplier is the maximum multiple of CPU cores for worker count
	MaxWorkerMultiplier = 4

	// DefaultCount is the number of items a demo loop runs per theme
	DefaultCount = 2000
)
