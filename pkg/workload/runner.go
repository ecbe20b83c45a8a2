/*
Package workload runs synthetic work items on a pool of goroutines and funnels
their completions back to the calling goroutine, where a progress reporter can
consume them without locking.

Basic usage:

	runner, err := workload.NewRunner(workload.Config{
		Workers: 4,
		Rate:    5000, // items/sec, 0 for unlimited
	})

	stats, err := runner.Run(ctx, 2000, workload.Spin(200), func(done int) {
		bar.Progress(done, 2000)
	})
*/
package workload

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Item performs the work for item n
type Item func(ctx context.Context, n int) error

// Config holds the configuration for the runner
type Config struct {
	// Workers is the number of concurrent workers
	Workers int

	// Rate is the maximum number of items started per second (0 for unlimited)
	Rate int
}

// Runner executes a fixed number of items and reports each completion
type Runner interface {
	// Run processes items 0..n-1 and calls done with the number of items
	// completed so far, always from the goroutine that called Run. It
	// returns once every item has been processed, ctx is cancelled or an
	// item fails. No new item starts after the first failure.
	Run(ctx context.Context, n int, work Item, done func(completed int)) (Stats, error)

	// GetStats returns current statistics about the run
	GetStats() Stats

	// Status returns the current status of the runner
	Status() Status
}

type runner struct {
	config  Config
	limiter *rate.Limiter

	mu        sync.RWMutex
	running   bool
	startTime time.Time
	endTime   time.Time
	abortErr  error

	activeWorkers atomic.Int32
	completed     atomic.Int64
	failed        atomic.Int64
}

type completion struct {
	n   int
	err error
}

// NewRunner creates a runner with the given configuration
func NewRunner(config Config) (Runner, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.Rate), 1)
	}

	return &runner{
		config:  config,
		limiter: limiter,
	}, nil
}

// validateConfig checks if the runner configuration is valid
func validateConfig(config Config) error {
	if config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive")
	}
	if config.Rate < 0 {
		return fmt.Errorf("rate must be non-negative")
	}
	return nil
}

func (r *runner) Run(ctx context.Context, n int, work Item, done func(completed int)) (Stats, error) {
	if n < 0 {
		return Stats{}, fmt.Errorf("item count must be non-negative")
	}
	if work == nil {
		return Stats{}, fmt.Errorf("work function is required")
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return Stats{}, fmt.Errorf("runner already running")
	}
	r.running = true
	r.startTime = time.Now()
	r.endTime = time.Time{}
	r.abortErr = nil
	r.completed.Store(0)
	r.failed.Store(0)
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make(chan int, r.config.Workers*2)
	completions := make(chan completion, r.config.Workers*2)

	var wg sync.WaitGroup
	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go r.worker(ctx, &wg, items, completions, work)
	}

	// Feed items until exhausted or cancelled
	go func() {
		defer close(items)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case items <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(completions)
	}()

	var firstErr error
	finished := 0
	for c := range completions {
		if c.err != nil {
			r.failed.Add(1)
			if firstErr == nil {
				firstErr = fmt.Errorf("item %d failed: %w", c.n, c.err)
				cancel()
			}
			continue
		}
		r.completed.Add(1)
		finished++
		if done != nil {
			done(finished)
		}
	}

	r.mu.Lock()
	r.running = false
	r.endTime = time.Now()
	abortErr := r.abortErr
	r.mu.Unlock()

	stats := r.GetStats()
	if firstErr != nil {
		return stats, firstErr
	}
	if finished+stats.Failed < n {
		cause := ctx.Err()
		if cause == nil {
			cause = abortErr
		}
		return stats, fmt.Errorf("run cancelled: %w", cause)
	}
	return stats, nil
}

func (r *runner) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uptime := time.Duration(0)
	switch {
	case r.running:
		uptime = time.Since(r.startTime)
	case !r.startTime.IsZero():
		uptime = r.endTime.Sub(r.startTime)
	}

	return Stats{
		ActiveWorkers: int(r.activeWorkers.Load()),
		Completed:     int(r.completed.Load()),
		Failed:        int(r.failed.Load()),
		Status:        r.getStatus(),
		Uptime:        uptime,
	}
}

func (r *runner) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.getStatus()
}

// internal helper, callers hold mu
func (r *runner) getStatus() Status {
	switch {
	case r.running:
		return StatusProcessing
	case r.startTime.IsZero():
		return StatusIdle
	default:
		return StatusStopped
	}
}

// worker processes items until the feed closes or ctx is cancelled
func (r *runner) worker(ctx context.Context, wg *sync.WaitGroup, items <-chan int, out chan<- completion, work Item) {
	defer wg.Done()

	for n := range items {
		if ctx.Err() != nil {
			return
		}
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				r.abort(fmt.Errorf("rate limiter: %w", err))
				return
			}
		}

		r.activeWorkers.Add(1)
		err := work(ctx, n)
		r.activeWorkers.Add(-1)

		select {
		case <-ctx.Done():
			return
		case out <- completion{n: n, err: err}:
		}
	}
}

// abort records why a worker gave up before the feed was exhausted
func (r *runner) abort(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.abortErr == nil {
		r.abortErr = err
	}
}

// Spin returns an Item that burns roughly iterations rounds of arithmetic.
// It stands in for real per-item work in demos and benchmarks.
func Spin(iterations int) Item {
	return func(ctx context.Context, n int) error {
		x := uint64(n) + 1
		for i := 0; i < iterations; i++ {
			x ^= x << 13
			x ^= x >> 7
			x ^= x << 17
		}
		sink.Add(x & 1)
		return nil
	}
}

// sink keeps Spin's arithmetic from being optimized away
var sink atomic.Uint64
