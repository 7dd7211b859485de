package search

import (
	"context"
	"sync"
	"time"
)

// DefaultQuietInterval is how long input must stay unchanged before a search runs.
const DefaultQuietInterval = 500 * time.Millisecond

// Debouncer runs only the most recently scheduled function, once the quiet
// interval has passed without another Schedule call. Each scheduled call gets
// a generation number; superseded calls have their context cancelled and can
// check IsCurrent before publishing results.
type Debouncer struct {
	quiet time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietInterval
	}
	return &Debouncer{quiet: quiet}
}

// Schedule supersedes any pending or running call and arms fn.
func (d *Debouncer) Schedule(fn func(ctx context.Context, gen uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.timer = time.AfterFunc(d.quiet, func() {
		if !d.IsCurrent(gen) {
			return
		}
		fn(ctx, gen)
	})
	return gen
}

// Stop cancels pending and running work without scheduling anything new.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
}

// IsCurrent reports whether gen is the latest scheduled generation.
func (d *Debouncer) IsCurrent(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
