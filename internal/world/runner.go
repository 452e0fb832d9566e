package world

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrRunnerStopped is returned by Do once the runner has exited.
var ErrRunnerStopped = errors.New("simulation runner stopped")

// Runner owns the simulation goroutine: it advances the clock on a
// wall-clock ticker and executes closures submitted by other goroutines,
// one at a time.
type Runner struct {
	sim      *Simulation
	interval time.Duration
	cmds     chan func(*Simulation)
	done     chan struct{}
}

// NewRunner creates a runner ticking every interval (100ms if not positive).
func NewRunner(sim *Simulation, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Runner{
		sim:      sim,
		interval: interval,
		cmds:     make(chan func(*Simulation)),
		done:     make(chan struct{}),
	}
}

// Run processes ticks and commands until ctx is cancelled.
// Must be called at most once.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("simulation runner started", "interval", r.interval)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation runner stopping", "simTime", r.sim.Now())
			return ctx.Err()

		case fn := <-r.cmds:
			fn(r.sim)

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if n := r.sim.Advance(dt); n > 0 {
				slog.Debug("simulation tick", "dt", dt, "callbacks", n)
			}
		}
	}
}

// Do runs fn on the simulation goroutine and waits for it to finish.
func (r *Runner) Do(ctx context.Context, fn func(*Simulation)) error {
	finished := make(chan struct{})
	cmd := func(s *Simulation) {
		defer close(finished)
		fn(s)
	}

	select {
	case r.cmds <- cmd:
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query runs fn on the simulation goroutine and returns its result.
func Query[T any](ctx context.Context, r *Runner, fn func(*Simulation) T) (T, error) {
	var out T
	if err := r.Do(ctx, func(s *Simulation) { out = fn(s) }); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
