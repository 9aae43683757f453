package montecarlo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// TrialFactory builds the Trial used by one worker. Every worker needs its own
// random source and model state, so factories must not share them.
type TrialFactory func(worker int) (Trial, error)

// RunParallel runs trials across workers goroutines and installs the outcomes
// as the driver's result set, like RunSimulation. Trials are split into
// contiguous blocks, one per worker, so a fixed set of per-worker seeds gives a
// reproducible result set. The first error cancels the remaining workers.
func (d *Driver) RunParallel(ctx context.Context, trials, workers int, factory TrialFactory) (Interval, error) {
	if trials <= 0 {
		return Interval{}, fmt.Errorf("%w: trial count must be > 0, got %d", ErrInvalidArgument, trials)
	}
	if factory == nil {
		return Interval{}, ErrNotImplemented
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}

	results := make([]float64, trials)
	per, rem := trials/workers, trials%workers
	eg, ctx := errgroup.WithContext(ctx)
	start := 0
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		lo, hi := start, start+n
		start = hi
		worker := w
		eg.Go(func() error {
			trial, err := factory(worker)
			if err != nil {
				return fmt.Errorf("worker %d: %w", worker, err)
			}
			if trial == nil {
				trial = UnimplementedTrial{}
			}
			for k := lo; k < hi; k++ {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("worker %d aborted: %w", worker, err)
				}
				x, err := trial.SimulateOnce()
				if err != nil {
					return fmt.Errorf("trial %d: %w", k, err)
				}
				results[k] = x
				if d.observer != nil {
					d.observer(k, x)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Interval{}, err
	}
	d.log.Debugf("parallel run: %d trials on %d workers", trials, workers)
	return d.install(results)
}
