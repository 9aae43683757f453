package montecarlo

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/kilianp07/ridership/core/logger"
	"github.com/kilianp07/ridership/core/random"
)

const (
	// DefaultConfidence is the bootstrap confidence level used by RunSimulation.
	DefaultConfidence = 0.68
	// DefaultResamples is the number of bootstrap resamples used by RunSimulation.
	DefaultResamples = 100
	// DefaultRisk is the usual value at risk level.
	DefaultRisk = 0.05
)

// Trial is one execution of the stochastic process under study.
type Trial interface {
	SimulateOnce() (float64, error)
}

// TrialFunc adapts a function to the Trial interface.
type TrialFunc func() (float64, error)

// SimulateOnce implements Trial.
func (f TrialFunc) SimulateOnce() (float64, error) { return f() }

// UnimplementedTrial can be embedded by models that are still being built.
// It always fails with ErrNotImplemented.
type UnimplementedTrial struct{}

// SimulateOnce implements Trial.
func (UnimplementedTrial) SimulateOnce() (float64, error) { return 0, ErrNotImplemented }

// Observer is notified after every completed trial.
type Observer func(index int, outcome float64)

// Option configures a Driver.
type Option func(*Driver)

// WithConfidence sets the bootstrap confidence level used by runs.
func WithConfidence(c float64) Option { return func(d *Driver) { d.confidence = c } }

// WithResamples sets the number of bootstrap resamples used by runs.
func WithResamples(n int) Option { return func(d *Driver) { d.resamples = n } }

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(d *Driver) { d.log = l } }

// WithObserver registers a callback invoked after each trial. With RunParallel
// it is called from worker goroutines.
func WithObserver(o Observer) Option { return func(d *Driver) { d.observer = o } }

// Driver runs trials and owns the result set of its last run. A Driver is not
// safe for concurrent use.
type Driver struct {
	trial      Trial
	src        random.Resampler
	confidence float64
	resamples  int
	log        logger.Logger
	observer   Observer

	results []float64
	ran     bool
}

// NewDriver returns a driver for trial. src feeds bootstrap resampling. A nil
// trial behaves like UnimplementedTrial.
func NewDriver(trial Trial, src random.Resampler, opts ...Option) *Driver {
	if trial == nil {
		trial = UnimplementedTrial{}
	}
	d := &Driver{
		trial:      trial,
		src:        src,
		confidence: DefaultConfidence,
		resamples:  DefaultResamples,
		log:        nopLogger{},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// RunSimulation executes trials sequential calls to the trial, replacing any
// previous result set, and returns the bootstrap interval of the outcomes.
// The first failing trial aborts the run. Cancelling ctx aborts between
// trials; the previous result set is kept in both cases.
func (d *Driver) RunSimulation(ctx context.Context, trials int) (Interval, error) {
	if trials <= 0 {
		return Interval{}, fmt.Errorf("%w: trial count must be > 0, got %d", ErrInvalidArgument, trials)
	}
	results := make([]float64, 0, trials)
	for k := 0; k < trials; k++ {
		if err := ctx.Err(); err != nil {
			return Interval{}, fmt.Errorf("run aborted after %d trials: %w", k, err)
		}
		x, err := d.trial.SimulateOnce()
		if err != nil {
			return Interval{}, fmt.Errorf("trial %d: %w", k, err)
		}
		results = append(results, x)
		if d.observer != nil {
			d.observer(k, x)
		}
	}
	return d.install(results)
}

func (d *Driver) install(results []float64) (Interval, error) {
	d.results = results
	d.ran = true
	iv, err := d.Bootstrap(results, d.confidence, d.resamples)
	if err != nil {
		return Interval{}, err
	}
	d.log.Infof("run complete: %d trials, mean %.2f [%.2f, %.2f]", len(results), iv.Mean, iv.Lower, iv.Upper)
	return iv, nil
}

// Bootstrap runs Bootstrap with the driver's random source.
func (d *Driver) Bootstrap(values []float64, confidence float64, resamples int) (Interval, error) {
	return Bootstrap(d.src, values, confidence, resamples)
}

// ValueAtRisk returns the outcome at index floor(len*risk) of the sorted
// result set of the last run. It sorts the result set in place. Before any
// successful run it returns 0 and ErrIllegalState.
func (d *Driver) ValueAtRisk(risk float64) (float64, error) {
	if !d.ran {
		d.log.Warnf("value at risk requested before any run")
		return 0, ErrIllegalState
	}
	if math.IsNaN(risk) || risk < 0 || risk > 1 {
		return 0, fmt.Errorf("%w: risk must be in [0,1], got %v", ErrInvalidArgument, risk)
	}
	slices.Sort(d.results)
	idx := int(float64(len(d.results)) * risk)
	if idx >= len(d.results) {
		idx = len(d.results) - 1
	}
	return d.results[idx], nil
}

// Results returns a copy of the result set of the last run, in its current
// order (ValueAtRisk sorts it).
func (d *Driver) Results() []float64 {
	if !d.ran {
		return nil
	}
	return slices.Clone(d.results)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
