package montecarlo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ridership/core/random"
)

// counter returns 1, 2, 3, ... on successive calls.
type counter struct{ n float64 }

func (c *counter) SimulateOnce() (float64, error) {
	c.n++
	return c.n, nil
}

func TestRunSimulationCollectsResults(t *testing.T) {
	d := NewDriver(&counter{}, random.New(1))
	iv, err := d.RunSimulation(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 5.5, iv.Mean)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, d.Results())
}

func TestRunSimulationReplacesPreviousResults(t *testing.T) {
	c := &counter{}
	d := NewDriver(c, random.New(1))
	_, err := d.RunSimulation(context.Background(), 3)
	require.NoError(t, err)
	_, err = d.RunSimulation(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, d.Results())
}

func TestRunSimulationUnimplementedTrial(t *testing.T) {
	d := NewDriver(nil, random.New(1))
	_, err := d.RunSimulation(context.Background(), 5)
	assert.True(t, errors.Is(err, ErrNotImplemented))

	d = NewDriver(UnimplementedTrial{}, random.New(1))
	_, err = d.RunSimulation(context.Background(), 5)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestRunSimulationTrialErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	d := NewDriver(TrialFunc(func() (float64, error) {
		calls++
		if calls == 3 {
			return 0, boom
		}
		return 1, nil
	}), random.New(1))
	_, err := d.RunSimulation(context.Background(), 10)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 3, calls)

	_, err = d.ValueAtRisk(0.05)
	assert.True(t, errors.Is(err, ErrIllegalState), "failed run must not install results")
}

func TestRunSimulationInvalidTrialCount(t *testing.T) {
	d := NewDriver(&counter{}, random.New(1))
	_, err := d.RunSimulation(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestRunSimulationCancelledKeepsPreviousResults(t *testing.T) {
	d := NewDriver(&counter{}, random.New(1))
	_, err := d.RunSimulation(context.Background(), 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.RunSimulation(ctx, 5)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []float64{1, 2}, d.Results())
}

func TestValueAtRiskBeforeRun(t *testing.T) {
	d := NewDriver(&counter{}, random.New(1))
	v, err := d.ValueAtRisk(0.05)
	assert.True(t, errors.Is(err, ErrIllegalState))
	assert.Equal(t, 0.0, v)
	assert.Nil(t, d.Results())
}

func TestValueAtRiskQuantile(t *testing.T) {
	vals := []float64{50, 10, 40, 20, 30, 90, 80, 70, 60, 100}
	i := 0
	d := NewDriver(TrialFunc(func() (float64, error) {
		v := vals[i]
		i++
		return v, nil
	}), random.New(1))
	_, err := d.RunSimulation(context.Background(), len(vals))
	require.NoError(t, err)

	v, err := d.ValueAtRisk(0.05)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v) // floor(10*0.05) = 0

	v, err = d.ValueAtRisk(0.25)
	require.NoError(t, err)
	assert.Equal(t, 30.0, v) // floor(2.5) = 2

	v, err = d.ValueAtRisk(1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	assert.Equal(t, []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, d.Results(), "result set is sorted in place")

	_, err = d.ValueAtRisk(-0.1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestValueAtRiskMonotonic(t *testing.T) {
	src := random.New(5)
	d := NewDriver(TrialFunc(func() (float64, error) { return src.Normal(0, 1), nil }), random.New(6))
	_, err := d.RunSimulation(context.Background(), 500)
	require.NoError(t, err)
	prev, err := d.ValueAtRisk(0)
	require.NoError(t, err)
	for r := 0.01; r <= 1.0; r += 0.01 {
		v, err := d.ValueAtRisk(r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestRunSimulationDeterministic(t *testing.T) {
	run := func() (Interval, []float64) {
		src := random.New(99)
		d := NewDriver(TrialFunc(func() (float64, error) { return src.Normal(500, 50), nil }), random.New(100))
		iv, err := d.RunSimulation(context.Background(), 200)
		require.NoError(t, err)
		return iv, d.Results()
	}
	iv1, r1 := run()
	iv2, r2 := run()
	assert.Equal(t, iv1, iv2)
	assert.Equal(t, r1, r2)
}

func TestObserverSeesEveryTrial(t *testing.T) {
	var seen []int
	d := NewDriver(&counter{}, random.New(1), WithObserver(func(i int, _ float64) { seen = append(seen, i) }))
	_, err := d.RunSimulation(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestRunParallelMatchesBlocks(t *testing.T) {
	factory := func(worker int) (Trial, error) {
		c := &counter{n: float64(worker * 1000)}
		return c, nil
	}
	var mu sync.Mutex
	observed := 0
	d := NewDriver(nil, random.New(1), WithObserver(func(int, float64) {
		mu.Lock()
		observed++
		mu.Unlock()
	}))
	iv, err := d.RunParallel(context.Background(), 7, 3, factory)
	require.NoError(t, err)
	// blocks of 3, 2, 2 trials
	assert.Equal(t, []float64{1, 2, 3, 1001, 1002, 2001, 2002}, d.Results())
	assert.InDelta(t, (1.0+2+3+1001+1002+2001+2002)/7, iv.Mean, 1e-9)
	assert.Equal(t, 7, observed)
}

func TestRunParallelError(t *testing.T) {
	boom := errors.New("factory failed")
	d := NewDriver(nil, random.New(1))
	_, err := d.RunParallel(context.Background(), 10, 2, func(w int) (Trial, error) {
		if w == 1 {
			return nil, boom
		}
		return &counter{}, nil
	})
	assert.True(t, errors.Is(err, boom))
	_, err = d.ValueAtRisk(0.1)
	assert.True(t, errors.Is(err, ErrIllegalState))

	_, err = d.RunParallel(context.Background(), 10, 2, nil)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestRunParallelMoreWorkersThanTrials(t *testing.T) {
	d := NewDriver(nil, random.New(1))
	_, err := d.RunParallel(context.Background(), 2, 8, func(int) (Trial, error) { return &counter{}, nil })
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, d.Results())
}
