package montecarlo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ridership/core/random"
)

func TestBootstrapPointEstimateIsSampleMean(t *testing.T) {
	values := []float64{3, 9, 1, 7, 5}
	for seed := uint64(1); seed <= 5; seed++ {
		iv, err := Bootstrap(random.New(seed), values, 0.68, 100)
		require.NoError(t, err)
		assert.Equal(t, 5.0, iv.Mean)
		assert.LessOrEqual(t, iv.Lower, iv.Upper)
	}
}

func TestBootstrapBoundsOrdering(t *testing.T) {
	src := random.New(11)
	values := make([]float64, 200)
	for i := range values {
		values[i] = src.Normal(1000, 100)
	}
	iv, err := Bootstrap(src, values, 0.68, 200)
	require.NoError(t, err)
	assert.LessOrEqual(t, iv.Lower, iv.Mean)
	assert.LessOrEqual(t, iv.Mean, iv.Upper)
}

func TestBootstrapScriptedIndices(t *testing.T) {
	// Resample k draws every element at index k%2, so the resample means are
	// 10, 20, 10, 20 -> sorted 10, 10, 20, 20.
	src := &random.Scripted{Ints: []int{0, 0, 1, 1, 0, 0, 1, 1}}
	iv, err := Bootstrap(src, []float64{10, 20}, 0.5, 4)
	require.NoError(t, err)
	// lower = floor(0.25*4) = 1, upper = 4-1-1 = 2
	assert.Equal(t, Interval{Lower: 10, Mean: 15, Upper: 20}, iv)
}

func TestBootstrapConstantSample(t *testing.T) {
	iv, err := Bootstrap(random.New(1), []float64{4, 4, 4}, 0.95, 50)
	require.NoError(t, err)
	assert.Equal(t, Interval{Lower: 4, Mean: 4, Upper: 4}, iv)
}

func TestBootstrapInvalidArguments(t *testing.T) {
	src := random.New(1)
	_, err := Bootstrap(src, nil, 0.68, 100)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = Bootstrap(src, []float64{1}, 0.68, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = Bootstrap(src, []float64{1}, 1.5, 10)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
