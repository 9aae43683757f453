package montecarlo

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/ridership/core/random"
)

// Interval is a bootstrap confidence interval around the sample mean.
type Interval struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Bootstrap estimates the sampling uncertainty of the mean of values.
//
// It draws resamples datasets of len(values) elements uniformly with
// replacement, sorts their means and picks the order statistics at
// floor(((1-confidence)/2)*resamples) and resamples-1 minus that index.
// Mean is the mean of the original values, not of the resampled means.
func Bootstrap(src random.Resampler, values []float64, confidence float64, resamples int) (Interval, error) {
	if len(values) == 0 {
		return Interval{}, fmt.Errorf("%w: bootstrap of empty sample", ErrInvalidArgument)
	}
	if resamples <= 0 {
		return Interval{}, fmt.Errorf("%w: resamples must be > 0, got %d", ErrInvalidArgument, resamples)
	}
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return Interval{}, fmt.Errorf("%w: confidence must be in [0,1], got %v", ErrInvalidArgument, confidence)
	}

	n := len(values)
	means := make([]float64, resamples)
	for k := range means {
		var sum float64
		for i := 0; i < n; i++ {
			sum += values[src.IntN(n)]
		}
		means[k] = sum / float64(n)
	}
	slices.Sort(means)

	lower := int(((1 - confidence) / 2) * float64(resamples))
	upper := resamples - 1 - lower
	return Interval{
		Lower: means[lower],
		Mean:  stat.Mean(values, nil),
		Upper: means[upper],
	}, nil
}
