package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/core/montecarlo"
)

func TestSturgesBins(t *testing.T) {
	assert.Equal(t, 1, SturgesBins(0))
	assert.Equal(t, 1, SturgesBins(1))
	assert.Equal(t, 2, SturgesBins(2))
	assert.Equal(t, 11, SturgesBins(1000))
	assert.Equal(t, 15, SturgesBins(10000))
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 10}, 5)
	require.Len(t, bins, 5)
	assert.Equal(t, 0.0, bins[0].Low)
	assert.Equal(t, 10.0, bins[4].High)
	assert.Equal(t, []int{2, 2, 1, 0, 1}, []int{bins[0].Count, bins[1].Count, bins[2].Count, bins[3].Count, bins[4].Count})

	total := 0
	for _, b := range Histogram([]float64{5, 7, 9, 11, 13, 15, 17}, 0) {
		total += b.Count
	}
	assert.Equal(t, 7, total)
}

func TestHistogramDegenerate(t *testing.T) {
	assert.Nil(t, Histogram(nil, 3))
	bins := Histogram([]float64{4, 4, 4}, 3)
	require.Len(t, bins, 1)
	assert.Equal(t, 3, bins[0].Count)
}

func TestWriteHistogram(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistogram(&buf, "Blue Line", []float64{1, 2, 3, 4}))
	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Blue Line")
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	runs := []metrics.RunSummary{{
		Scenario:    "sunny",
		Weather:     "sunny",
		Trials:      10,
		Interval:    montecarlo.Interval{Lower: 1, Mean: 2, Upper: 3},
		ValueAtRisk: 0.5,
		Risk:        0.05,
	}}
	require.NoError(t, WriteTable(&buf, runs))
	out := buf.String()
	assert.Contains(t, out, "Scenario")
	assert.Contains(t, out, "sunny")
	assert.Contains(t, out, "2.0")
	assert.Contains(t, out, "0.5 @0.05")
}

func TestWriteStations(t *testing.T) {
	var buf bytes.Buffer
	WriteStations(&buf, []string{"A", "B"}, []float64{10, 20}, []float64{1, 2})
	assert.Contains(t, buf.String(), "Std dev")
	assert.Contains(t, buf.String(), "20.0")
}
