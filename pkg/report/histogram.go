package report

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Bin is one histogram bucket covering [Low, High).
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// SturgesBins returns the Sturges bin count for n samples.
func SturgesBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// Histogram buckets values into equal width bins. The last bin is closed
// so the maximum is counted. bins <= 0 selects the Sturges rule.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = SturgesBins(len(values))
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(values)}}
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// WriteHistogram renders the distribution of values as an HTML bar chart.
func WriteHistogram(w io.Writer, title string, values []float64) error {
	bins := Histogram(values, 0)
	labels := make([]string, len(bins))
	data := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%.0f-%.0f", b.Low, b.High)
		data[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d trials", len(values))}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Daily riders"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Trials"}),
	)
	bar.SetXAxis(labels).AddSeries("Trials", data)
	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render histogram: %w", err)
	}
	return nil
}
