// Package report renders run summaries for humans: a text table and an HTML
// histogram of the outcome distribution.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/kilianp07/ridership/core/metrics"
)

// WriteTable renders one row per summary.
func WriteTable(w io.Writer, runs []metrics.RunSummary) error {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Scenario", "Weather", "Event", "Trials", "Lower", "Mean", "Upper", "VaR", "Std dev", "Time"})
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range runs {
		t.Append([]string{
			r.Scenario,
			r.Weather,
			strconv.FormatBool(r.BigEvent),
			strconv.Itoa(r.Trials),
			riders(r.Interval.Lower),
			riders(r.Interval.Mean),
			riders(r.Interval.Upper),
			fmt.Sprintf("%s @%g", riders(r.ValueAtRisk), r.Risk),
			riders(r.StdDev),
			r.Duration.Round(time.Millisecond).String(),
		})
	}
	t.Render()
	return nil
}

// WriteStations renders the station table of a line.
func WriteStations(w io.Writer, names []string, means, stddevs []float64) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"#", "Station", "Mean", "Std dev"})
	t.SetAutoFormatHeaders(false)
	for i, n := range names {
		t.Append([]string{strconv.Itoa(i), n, riders(means[i]), riders(stddevs[i])})
	}
	t.Render()
}

func riders(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
