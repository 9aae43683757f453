// Package export writes run summaries and trial outcomes in machine readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/ridership/core/metrics"
)

// Supported summary formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// Write encodes the summaries in the requested format.
func Write(w io.Writer, format string, runs []metrics.RunSummary) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, runs)
	case FormatCSV:
		return WriteCSV(w, runs)
	case FormatYAML, "yml":
		return WriteYAML(w, runs)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the summaries to w as an indented JSON array.
func WriteJSON(w io.Writer, runs []metrics.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}

// WriteYAML writes the summaries to w as a YAML sequence.
func WriteYAML(w io.Writer, runs []metrics.RunSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(runs); err != nil {
		return err
	}
	return enc.Close()
}

var csvHeader = []string{
	"run_id", "scenario", "line", "weather", "big_event", "trials", "num_trains",
	"lower", "mean", "upper", "confidence", "risk", "value_at_risk",
	"stddev", "min", "max", "duration_ms", "time",
}

// WriteCSV writes one row per summary.
func WriteCSV(w io.Writer, runs []metrics.RunSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range runs {
		rec := []string{
			r.RunID,
			r.Scenario,
			r.Line,
			r.Weather,
			strconv.FormatBool(r.BigEvent),
			strconv.Itoa(r.Trials),
			strconv.Itoa(r.NumTrains),
			formatFloat(r.Interval.Lower),
			formatFloat(r.Interval.Mean),
			formatFloat(r.Interval.Upper),
			formatFloat(r.Confidence),
			formatFloat(r.Risk),
			formatFloat(r.ValueAtRisk),
			formatFloat(r.StdDev),
			formatFloat(r.Min),
			formatFloat(r.Max),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
			r.Time.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOutcomesCSV writes the outcome series of a run, one trial per row.
func WriteOutcomesCSV(w io.Writer, outcomes []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trial", "riders"}); err != nil {
		return err
	}
	for i, v := range outcomes {
		if err := cw.Write([]string{strconv.Itoa(i), formatFloat(v)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
