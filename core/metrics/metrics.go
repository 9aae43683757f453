package metrics

import (
	"time"

	"github.com/kilianp07/ridership/core/montecarlo"
)

// RunSummary describes one completed Monte Carlo run of a scenario.
type RunSummary struct {
	RunID       string              `json:"run_id" yaml:"run_id"`
	Scenario    string              `json:"scenario" yaml:"scenario"`
	Line        string              `json:"line" yaml:"line"`
	Trials      int                 `json:"trials" yaml:"trials"`
	NumTrains   int                 `json:"num_trains" yaml:"num_trains"`
	Weather     string              `json:"weather" yaml:"weather"`
	BigEvent    bool                `json:"big_event" yaml:"big_event"`
	Seed        uint64              `json:"seed" yaml:"seed"`
	Interval    montecarlo.Interval `json:"interval" yaml:"interval"`
	Confidence  float64             `json:"confidence" yaml:"confidence"`
	Risk        float64             `json:"risk" yaml:"risk"`
	ValueAtRisk float64             `json:"value_at_risk" yaml:"value_at_risk"`
	StdDev      float64             `json:"stddev" yaml:"stddev"`
	Min         float64             `json:"min" yaml:"min"`
	Max         float64             `json:"max" yaml:"max"`
	Duration    time.Duration       `json:"duration" yaml:"duration"`
	Time        time.Time           `json:"time" yaml:"time"`
}

// TrialEvent is one trial outcome within a run.
type TrialEvent struct {
	RunID    string
	Scenario string
	Index    int
	Outcome  float64
}

// MetricsSink records completed runs.
type MetricsSink interface {
	RecordRun(s RunSummary) error
}

// TrialRecorder is implemented by sinks interested in individual trials.
type TrialRecorder interface {
	RecordTrial(ev TrialEvent) error
}

// Closer is implemented by sinks holding connections.
type Closer interface {
	Close() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunSummary) error   { return nil }
func (NopSink) RecordTrial(TrialEvent) error { return nil }
