package metrics

import "errors"

// MultiSink fans runs out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the summary to every sink. A failing sink does not stop
// the others; the errors are joined.
func (m *MultiSink) RecordRun(s RunSummary) error {
	var errs []error
	for _, sink := range m.Sinks {
		if err := sink.RecordRun(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordTrial forwards trial events to sinks implementing TrialRecorder.
func (m *MultiSink) RecordTrial(ev TrialEvent) error {
	var errs []error
	for _, sink := range m.Sinks {
		if rec, ok := sink.(TrialRecorder); ok {
			if err := rec.RecordTrial(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink implementing Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, sink := range m.Sinks {
		if c, ok := sink.(Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
