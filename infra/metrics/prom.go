package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/ridership/core/metrics"
)

// PromSink exposes run summaries as Prometheus metrics.
type PromSink struct {
	lower    *prometheus.GaugeVec
	mean     *prometheus.GaugeVec
	upper    *prometheus.GaugeVec
	varisk   *prometheus.GaugeVec
	trials   *prometheus.CounterVec
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	last     *prometheus.GaugeVec
}

// NewPromSink registers ridership metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"scenario"}
	s := &PromSink{
		lower: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridership_interval_lower",
			Help: "Lower bound of the bootstrap interval of daily riders",
		}, labels),
		mean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridership_interval_mean",
			Help: "Mean daily riders of the last run",
		}, labels),
		upper: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridership_interval_upper",
			Help: "Upper bound of the bootstrap interval of daily riders",
		}, labels),
		varisk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridership_value_at_risk",
			Help: "Daily riders at the configured risk quantile",
		}, []string{"scenario", "risk"}),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ridership_trials_total",
			Help: "Total number of simulated days",
		}, labels),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ridership_runs_total",
			Help: "Total number of completed Monte Carlo runs",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ridership_run_duration_seconds",
			Help:    "Wall time of a Monte Carlo run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, labels),
		last: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ridership_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		}, labels),
	}
	var err error
	if s.lower, err = register(reg, s.lower); err != nil {
		return nil, err
	}
	if s.mean, err = register(reg, s.mean); err != nil {
		return nil, err
	}
	if s.upper, err = register(reg, s.upper); err != nil {
		return nil, err
	}
	if s.varisk, err = register(reg, s.varisk); err != nil {
		return nil, err
	}
	if s.trials, err = register(reg, s.trials); err != nil {
		return nil, err
	}
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.last, err = register(reg, s.last); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when the same metric
// was registered by an earlier sink.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the gauges of the summary's scenario.
func (s *PromSink) RecordRun(r coremetrics.RunSummary) error {
	sc := r.Scenario
	s.lower.WithLabelValues(sc).Set(r.Interval.Lower)
	s.mean.WithLabelValues(sc).Set(r.Interval.Mean)
	s.upper.WithLabelValues(sc).Set(r.Interval.Upper)
	s.varisk.WithLabelValues(sc, strconv.FormatFloat(r.Risk, 'f', -1, 64)).Set(r.ValueAtRisk)
	s.trials.WithLabelValues(sc).Add(float64(r.Trials))
	s.runs.WithLabelValues(sc).Inc()
	s.duration.WithLabelValues(sc).Observe(r.Duration.Seconds())
	if !r.Time.IsZero() {
		s.last.WithLabelValues(sc).Set(float64(r.Time.Unix()))
	}
	return nil
}
