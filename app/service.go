package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/ridership/api"
	"github.com/kilianp07/ridership/config"
	"github.com/kilianp07/ridership/core/events"
	coremetrics "github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/core/model"
	"github.com/kilianp07/ridership/core/montecarlo"
	"github.com/kilianp07/ridership/core/random"
	"github.com/kilianp07/ridership/core/ridership"
	"github.com/kilianp07/ridership/core/runlog"
	"github.com/kilianp07/ridership/infra/logger"
	"github.com/kilianp07/ridership/infra/metrics"
	"github.com/kilianp07/ridership/infra/mqtt"
	"github.com/kilianp07/ridership/infra/store"
	"github.com/kilianp07/ridership/internal/eventbus"
)

// Result is the outcome of one scenario run.
type Result struct {
	Summary  coremetrics.RunSummary
	Outcomes []float64
}

// Service runs the configured scenarios and fans their summaries out to the
// metrics sinks and the run store.
type Service struct {
	cfg   *config.Config
	line  model.Line
	sink  coremetrics.MetricsSink
	store runlog.Store
	bus   *eventbus.Bus
	log   logger.Logger

	collector <-chan struct{}
	cancel    context.CancelFunc
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	line, err := cfg.Line.Build()
	if err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	if cfg.MQTT.Broker != "" {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			closeSink(sink)
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		sink = coremetrics.NewMultiSink(sink, pub)
	}
	st, err := store.New(cfg.Store)
	if err != nil {
		closeSink(sink)
		return nil, fmt.Errorf("run store: %w", err)
	}
	return NewWithDeps(cfg, line, sink, st), nil
}

// NewWithDeps creates a Service from already built dependencies.
func NewWithDeps(cfg *config.Config, line model.Line, sink coremetrics.MetricsSink, st runlog.Store) *Service {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if st == nil {
		st = store.NopStore{}
	}
	bus := eventbus.New(eventbus.WithBuffer(1024))
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		cfg:       cfg,
		line:      line,
		sink:      sink,
		store:     st,
		bus:       bus,
		log:       logger.New("service"),
		collector: metrics.StartEventCollector(ctx, bus, sink),
		cancel:    cancel,
	}
}

// Line returns the simulated line.
func (s *Service) Line() model.Line { return s.line }

// Bus returns the event bus runs are published on.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// RunOnce runs every configured scenario in order on one seed, resolved once
// per round. A failing scenario stops the round; results of the scenarios
// already run are returned with the error.
func (s *Service) RunOnce(ctx context.Context) ([]Result, error) {
	scenarios := s.cfg.Simulation.ScenarioList()
	seed := random.Seed(s.cfg.Simulation.Seed)
	out := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := s.RunScenario(ctx, sc, seed)
		if err != nil {
			return out, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		out = append(out, res)
	}
	return out, nil
}

// RunScenario runs the Monte Carlo simulation of one scenario with seed.
// RunOnce passes the same seed to every scenario of a round, so they are
// compared on identical draws.
func (s *Service) RunScenario(ctx context.Context, sc config.ScenarioConfig, seed uint64) (Result, error) {
	sim := s.cfg.Simulation
	mc, err := sim.ModelConfig(sc)
	if err != nil {
		return Result{}, err
	}
	runID := uuid.NewString()
	fields := map[string]any{"run_id": runID, "scenario": sc.Name}
	log := logger.WithFields(s.log, fields)

	opts := []montecarlo.Option{
		montecarlo.WithConfidence(sim.Confidence),
		montecarlo.WithResamples(sim.Resamples),
		montecarlo.WithLogger(logger.WithFields(logger.New("montecarlo"), fields)),
	}
	if sim.PublishTrials {
		opts = append(opts, montecarlo.WithObserver(func(i int, x float64) {
			s.bus.Publish(events.TrialEvent{RunID: runID, Scenario: sc.Name, Index: i, Outcome: x})
		}))
	}
	driver := montecarlo.NewDriver(nil, random.NewStream(seed, 0), opts...)
	factory := func(worker int) (montecarlo.Trial, error) {
		return ridership.NewModel(s.line, mc, random.NewStream(seed, uint64(worker)+1))
	}

	start := time.Now()
	iv, err := driver.RunParallel(ctx, sim.Trials, sim.Workers, factory)
	if err != nil {
		s.bus.Publish(events.RunFailedEvent{RunID: runID, Scenario: sc.Name, Err: err})
		return Result{}, err
	}
	elapsed := time.Since(start)
	outcomes := driver.Results()
	vr, err := driver.ValueAtRisk(sim.RiskLevel())
	if err != nil {
		return Result{}, err
	}

	summary := coremetrics.RunSummary{
		RunID:       runID,
		Scenario:    sc.Name,
		Line:        s.line.Name(),
		Trials:      sim.Trials,
		NumTrains:   mc.NumTrains,
		Weather:     string(mc.Weather),
		BigEvent:    mc.BigEvent,
		Seed:        seed,
		Interval:    iv,
		Confidence:  sim.Confidence,
		Risk:        sim.RiskLevel(),
		ValueAtRisk: vr,
		StdDev:      stat.StdDev(outcomes, nil),
		Min:         floats.Min(outcomes),
		Max:         floats.Max(outcomes),
		Duration:    elapsed,
		Time:        start,
	}
	log.Infof("scenario %s: mean %.0f riders/day [%.0f, %.0f], VaR(%.2f) %.0f in %s",
		sc.Name, iv.Mean, iv.Lower, iv.Upper, sim.RiskLevel(), vr, elapsed.Round(time.Millisecond))

	var kept []float64
	if s.cfg.Store.KeepOutcomes {
		kept = outcomes
	}
	if err := s.store.Append(ctx, runlog.NewRecord(summary, kept)); err != nil {
		log.Errorf("store run: %v", err)
	}
	s.bus.Publish(events.RunEvent{Summary: summary})
	return Result{Summary: summary, Outcomes: outcomes}, nil
}

// Serve runs every scenario on the configured interval and exposes
// /metrics until ctx is cancelled.
func (s *Service) Serve(ctx context.Context) error {
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if addr := s.cfg.Serve.APIAddr; addr != "" {
		go func() {
			if err := api.Serve(ctx, addr, api.NewMux(s.store, s.cfg.Serve.APIToken)); err != nil {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}
	interval := s.cfg.Serve.Interval()
	s.log.Infof("serving %d scenario(s) every %s", len(s.cfg.Simulation.ScenarioList()), interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.log.Errorf("run round: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Close drains pending events and releases the sinks and the store.
func (s *Service) Close() error {
	s.bus.Close()
	<-s.collector
	s.cancel()
	if n := s.bus.Dropped(); n > 0 {
		s.log.Warnf("%d events dropped by slow subscribers", n)
	}
	var errs []error
	if c, ok := s.sink.(coremetrics.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sink: %w", err))
		}
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

func closeSink(sink coremetrics.MetricsSink) {
	if c, ok := sink.(coremetrics.Closer); ok {
		_ = c.Close()
	}
}
