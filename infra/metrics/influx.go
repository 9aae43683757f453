package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/infra/logger"
)

// InfluxConfig holds the connection settings of the InfluxDB sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
	// Trials writes one point per simulated day in addition to the run point.
	Trials bool `json:"trials"`
}

// InfluxSink writes run summaries to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	trials   bool
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		trials:   cfg.Trials,
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one ridership_run point.
func (s *InfluxSink) RecordRun(r coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	p := write.NewPointWithMeasurement("ridership_run").
		AddTag("scenario", r.Scenario).
		AddTag("line", r.Line).
		AddTag("weather", r.Weather).
		AddTag("big_event", strconv.FormatBool(r.BigEvent)).
		AddTag("run_id", r.RunID).
		AddField("trials", r.Trials).
		AddField("num_trains", r.NumTrains).
		AddField("lower", round3(r.Interval.Lower)).
		AddField("mean", round3(r.Interval.Mean)).
		AddField("upper", round3(r.Interval.Upper)).
		AddField("value_at_risk", round3(r.ValueAtRisk)).
		AddField("risk", r.Risk).
		AddField("stddev", round3(r.StdDev)).
		AddField("duration_ms", r.Duration.Milliseconds()).
		SetTime(ts)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTrial writes a ridership_trial point when trial export is enabled.
func (s *InfluxSink) RecordTrial(ev coremetrics.TrialEvent) error {
	if !s.trials {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("ridership_trial").
		AddTag("scenario", ev.Scenario).
		AddTag("run_id", ev.RunID).
		AddField("index", ev.Index).
		AddField("riders", ev.Outcome).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
