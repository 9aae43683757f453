package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/ridership/core/factory"
	coremetrics "github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/infra/mqtt"
)

// init registers built-in metrics sinks.
func init() {
	coremetrics.MustRegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	coremetrics.MustRegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	coremetrics.MustRegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})

	coremetrics.MustRegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return mqtt.NewPublisher(c)
	})
}
