// Package metrics defines the sinks that record simulation runs for
// observability. Sinks like PromSink and InfluxSink live in infra/metrics and
// register themselves in the factory registry; NewMetricsSink builds them from
// configuration and returns a MultiSink when several are configured.
package metrics
