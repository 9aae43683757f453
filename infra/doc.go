// Package infra groups the adapters behind the core interfaces: zerolog
// logging, Prometheus/InfluxDB/MQTT metrics sinks and the run stores.
// Nothing under core imports these packages; app wires them together.
package infra
