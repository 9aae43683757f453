package metrics

import "github.com/kilianp07/ridership/core/factory"

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// MustRegisterMetricsSink is RegisterMetricsSink for init functions. It
// panics when name is already taken.
func MustRegisterMetricsSink(name string, f factory.Factory[MetricsSink]) {
	sinkRegistry.MustRegister(name, f)
}

// MetricsSinkTypes lists the registered sink types.
func MetricsSinkTypes() []string { return sinkRegistry.Names() }

// NewMetricsSink creates a MetricsSink from the provided configuration.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]MetricsSink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			for _, created := range sinks[:i] {
				if cl, ok := created.(Closer); ok {
					_ = cl.Close()
				}
			}
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
