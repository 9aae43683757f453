package ridership

import (
	"errors"
	"fmt"

	"github.com/kilianp07/ridership/core/model"
	"github.com/kilianp07/ridership/core/random"
)

// Capacity is the number of riders one train can carry.
const Capacity = 640

// ErrInvalidConfig is returned by NewModel for unusable parameters.
var ErrInvalidConfig = errors.New("invalid ridership config")

// Config holds the per-model parameters.
type Config struct {
	// NumTrains is the number of trains run per direction per day. Daily
	// station demand is divided by it.
	NumTrains int
	Weather   model.Weather
	BigEvent  bool
	// Capacity overrides the train capacity; zero means Capacity.
	Capacity int
	// CarryOver re-queues riders deferred by one train as extra demand for
	// the next train in the same direction within a trial.
	CarryOver bool
}

// Model simulates trains on a line. It holds reusable buffers and is not
// safe for concurrent use; build one Model per worker.
type Model struct {
	line  model.Line
	cfg   Config
	src   random.Source
	scale float64

	occ     *Occupancy
	pending [2][]int
}

// NewModel validates cfg and returns a model drawing from src.
func NewModel(line model.Line, cfg Config, src random.Source) (*Model, error) {
	if line.Len() < 2 {
		return nil, fmt.Errorf("%w: line needs at least 2 stations", ErrInvalidConfig)
	}
	if cfg.NumTrains <= 0 {
		return nil, fmt.Errorf("%w: num trains must be > 0, got %d", ErrInvalidConfig, cfg.NumTrains)
	}
	if cfg.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be >= 0, got %d", ErrInvalidConfig, cfg.Capacity)
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = Capacity
	}
	if cfg.Weather == "" {
		cfg.Weather = model.WeatherOther
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidConfig)
	}
	n := line.Len()
	return &Model{
		line:    line,
		cfg:     cfg,
		src:     src,
		scale:   model.DemandMultiplier(cfg.Weather, cfg.BigEvent),
		occ:     NewOccupancy(n),
		pending: [2][]int{make([]int, n), make([]int, n)},
	}, nil
}

// Config returns the effective configuration.
func (m *Model) Config() Config { return m.cfg }

// Line returns the simulated line.
func (m *Model) Line() model.Line { return m.line }

// DrawDemand draws the boarding demand of one train at every station into
// dst, which must have one slot per station. A draw is the station's daily
// demand, scaled by weather and events, divided by the number of trains and
// truncated; negative draws become 0.
func (m *Model) DrawDemand(dst []int) {
	for i := range dst {
		st := m.line.Station(i)
		daily := m.src.Normal(st.MeanRiders, st.StddevRiders) * m.scale
		n := int(daily / float64(m.cfg.NumTrains))
		if n < 0 {
			n = 0
		}
		dst[i] = n
	}
}

// Traverse simulates one train in direction dir with freshly drawn demand and
// returns the traversal with per-station detail.
func (m *Model) Traverse(dir model.Direction) Traversal {
	return m.traverse(dir, true)
}

func (m *Model) traverse(dir model.Direction, record bool) Traversal {
	m.occ.Reset()
	m.DrawDemand(m.occ.Boarding)
	if m.cfg.CarryOver {
		p := m.pending[dir]
		for i := range p {
			m.occ.Boarding[i] += p[i]
		}
	}
	tr := Run(m.line, dir, m.occ, m.cfg.Capacity, record)
	if m.cfg.CarryOver {
		copy(m.pending[dir], m.occ.Boarding)
	}
	return tr
}

// SimulateOnce runs NumTrains forward and NumTrains reverse traversals and
// returns the total number of riders served. It implements montecarlo.Trial.
func (m *Model) SimulateOnce() (float64, error) {
	clear(m.pending[model.Forward])
	clear(m.pending[model.Reverse])
	var served int
	for k := 0; k < m.cfg.NumTrains; k++ {
		served += m.traverse(model.Forward, false).Served
		served += m.traverse(model.Reverse, false).Served
	}
	return float64(served), nil
}
