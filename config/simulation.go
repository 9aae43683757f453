package config

import (
	"fmt"
	"math"

	"github.com/kilianp07/ridership/core/model"
	"github.com/kilianp07/ridership/core/montecarlo"
	"github.com/kilianp07/ridership/core/ridership"
)

// DefaultTrials is the number of simulated days per run.
const DefaultTrials = 10000

// DefaultNumTrains is the number of trains per direction per day.
const DefaultNumTrains = 200

// SimulationConfig defines the Monte Carlo run parameters.
type SimulationConfig struct {
	Trials int `json:"trials"`
	// Seed of the random streams; 0 picks a time based seed per round.
	Seed       uint64  `json:"seed"`
	Workers    int     `json:"workers"`
	NumTrains  int     `json:"num_trains"`
	Weather    string  `json:"weather"`
	BigEvent   bool    `json:"big_event"`
	Confidence float64 `json:"confidence"`
	Resamples  int     `json:"resamples"`
	// Risk is the value-at-risk level; nil means unset, an explicit 0
	// selects the minimum outcome.
	Risk      *float64 `json:"risk"`
	Capacity  int      `json:"capacity"`
	CarryOver bool     `json:"carry_over"`
	// PublishTrials publishes an event for every trial outcome.
	PublishTrials bool             `json:"publish_trials"`
	Scenarios     []ScenarioConfig `json:"scenarios"`
}

// ScenarioConfig names a weather and event combination to simulate.
type ScenarioConfig struct {
	Name     string `json:"name"`
	Weather  string `json:"weather"`
	BigEvent bool   `json:"big_event"`
}

// SetDefaults applies fallback values for optional fields.
func (c *SimulationConfig) SetDefaults() {
	if c.Trials == 0 {
		c.Trials = DefaultTrials
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.NumTrains == 0 {
		c.NumTrains = DefaultNumTrains
	}
	if c.Weather == "" {
		c.Weather = string(model.WeatherOther)
	}
	if c.Confidence == 0 {
		c.Confidence = montecarlo.DefaultConfidence
	}
	if c.Resamples == 0 {
		c.Resamples = montecarlo.DefaultResamples
	}
	if c.Risk == nil {
		r := montecarlo.DefaultRisk
		c.Risk = &r
	}
	if c.Capacity == 0 {
		c.Capacity = ridership.Capacity
	}
	for i := range c.Scenarios {
		if c.Scenarios[i].Weather == "" {
			c.Scenarios[i].Weather = string(model.WeatherOther)
		}
	}
}

// Validate checks value ranges.
func (c SimulationConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("simulation.trials must be > 0, got %d", c.Trials)
	}
	if c.NumTrains <= 0 {
		return fmt.Errorf("simulation.num_trains must be > 0, got %d", c.NumTrains)
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("simulation.confidence must be in [0,1], got %g", c.Confidence)
	}
	if c.Resamples <= 0 {
		return fmt.Errorf("simulation.resamples must be > 0, got %d", c.Resamples)
	}
	if r := c.RiskLevel(); math.IsNaN(r) || r < 0 || r > 1 {
		return fmt.Errorf("simulation.risk must be in [0,1], got %g", r)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("simulation.capacity must be >= 0, got %d", c.Capacity)
	}
	if _, err := model.ParseWeather(c.Weather); err != nil {
		return fmt.Errorf("simulation.weather: %w", err)
	}
	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("simulation.scenarios[%d]: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("simulation.scenarios: duplicate name %s", s.Name)
		}
		seen[s.Name] = true
		if _, err := model.ParseWeather(s.Weather); err != nil {
			return fmt.Errorf("simulation.scenarios[%s]: %w", s.Name, err)
		}
	}
	return nil
}

// RiskLevel returns the configured value-at-risk level, or the default when
// none is set.
func (c SimulationConfig) RiskLevel() float64 {
	if c.Risk == nil {
		return montecarlo.DefaultRisk
	}
	return *c.Risk
}

// ScenarioList returns the configured scenarios, or a single "default"
// scenario built from the top level weather and event settings.
func (c SimulationConfig) ScenarioList() []ScenarioConfig {
	if len(c.Scenarios) > 0 {
		return c.Scenarios
	}
	return []ScenarioConfig{{Name: "default", Weather: c.Weather, BigEvent: c.BigEvent}}
}

// ModelConfig returns the trial model parameters of a scenario.
func (c SimulationConfig) ModelConfig(s ScenarioConfig) (ridership.Config, error) {
	w, err := model.ParseWeather(s.Weather)
	if err != nil {
		return ridership.Config{}, err
	}
	return ridership.Config{
		NumTrains: c.NumTrains,
		Weather:   w,
		BigEvent:  s.BigEvent,
		Capacity:  c.Capacity,
		CarryOver: c.CarryOver,
	}, nil
}
