package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/ridership/core/model"
	"github.com/kilianp07/ridership/core/ridership"
)

// StationDef is one station of a scenario line.
type StationDef struct {
	Name   string  `yaml:"name"`
	Mean   float64 `yaml:"mean"`
	Stddev float64 `yaml:"stddev"`
}

// Expected holds the outcome every trial of the scenario must produce.
type Expected struct {
	Served float64 `yaml:"served"`
}

// Scenario describes a deterministic ridership run. Without Normals every
// draw returns the station mean; with Normals the draws are taken from the
// list in order, cycling.
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Stations    []StationDef `yaml:"stations"`
	NumTrains   int          `yaml:"num_trains"`
	Weather     string       `yaml:"weather,omitempty"`
	BigEvent    bool         `yaml:"big_event,omitempty"`
	Capacity    int          `yaml:"capacity,omitempty"`
	CarryOver   bool         `yaml:"carry_over,omitempty"`
	Trials      int          `yaml:"trials,omitempty"`
	Normals     []float64    `yaml:"normals,omitempty"`
	Expected    Expected     `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Trials == 0 {
		sc.Trials = 20
	}
	return &sc, nil
}

// Line builds the scenario line.
func (s *Scenario) Line() (model.Line, error) {
	stations := make([]model.StationProfile, len(s.Stations))
	for i, d := range s.Stations {
		st, err := model.NewStationProfile(d.Name, d.Mean, d.Stddev)
		if err != nil {
			return model.Line{}, fmt.Errorf("station %d: %w", i, err)
		}
		stations[i] = st
	}
	return model.NewLine(s.Name, stations)
}

// ModelConfig converts the scenario into model parameters.
func (s *Scenario) ModelConfig() (ridership.Config, error) {
	w, err := model.ParseWeather(s.Weather)
	if err != nil {
		return ridership.Config{}, err
	}
	return ridership.Config{
		NumTrains: s.NumTrains,
		Weather:   w,
		BigEvent:  s.BigEvent,
		Capacity:  s.Capacity,
		CarryOver: s.CarryOver,
	}, nil
}
