package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidStation is returned when a station profile fails validation.
var ErrInvalidStation = errors.New("invalid station")

// StationProfile describes the daily ridership distribution of one station.
// Its identity is its position in a Line.
type StationProfile struct {
	Name         string  `json:"name" yaml:"name"`
	MeanRiders   float64 `json:"mean" yaml:"mean"`
	StddevRiders float64 `json:"stddev" yaml:"stddev"`
}

// NewStationProfile validates and returns a station profile.
func NewStationProfile(name string, mean, stddev float64) (StationProfile, error) {
	s := StationProfile{Name: name, MeanRiders: mean, StddevRiders: stddev}
	if err := s.Validate(); err != nil {
		return StationProfile{}, err
	}
	return s, nil
}

// Validate checks that the profile has a name and finite, non-negative
// distribution parameters.
func (s StationProfile) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidStation)
	}
	if math.IsNaN(s.MeanRiders) || math.IsInf(s.MeanRiders, 0) || s.MeanRiders < 0 {
		return fmt.Errorf("%w: %s: mean must be a finite value >= 0", ErrInvalidStation, s.Name)
	}
	if math.IsNaN(s.StddevRiders) || math.IsInf(s.StddevRiders, 0) || s.StddevRiders < 0 {
		return fmt.Errorf("%w: %s: stddev must be a finite value >= 0", ErrInvalidStation, s.Name)
	}
	return nil
}
