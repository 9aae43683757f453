package model

import (
	"errors"
	"fmt"
)

// ErrInvalidLine is returned when a line cannot be built from its stations.
var ErrInvalidLine = errors.New("invalid line")

// Line is an ordered, immutable sequence of stations. Index 0 is the origin
// terminus and the last index the far terminus; the order defines what
// "downstream" means for a traversal.
type Line struct {
	name     string
	stations []StationProfile
}

// NewLine validates every station and copies the slice so the caller cannot
// reorder the line afterwards.
func NewLine(name string, stations []StationProfile) (Line, error) {
	if len(stations) < 2 {
		return Line{}, fmt.Errorf("%w: %q needs at least 2 stations, got %d", ErrInvalidLine, name, len(stations))
	}
	cp := make([]StationProfile, len(stations))
	for i, s := range stations {
		if err := s.Validate(); err != nil {
			return Line{}, fmt.Errorf("station %d: %w", i, err)
		}
		cp[i] = s
	}
	return Line{name: name, stations: cp}, nil
}

// Name returns the line name.
func (l Line) Name() string { return l.name }

// Len returns the number of stations.
func (l Line) Len() int { return len(l.stations) }

// Station returns the station at position i.
func (l Line) Station(i int) StationProfile { return l.stations[i] }

// Stations returns a copy of the ordered station list.
func (l Line) Stations() []StationProfile {
	cp := make([]StationProfile, len(l.stations))
	copy(cp, l.stations)
	return cp
}

// Order returns the station indices in the order a train travelling in dir
// visits them.
func (l Line) Order(dir Direction) []int {
	n := len(l.stations)
	idx := make([]int, n)
	for i := range idx {
		if dir == Reverse {
			idx[i] = n - 1 - i
		} else {
			idx[i] = i
		}
	}
	return idx
}
