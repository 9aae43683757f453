package model

// Direction is the travel direction of a train along a Line.
type Direction int

const (
	// Forward travels from index 0 to the last station.
	Forward Direction = iota
	// Reverse travels from the last station to index 0.
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}
