package ridership

import "github.com/kilianp07/ridership/core/model"

// Stop records what happened at one station during a traversal.
type Stop struct {
	Station  int    `json:"station"`
	Name     string `json:"name"`
	Demand   int    `json:"demand"`
	Alighted int    `json:"alighted"`
	Boarded  int    `json:"boarded"`
	Deferred int    `json:"deferred"`
	Onboard  int    `json:"onboard"`
}

// Traversal summarises one train running the whole line in one direction.
type Traversal struct {
	Direction model.Direction `json:"direction"`
	// Demand is the boarding demand presented at the stations, terminus excluded.
	Demand int `json:"demand"`
	// Served is the number of riders that boarded; it equals Demand - Deferred.
	Served int `json:"served"`
	// Deferred is the number of riders left on the platform by overflow.
	Deferred int `json:"deferred"`
	// Allocated is the number of riders assigned to a destination.
	Allocated int `json:"allocated"`
	// Discarded is the demand drawn at the terminus, where no destination exists.
	Discarded int `json:"discarded"`
	// MaxOnboard is the highest load observed after capacity enforcement.
	MaxOnboard int `json:"max_onboard"`
	// Stops is filled by Model.Traverse and left empty on the trial hot path.
	Stops []Stop `json:"stops,omitempty"`
}

// Run executes one traversal of line in direction dir over occ, whose
// Boarding slice holds the demand per station. capacity bounds the number of
// riders on board. Riders above capacity stay in occ.Boarding at their
// station. When record is true the per-station detail is kept in Stops.
func Run(line model.Line, dir model.Direction, occ *Occupancy, capacity int, record bool) Traversal {
	order := line.Order(dir)
	tr := Traversal{Direction: dir}
	if record {
		tr.Stops = make([]Stop, 0, len(order))
	}
	for pos, i := range order {
		downstream := order[pos+1:]
		if len(downstream) == 0 {
			tr.Discarded += occ.Boarding[i]
			occ.Boarding[i] = 0
		}

		alighted := occ.Alighting[i]
		occ.Onboard -= alighted
		occ.Alighting[i] = 0

		demand := occ.Boarding[i]
		occ.Onboard += demand
		newPassengers := demand
		occ.Boarding[i] = 0

		deferred := 0
		if occ.Onboard > capacity {
			deferred = occ.Onboard - capacity
			newPassengers -= deferred
			occ.Boarding[i] += deferred
			occ.Onboard = capacity
		}

		tr.Demand += demand
		tr.Deferred += deferred
		tr.Served += newPassengers
		tr.Allocated += occ.Allocate(downstream, newPassengers)
		if occ.Onboard > tr.MaxOnboard {
			tr.MaxOnboard = occ.Onboard
		}
		if record {
			tr.Stops = append(tr.Stops, Stop{
				Station:  i,
				Name:     line.Station(i).Name,
				Demand:   demand,
				Alighted: alighted,
				Boarded:  newPassengers,
				Deferred: deferred,
				Onboard:  occ.Onboard,
			})
		}
	}
	return tr
}
