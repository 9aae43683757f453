package ridership

// Occupancy is the transient rider state of one traversal. Slices are indexed
// by station position on the line.
type Occupancy struct {
	// Boarding holds riders waiting to board at each station. After a
	// traversal it holds the riders deferred by capacity overflow.
	Boarding []int
	// Alighting holds riders scheduled to leave the train at each station.
	Alighting []int
	// Onboard is the number of riders currently on the train.
	Onboard int
}

// NewOccupancy returns an empty occupancy for a line of n stations.
func NewOccupancy(n int) *Occupancy {
	return &Occupancy{Boarding: make([]int, n), Alighting: make([]int, n)}
}

// Reset clears the occupancy for reuse.
func (o *Occupancy) Reset() {
	clear(o.Boarding)
	clear(o.Alighting)
	o.Onboard = 0
}

// Allocate spreads riders round-robin over the destinations in order: one
// rider per destination in turn, wrapping to the first destination. With
// q, r = riders/len, riders%len every destination receives q riders and the
// first r destinations one more. It returns the number of riders allocated,
// which is 0 when there is no destination.
func (o *Occupancy) Allocate(destinations []int, riders int) int {
	k := len(destinations)
	if k == 0 || riders <= 0 {
		return 0
	}
	q, r := riders/k, riders%k
	for j, st := range destinations {
		n := q
		if j < r {
			n++
		}
		o.Alighting[st] += n
	}
	return riders
}
