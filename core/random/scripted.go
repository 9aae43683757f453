package random

// Scripted is a deterministic Source for tests. Normal returns the scripted
// values in order, cycling when exhausted, and returns mu unchanged when no
// values are scripted. IntN works the same way over Ints (reduced modulo n);
// without scripted ints it counts 0, 1, 2, ... modulo n.
type Scripted struct {
	Normals []float64
	Ints    []int

	normalPos int
	intPos    int
}

// Normal implements Source.
func (s *Scripted) Normal(mu, _ float64) float64 {
	if len(s.Normals) == 0 {
		return mu
	}
	v := s.Normals[s.normalPos%len(s.Normals)]
	s.normalPos++
	return v
}

// IntN implements Resampler.
func (s *Scripted) IntN(n int) int {
	var v int
	if len(s.Ints) == 0 {
		v = s.intPos
	} else {
		v = s.Ints[s.intPos%len(s.Ints)]
	}
	s.intPos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
