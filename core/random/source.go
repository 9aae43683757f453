// Package random provides the injectable random sources consumed by the
// simulation core. Production code uses PCG; tests use Scripted to pin
// every draw.
package random

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Resampler draws uniform indices, as needed by bootstrap resampling.
type Resampler interface {
	// IntN returns a uniform integer in [0, n). n must be > 0.
	IntN(n int) int
}

// Source is the full random capability used by trial models.
type Source interface {
	Resampler
	// Normal draws one sample from N(mu, sigma²).
	Normal(mu, sigma float64) float64
}

// PCG is a seeded Source backed by math/rand/v2 PCG and gonum's normal
// distribution. It is not safe for concurrent use; give each worker its own.
type PCG struct {
	src *rand.PCG
	rng *rand.Rand
}

// New returns a PCG source for the given seed.
func New(seed uint64) *PCG {
	return NewStream(seed, 0)
}

// NewStream returns an independent source for the given seed and stream id.
// Parallel workers sharing a run seed use their worker index as stream.
func NewStream(seed, stream uint64) *PCG {
	src := rand.NewPCG(seed, 0x9e3779b97f4a7c15^stream)
	return &PCG{src: src, rng: rand.New(src)}
}

// Seed returns seed when non-zero and a time based seed otherwise.
func Seed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// IntN implements Resampler.
func (p *PCG) IntN(n int) int { return p.rng.IntN(n) }

// Normal implements Source.
func (p *PCG) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: p.src}.Rand()
}
