package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestPCGDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Normal(10, 2), b.Normal(10, 2))
		assert.Equal(t, a.IntN(50), b.IntN(50))
	}
}

func TestPCGStreamsDiffer(t *testing.T) {
	a, b := NewStream(7, 0), NewStream(7, 1)
	same := 0
	for i := 0; i < 20; i++ {
		if a.IntN(1_000_000) == b.IntN(1_000_000) {
			same++
		}
	}
	assert.Less(t, same, 20)
}

func TestPCGNormalMoments(t *testing.T) {
	src := New(1)
	xs := make([]float64, 20000)
	for i := range xs {
		xs[i] = src.Normal(100, 15)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	assert.InDelta(t, 100, mean, 1)
	assert.InDelta(t, 15, std, 1)
}

func TestPCGZeroSigmaIsExact(t *testing.T) {
	src := New(3)
	assert.Equal(t, 1000.0, src.Normal(1000, 0))
}

func TestIntNRange(t *testing.T) {
	src := New(9)
	for i := 0; i < 1000; i++ {
		v := src.IntN(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
}

func TestScripted(t *testing.T) {
	s := &Scripted{Normals: []float64{1, 2}}
	assert.Equal(t, 1.0, s.Normal(100, 5))
	assert.Equal(t, 2.0, s.Normal(100, 5))
	assert.Equal(t, 1.0, s.Normal(100, 5))

	empty := &Scripted{}
	assert.Equal(t, 100.0, empty.Normal(100, 5))
	assert.Equal(t, []int{0, 1, 2, 0}, []int{empty.IntN(3), empty.IntN(3), empty.IntN(3), empty.IntN(3)})

	ints := &Scripted{Ints: []int{5, -1}}
	assert.Equal(t, 1, ints.IntN(4))
	assert.Equal(t, 3, ints.IntN(4))
}

func TestSeed(t *testing.T) {
	assert.Equal(t, uint64(12), Seed(12))
	assert.NotZero(t, Seed(0))
}
