// Package randutil provides the uniform sampling primitives used by the drill
// generator. Callers depend on Source so tests can substitute a seeded or
// scripted stream and get exact, reproducible output.
package randutil

import (
	"fmt"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source draws uniformly distributed integers from a closed interval.
type Source interface {
	// Int returns a value in [min, max]. Implementations panic if min > max.
	Int(min, max int) int
}

// Rand is a Source backed by math/rand/v2.
type Rand struct {
	r *rand.Rand
}

// New returns a Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived with a splitmix finalizer so nearby
// seeds still produce unrelated sequences.
func New(seed int64) *Rand {
	u := uint64(seed)
	return &Rand{r: rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))}
}

// NewRandom returns a Rand seeded from runtime entropy.
func NewRandom() *Rand {
	return &Rand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Int implements Source.
func (r *Rand) Int(min, max int) int {
	checkRange(min, max)
	return min + r.r.IntN(max-min+1)
}

// Choice returns a uniformly chosen element of set. It panics on an empty set.
func Choice[T any](src Source, set []T) T {
	if len(set) == 0 {
		panic("randutil: choice from empty set")
	}
	return set[src.Int(0, len(set)-1)]
}

func checkRange(min, max int) {
	if min > max {
		panic(fmt.Sprintf("randutil: invalid range [%d, %d]", min, max))
	}
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
