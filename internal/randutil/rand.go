// Package randutil derives reproducible random sources for matches and bots.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for the n-th child of a base seed. Children of the
// same base never share a stream, so parallel matches stay reproducible no
// matter which worker runs them.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n+1)*goldenRatio64))
}

// Chance reports true with probability p
func Chance(r *rand.Rand, p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return r.Float64() < p
}

// Jitter returns a duration uniformly spread over [d/2, 3d/2)
func Jitter[D ~int64](r *rand.Rand, d D) D {
	if d <= 1 {
		return d
	}
	return d/2 + D(r.Int64N(int64(d)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
