// Package rng provides the explicit, seedable random source threaded through
// every layout stage. It is a 32-bit linear congruential generator so that the
// same seed yields the same sequence on every platform.
package rng

// LCG parameters (Numerical Recipes)
const (
	multiplier = 1664525
	increment  = 1013904223
	modulus    = 1 << 32
)

// Source is a seeded random cursor. The zero value is a valid source seeded with 0.
type Source struct {
	state uint32
	calls uint64
}

// New creates a source from a seed. Only the low 32 bits of the seed matter.
func New(seed int64) *Source {
	return &Source{state: uint32(seed)}
}

// Calls returns how many values have been drawn so far
func (s *Source) Calls() uint64 {
	return s.calls
}

// next advances the cursor one step
func (s *Source) next() uint32 {
	s.state = s.state*multiplier + increment
	s.calls++
	return s.state
}

// Float64 returns a value in [0, 1)
func (s *Source) Float64() float64 {
	return float64(s.next()) / modulus
}

// Intn returns a value in [0, n). For n <= 0 it returns 0 without advancing.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Range returns a value in [lo, hi], inclusive. Advances only when hi > lo.
func (s *Source) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Chance returns true with probability p
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}

// CoinFlip returns true half of the time
func (s *Source) CoinFlip() bool {
	return s.Intn(2) == 0
}
