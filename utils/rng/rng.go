// Package rng holds the uniform random source every stochastic step of the
// simulation draws from. Nothing in the engine touches the global math/rand
// state; callers pass a Source so tests can substitute a seeded one.
package rng

import (
	"math/rand"
)

// Source is the subset of *rand.Rand the simulation needs.
type Source interface {
	// Intn returns a uniform integer in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// New returns a deterministic source for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// IntRange draws uniformly from the closed interval [lo, hi].
// A degenerate or inverted range returns lo.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Uniform draws from [lo, hi) as lo + (hi-lo)*u.
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// Choice picks one element of options uniformly. options must be non-empty.
func Choice(src Source, options []int) int {
	return options[src.Intn(len(options))]
}

// Sample returns k distinct indices drawn uniformly without replacement from
// [0, n), using a partial Fisher-Yates shuffle. k is capped at n.
func Sample(src Source, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + src.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}
