// Package randx provides the narrow pseudo-random surface generation
// algorithms are allowed to depend on. It deliberately exposes only a
// handful of methods so that algorithm authors cannot reach for
// undocumented math/rand/v2 behavior that would make step output
// depend on something outside the pinned seed derivation.
package randx

import "math/rand/v2"

// Rand wraps a math/rand/v2 source seeded deterministically by the
// pipeline from a derived per-step seed.
type Rand struct {
	r *rand.Rand
}

// New builds a Rand from two 64-bit PCG seed words; the pipeline
// derives both from one step seed with pipeline.SplitStepSeed.
func New(seedHi, seedLo uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seedHi, seedLo))}
}

// Float64 returns a pseudo-random value in [0.0, 1.0).
func (r *Rand) Float64() float64 { return r.r.Float64() }

// IntN returns a pseudo-random value in [0, n).
func (r *Rand) IntN(n int) int { return r.r.IntN(n) }

// Bool returns a pseudo-random boolean with 50/50 odds.
func (r *Rand) Bool() bool { return r.r.IntN(2) == 0 }

// Range returns a pseudo-random float64 in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.r.Float64()*(max-min)
}

// IntRange returns a pseudo-random int in [min, max].
func (r *Rand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min+1)
}
