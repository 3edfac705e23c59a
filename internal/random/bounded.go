// Package random provides the seeded scalar generator used by the terrain
// generators. Every generator run owns its own instance.
package random

import "math/rand"

// RandMax is the largest integer Int can return.
const RandMax = 1<<31 - 1

// Bounded draws integers in [0, RandMax] from a private seeded source and
// maps them onto symmetric float ranges.
type Bounded struct {
	rng *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed int64) *Bounded {
	return &Bounded{rng: rand.New(rand.NewSource(seed))}
}

// Int returns an integer uniformly distributed in [0, RandMax].
func (b *Bounded) Int() int64 {
	return b.rng.Int63n(RandMax + 1)
}

// Uniform returns a float uniformly distributed in [0, 1).
func (b *Bounded) Uniform() float64 {
	return float64(b.Int()) / (RandMax + 1)
}

// Next returns a float uniformly distributed in [-max/2, max/2).
func (b *Bounded) Next(max float64) float64 {
	return b.Uniform()*max - max*0.5
}
