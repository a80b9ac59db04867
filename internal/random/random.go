// Package random provides a deterministic, seedable pseudo-random number
// generator.
//
// # Determinism
//
// A Random is driven by a 32-bit Mersenne Twister (MT19937). For a fixed
// seed and a fixed sequence of calls, every method returns bit-identical
// results on every platform and word size. Seed 0 selects the engine's
// canonical default seed, whose first Uint32 is CanonicalFirstValue.
//
// # Concurrency
//
// A Random is not safe for concurrent use. Each instance has a single
// owner; callers sharing one instance across goroutines must synchronize
// externally.
//
// Not suitable for cryptographic use. See NewSeed for an unpredictable
// starting seed.
package random

import (
	"math/bits"
	"math/rand/v2"
)

// Random is a deterministic random source. The zero value behaves like
// New(0).
//
// *Random is a math/rand/v2 Source, so rand.New(r) drives the standard
// helpers (Shuffle, Perm, ...) from the same reproducible stream. Those
// helpers' algorithms belong to the Go release, not to this package.
type Random struct {
	mt *mt19937
}

var _ rand.Source = (*Random)(nil)

// New returns a Random seeded with seed.
func New(seed uint32) *Random {
	r := &Random{}
	r.Seed(seed)
	return r
}

// Seed discards all prior state and reinitialises the engine from seed.
func (r *Random) Seed(seed uint32) {
	if r.mt == nil {
		r.mt = &mt19937{}
	}
	r.mt.seed(seed)
}

func (r *Random) engine() *mt19937 {
	if r.mt == nil {
		r.Seed(0)
	}
	return r.mt
}

// Uint32 returns the next raw 32-bit word.
func (r *Random) Uint32() uint32 {
	return r.engine().next32()
}

// Uint64 returns two consecutive Uint32 draws as lo | hi<<32, low word
// drawn first. The order is part of the reproducibility contract.
func (r *Random) Uint64() uint64 {
	lo := uint64(r.Uint32())
	return lo | uint64(r.Uint32())<<32
}

// Uint returns a word of the platform's natural width.
func (r *Random) Uint() uint {
	if bits.UintSize == 32 {
		return uint(r.Uint32())
	}
	return uint(r.Uint64())
}

// Discard advances the engine count steps as if Uint32 had been called
// count times.
func (r *Random) Discard(count uint64) {
	r.engine().discard(count)
}
