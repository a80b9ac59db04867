package random

import (
	"math"

	apperrors "github.com/louisbranch/detrand/internal/platform/errors"
)

const (
	float32Unit = float32(1.0 / (1 << 32))
	float32Half = float32Unit / 2
	float64Unit = 1.0 / (1 << 64)
	float64Half = float64Unit / 2
)

var (
	// Largest values strictly below one; used when rounding reaches 1.
	float32BelowOne = math.Nextafter32(1, 0)
	float64BelowOne = math.Nextafter(1, 0)
)

// Uint32n returns a uniform value in [0, bound) with no modulo bias.
//
// Power-of-two bounds mask a single draw. Other bounds reject raw draws at
// or above the largest multiple of bound that fits in 32 bits, so the
// expected number of draws stays below two for every bound.
//
// Uint32n panics with a CodeInvalidArgument error if bound is zero.
func (r *Random) Uint32n(bound uint32) uint32 {
	if bound == 0 {
		panic(apperrors.New(apperrors.CodeInvalidArgument, "random: Uint32n bound must be positive"))
	}
	if bound&(bound-1) == 0 {
		return r.Uint32() & (bound - 1)
	}
	limit := (math.MaxUint32 / bound) * bound
	for {
		v := r.Uint32()
		if v < limit {
			return v % bound
		}
	}
}

// Float32 returns a uniform value strictly inside (0, 1) built from one
// 32-bit draw, spaced 2^-32 apart before float32 rounding.
func (r *Random) Float32() float32 {
	return float32FromBits(r.Uint32())
}

// Float64 returns a uniform value strictly inside (0, 1) built from one
// Uint64 draw.
func (r *Random) Float64() float64 {
	return float64FromBits(r.Uint64())
}

// The explicit conversions keep the compiler from fusing the multiply and
// add, which would change results on FMA-capable architectures.
func float32FromBits(v uint32) float32 {
	f := float32(float32(v)*float32Unit) + float32Half
	if f >= 1 {
		return float32BelowOne
	}
	return f
}

func float64FromBits(v uint64) float64 {
	f := float64(float64(v)*float64Unit) + float64Half
	if f >= 1 {
		return float64BelowOne
	}
	return f
}
