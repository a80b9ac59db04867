package random

import "math"

// NormFloat64 returns a standard normal sample (mean 0, variance 1) using
// the polar Box-Muller method.
//
// Each accepted point inside the unit circle yields two independent
// normals; only the first is returned and the second is dropped. Callers'
// recorded sequences depend on this draw count.
//
// Not a sum of uniforms (light tails) and not a library normal
// distribution (not portable across implementations).
//
// The result goes through math.Log, which is pure Go everywhere except
// s390x; only there may the last bit differ from other platforms.
func (r *Random) NormFloat64() float64 {
	for {
		v1 := 2*r.Float64() - 1
		v2 := 2*r.Float64() - 1
		s := float64(v1*v1) + float64(v2*v2)
		if s >= 1 || s == 0 {
			continue
		}
		return v1 * math.Sqrt(-2*math.Log(s)/s)
	}
}

// NormFloat32 is the float32 counterpart of NormFloat64 and consumes
// 32-bit uniform draws. The logarithm is taken in float64 and rounded to
// float32, so it can differ from a C logf in the last bit.
func (r *Random) NormFloat32() float32 {
	for {
		v1 := 2*r.Float32() - 1
		v2 := 2*r.Float32() - 1
		s := float32(v1*v1) + float32(v2*v2)
		if s >= 1 || s == 0 {
			continue
		}
		ln := float32(math.Log(float64(s)))
		a := float32(math.Sqrt(float64(-2 * ln / s)))
		return a * v1
	}
}
