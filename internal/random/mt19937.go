package random

// MT19937 parameters. These match std::mt19937, numpy's RandomState and
// every other standard 32-bit Mersenne Twister, which is what makes a seed
// portable across implementations.
const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
	mtTemperB   = 0x9d2c5680
	mtTemperC   = 0xefc60000
	mtInitMult  = 1812433253

	// DefaultSeed is the engine's canonical built-in seed.
	DefaultSeed uint32 = 5489
)

// mt19937 is the raw 32-bit Mersenne Twister state.
type mt19937 struct {
	state [mtN]uint32
	index int
}

// seed resets the state from value. The value is mixed with DefaultSeed so
// that a zero seed reproduces the engine's default sequence.
func (mt *mt19937) seed(value uint32) {
	mt.state[0] = value ^ DefaultSeed
	for i := 1; i < mtN; i++ {
		prev := mt.state[i-1]
		mt.state[i] = mtInitMult*(prev^(prev>>30)) + uint32(i)
	}
	mt.index = mtN
}

// twist regenerates the whole state block.
func (mt *mt19937) twist() {
	for i := 0; i < mtN; i++ {
		y := (mt.state[i] & mtUpperMask) | (mt.state[(i+1)%mtN] & mtLowerMask)
		next := mt.state[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= mtMatrixA
		}
		mt.state[i] = next
	}
	mt.index = 0
}

// next32 advances one step and returns a tempered word.
func (mt *mt19937) next32() uint32 {
	if mt.index >= mtN {
		mt.twist()
	}
	y := mt.state[mt.index]
	mt.index++

	y ^= y >> 11
	y ^= (y << 7) & mtTemperB
	y ^= (y << 15) & mtTemperC
	y ^= y >> 18
	return y
}

// discard advances count steps. Skipped words are never tempered, so the
// cost is one twist per block rather than one step per word.
func (mt *mt19937) discard(count uint64) {
	for count > 0 {
		if mt.index >= mtN {
			mt.twist()
		}
		step := uint64(mtN - mt.index)
		if step > count {
			step = count
		}
		mt.index += int(step)
		count -= step
	}
}
