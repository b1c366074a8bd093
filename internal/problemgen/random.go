package problemgen

import (
	"math/rand/v2"
	"time"
)

// Source is the bounded integer draw used to pick operands, panel order and
// skills. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSource returns a Source seeded with seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSource returns a Source seeded from the wall clock.
func NewTimeSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

// between returns a value in [lo, hi].
func between(rng Source, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// shuffled returns a copy of items in random order.
func shuffled(rng Source, items ...string) []string {
	out := make([]string, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
