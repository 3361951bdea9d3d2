package leadfeed

import "math/rand/v2"

// RandomSource produces uniform floats in [0,1)
type RandomSource interface {
	Float64() float64
}

// NewRandomSource makes a source seeded with seed, or the shared runtime source for zero seed.
// Seeded sources are not safe for concurrent use, the controller serializes access to them.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		return runtimeSource{}
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // simulation only
}

type runtimeSource struct{}

func (runtimeSource) Float64() float64 { return rand.Float64() } //nolint:gosec // simulation only
