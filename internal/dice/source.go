package dice

import "math/rand/v2"

// pcgStream is the fixed PCG increment used for seeded generators.
const pcgStream = 0x9e3779b97f4a7c15

func newRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(*seed), pcgStream))
}

func face(r *rand.Rand) int {
	return r.IntN(Sides) + 1
}
