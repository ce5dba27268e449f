package util

import "math/rand"

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GeneratePayload generates a w x h x d payload where each slot holds a
// random positive value with probability density and the zero value
// otherwise.
func (r *RNG) GeneratePayload(w, h, d int, density float64) [][][]int {
	data := make([][][]int, w)
	for i := range data {
		data[i] = make([][]int, h)
		for j := range data[i] {
			data[i][j] = make([]int, d)
			for k := range data[i][j] {
				if r.rand.Float64() < density {
					data[i][j][k] = 1 + r.rand.Intn(1<<16)
				}
			}
		}
	}

	return data
}
