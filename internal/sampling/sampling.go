// Package sampling draws revisions from a project history according to a
// sampling method.
package sampling

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/bjulian5/varats/internal/model"
)

// DistributionFunc returns n non-negative weights, one per candidate position
type DistributionFunc func(n int) []float64

// Uniform returns a distribution of U(0,1) weights
func Uniform(rng *rand.Rand) DistributionFunc {
	return func(n int) []float64 {
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = rng.Float64()
		}
		return weights
	}
}

// HalfNormal returns a distribution of |N(0,1)| weights in descending
// order, favouring the first candidates
func HalfNormal(rng *rand.Rand) DistributionFunc {
	return func(n int) []float64 {
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = math.Abs(rng.NormFloat64())
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(weights)))
		return weights
	}
}

// ForMethod returns the distribution of a sampling method
func ForMethod(method model.SamplingMethod, rng *rand.Rand) (DistributionFunc, error) {
	switch method {
	case model.SamplingUniform:
		return Uniform(rng), nil
	case model.SamplingHalfNormal:
		return HalfNormal(rng), nil
	default:
		return nil, fmt.Errorf("no distribution for sampling method %s", method)
	}
}

// NewRand returns a generator seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SampleN draws n distinct items without replacement. The chance of an item
// is proportional to the weight dist assigns to its position. When n covers
// all items, every item is returned in its original order.
func SampleN[T any](rng *rand.Rand, dist DistributionFunc, n int, items []T) []T {
	if n <= 0 {
		return nil
	}
	if n >= len(items) {
		return append([]T(nil), items...)
	}

	weights := dist(len(items))
	idx := make([]int, len(items))
	total := 0.0
	for i := range idx {
		idx[i] = i
		total += weights[i]
	}

	result := make([]T, 0, n)
	for len(result) < n {
		pick := pickWeighted(rng, idx, weights, total)
		chosen := idx[pick]
		result = append(result, items[chosen])

		total -= weights[chosen]
		idx[pick] = idx[len(idx)-1]
		idx = idx[:len(idx)-1]
	}
	return result
}

// pickWeighted returns a position in idx. Without any remaining weight the
// pick is uniform.
func pickWeighted(rng *rand.Rand, idx []int, weights []float64, total float64) int {
	if total <= 0 {
		return rng.IntN(len(idx))
	}
	r := rng.Float64() * total
	for pos, i := range idx {
		r -= weights[i]
		if r < 0 {
			return pos
		}
	}
	// Floating point drift can leave r marginally positive.
	for pos := len(idx) - 1; pos >= 0; pos-- {
		if weights[idx[pos]] > 0 {
			return pos
		}
	}
	return len(idx) - 1
}
