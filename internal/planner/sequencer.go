package planner

import (
	"math/rand"

	"github.com/samber/lo"
)

// Sequencer produces a reproducible permutation of n positions for a seed.
type Sequencer interface {
	Permutation(n int, seed int64) []int
}

// RandSequencer shuffles with a math/rand source seeded per call.
type RandSequencer struct{}

// Permutation returns a Fisher-Yates shuffle of 0..n-1.
func (RandSequencer) Permutation(n int, seed int64) []int {
	if n <= 0 {
		return []int{}
	}
	order := lo.Range(n)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// Permute returns a reordered copy of items. The input is left untouched.
func Permute[T any](seq Sequencer, items []T, seed int64) []T {
	if seq == nil {
		seq = RandSequencer{}
	}
	order := seq.Permutation(len(items), seed)
	return lo.Map(order, func(idx int, _ int) T {
		return items[idx]
	})
}
