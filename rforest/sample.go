package rforest

import "math/rand"

// Choices draws n items uniformly at random with replacement.
func Choices[T any](r *rand.Rand, items []T, n int) []T {
	if n < 0 {
		panic("negative number of choices")
	}
	if n > 0 && len(items) == 0 {
		panic("cannot choose from an empty list")
	}
	res := make([]T, n)
	for i := range res {
		res[i] = items[r.Intn(len(items))]
	}
	return res
}

// ChooseDistinct draws k items uniformly at random without replacement.
//
// The input slice is not modified.
func ChooseDistinct[T any](r *rand.Rand, items []T, k int) []T {
	if k < 0 || k > len(items) {
		panic("number of choices out of range")
	}
	pool := append([]T{}, items...)
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
