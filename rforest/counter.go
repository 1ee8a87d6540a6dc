package rforest

import (
	"math"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// A Counter is a multiset which remembers the order in which elements were
// first added.
type Counter[T comparable] struct {
	counts *linkedhashmap.Map
	total  int
}

func NewCounter[T comparable]() *Counter[T] {
	return &Counter[T]{counts: linkedhashmap.New()}
}

// Add increments the count of x.
func (c *Counter[T]) Add(x T) {
	c.AddN(x, 1)
}

// AddN increments the count of x by n.
func (c *Counter[T]) AddN(x T, n int) {
	if n < 0 {
		panic("cannot add a negative count")
	}
	c.counts.Put(x, c.Count(x)+n)
	c.total += n
}

// Count returns the number of times x was added.
func (c *Counter[T]) Count(x T) int {
	if n, ok := c.counts.Get(x); ok {
		return n.(int)
	}
	return 0
}

// Total returns the sum of all counts.
func (c *Counter[T]) Total() int {
	return c.total
}

// Len returns the number of distinct elements.
func (c *Counter[T]) Len() int {
	return c.counts.Size()
}

// Keys returns the distinct elements in insertion order.
func (c *Counter[T]) Keys() []T {
	res := make([]T, 0, c.counts.Size())
	it := c.counts.Iterator()
	for it.Next() {
		res = append(res, it.Key().(T))
	}
	return res
}

// Mode returns the most frequent element.
//
// When several elements share the highest count, the one which was added
// first wins.
func (c *Counter[T]) Mode() T {
	if c.counts.Empty() {
		panic("mode of empty counter")
	}
	var best T
	bestCount := -1
	it := c.counts.Iterator()
	for it.Next() {
		if n := it.Value().(int); n > bestCount {
			best = it.Key().(T)
			bestCount = n
		}
	}
	return best
}

// Entropy computes the Shannon entropy of the distribution, in nats.
func (c *Counter[T]) Entropy() float64 {
	var res float64
	it := c.counts.Iterator()
	for it.Next() {
		p := float64(it.Value().(int)) / float64(c.total)
		res -= p * logOrZero(p)
	}
	return res
}

// Gini computes the Gini impurity of the distribution.
func (c *Counter[T]) Gini() float64 {
	if c.total == 0 {
		return 0
	}
	res := 1.0
	it := c.counts.Iterator()
	for it.Next() {
		p := float64(it.Value().(int)) / float64(c.total)
		res -= p * p
	}
	return res
}

func logOrZero(x float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Log(x)
}
