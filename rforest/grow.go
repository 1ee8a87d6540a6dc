package rforest

import (
	"math/rand"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/slices"
)

// GrowDecisionTree builds a decision tree from labeled samples.
//
// At every branch, m attributes are selected at random without replacement
// from the attributes not yet used on the path from the root, and the one
// with the highest information gain is used to split the samples.
//
// This is equivalent to calling Grow() on a TreeGrower with default
// settings.
func GrowDecisionTree[D comparable](
	r *rand.Rand,
	attrs Attrs,
	samples []*Sample[D],
	m int,
) (*Tree[D], error) {
	g := &TreeGrower[D]{Attrs: attrs, M: m}
	return g.Grow(r, samples)
}

// A TreeGrower configures the induction of randomized decision trees.
type TreeGrower[D comparable] struct {
	// Attrs lists the attributes and their legal values.
	Attrs Attrs

	// M is the number of attributes considered at each branch.
	// It must be between 1 and len(Attrs).
	M int

	// Criterion scores candidate splits.
	// If nil, InformationGain is used.
	Criterion SplitCriterion[D]

	// MaxDepth, if non-zero, limits the number of branches on any path
	// from the root.
	MaxDepth int

	// MinSplit, if greater than one, turns nodes with fewer than MinSplit
	// samples into leaves.
	MinSplit int

	// Logger, if non-nil, receives debug information about growth.
	Logger *zerolog.Logger
}

// Grow builds a tree from the samples, using r for attribute subsampling.
func (g *TreeGrower[D]) Grow(r *rand.Rand, samples []*Sample[D]) (*Tree[D], error) {
	if err := g.checkParams(); err != nil {
		return nil, errors.Wrap(err, "grow decision tree")
	}
	if err := g.checkSamples(samples); err != nil {
		return nil, errors.Wrap(err, "grow decision tree")
	}
	tree := g.grow(r, samples)
	logger := g.logger()
	logger.Debug().
		Int("samples", len(samples)).
		Int("leaves", tree.NumLeaves()).
		Int("depth", tree.Depth()).
		Msg("grew decision tree")
	return tree, nil
}

func (g *TreeGrower[D]) checkParams() error {
	if err := g.Attrs.Validate(); err != nil {
		return err
	}
	if g.M < 1 || g.M > len(g.Attrs) {
		return errors.Wrapf(ErrInvalidInput, "m must be in [1, %d] but got %d", len(g.Attrs), g.M)
	}
	if g.MaxDepth < 0 {
		return errors.Wrapf(ErrInvalidInput, "negative max depth %d", g.MaxDepth)
	}
	if g.MinSplit < 0 {
		return errors.Wrapf(ErrInvalidInput, "negative min split %d", g.MinSplit)
	}
	return nil
}

func (g *TreeGrower[D]) checkSamples(samples []*Sample[D]) error {
	if len(samples) == 0 {
		return errors.Wrap(ErrInvalidInput, "no samples")
	}
	for i, s := range samples {
		if err := g.Attrs.Check(s.choices); err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
	}
	return nil
}

// grow assumes that the parameters and samples have been checked.
func (g *TreeGrower[D]) grow(r *rand.Rand, samples []*Sample[D]) *Tree[D] {
	criterion := g.Criterion
	if criterion == nil {
		criterion = InformationGain[D]{}
	}
	state := &growState[D]{
		Attrs:     g.Attrs,
		M:         g.M,
		Criterion: criterion,
		MaxDepth:  g.MaxDepth,
		MinSplit:  g.MinSplit,
		Rand:      r,
	}
	remaining := linkedhashset.New()
	for _, name := range g.Attrs.Names() {
		remaining.Add(name)
	}
	return state.Build(samples, remaining, 0)
}

func (g *TreeGrower[D]) logger() *zerolog.Logger {
	if g.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return g.Logger
}

type growState[D comparable] struct {
	Attrs     Attrs
	M         int
	Criterion SplitCriterion[D]
	MaxDepth  int
	MinSplit  int
	Rand      *rand.Rand
}

func (g *growState[D]) Build(samples []*Sample[D], remaining *linkedhashset.Set, depth int) *Tree[D] {
	labels := labelCounts(samples)
	if labels.Len() == 1 {
		return &Tree[D]{Leaf: labels.Mode()}
	}
	if remaining.Empty() ||
		(g.MaxDepth != 0 && depth >= g.MaxDepth) ||
		len(samples) < g.MinSplit {
		return &Tree[D]{Leaf: labels.Mode()}
	}

	var bestAttr string
	var bestGain float64
	var bestParts map[string][]*Sample[D]
	for i, attr := range g.Candidates(remaining) {
		parts := g.Partition(attr, samples)
		counts := make([]*Counter[D], 0, len(parts))
		for _, value := range g.Attrs[attr] {
			counts = append(counts, labelCounts(parts[value]))
		}
		gain := g.Criterion.Gain(labels, counts)
		if i == 0 || gain > bestGain {
			bestAttr = attr
			bestGain = gain
			bestParts = parts
		}
	}

	subRemaining := linkedhashset.New(remaining.Values()...)
	subRemaining.Remove(bestAttr)

	majority := labels.Mode()
	children := make(map[string]*Tree[D], len(g.Attrs[bestAttr]))
	for _, value := range g.Attrs[bestAttr] {
		if part := bestParts[value]; len(part) > 0 {
			children[value] = g.Build(part, subRemaining, depth+1)
		} else {
			children[value] = &Tree[D]{Leaf: majority}
		}
	}
	return &Tree[D]{Attr: bestAttr, Children: children}
}

// Candidates selects the attributes to consider for a split, in tie-break
// order.
func (g *growState[D]) Candidates(remaining *linkedhashset.Set) []string {
	names := make([]string, 0, remaining.Size())
	for _, x := range remaining.Values() {
		names = append(names, x.(string))
	}
	res := ChooseDistinct(g.Rand, names, essentials.MinInt(g.M, len(names)))
	slices.Sort(res)
	return res
}

// Partition groups samples by their value for the attribute.
func (g *growState[D]) Partition(attr string, samples []*Sample[D]) map[string][]*Sample[D] {
	res := make(map[string][]*Sample[D], len(g.Attrs[attr]))
	for _, s := range samples {
		v := s.choices[attr]
		res[v] = append(res[v], s)
	}
	return res
}

func labelCounts[D comparable](samples []*Sample[D]) *Counter[D] {
	res := NewCounter[D]()
	for _, s := range samples {
		res.Add(s.decision)
	}
	return res
}
