package rforest

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/unixpickle/essentials"
)

// A RandomForest is a collection of decision trees which vote on
// decisions.
//
// Forests can only be created by growing them, and they cannot be modified
// afterwards, so it is safe to use one from multiple Goroutines.
type RandomForest[D comparable] struct {
	trees []*Tree[D]
}

// GrowRandomForest grows size trees, each from n samples chosen with
// replacement. The best attribute at each branch of a tree is chosen from m
// attributes selected at random without replacement.
func GrowRandomForest[D comparable](
	r *rand.Rand,
	attrs Attrs,
	samples []*Sample[D],
	size int,
	n int,
	m int,
) (*RandomForest[D], error) {
	g := &ForestGrower[D]{Size: size, N: n, M: m}
	return g.Grow(r, attrs, samples)
}

// A ForestGrower configures the growth of random forests.
type ForestGrower[D comparable] struct {
	// Size is the number of trees in the forest.
	Size int

	// N is the number of samples drawn with replacement for each tree.
	N int

	// M is the number of attributes considered at each branch.
	M int

	// Criterion scores candidate splits.
	// If nil, InformationGain is used.
	Criterion SplitCriterion[D]

	// MaxDepth, if non-zero, limits the depth of each tree.
	MaxDepth int

	// MinSplit, if greater than one, turns nodes with fewer than MinSplit
	// samples into leaves.
	MinSplit int

	// Logger, if non-nil, receives debug information about growth.
	Logger *zerolog.Logger
}

// Grow trains the trees of a new forest one after another, using r for
// both bootstrap sampling and attribute subsampling.
func (f *ForestGrower[D]) Grow(r *rand.Rand, attrs Attrs, samples []*Sample[D]) (*RandomForest[D], error) {
	treeGrower := &TreeGrower[D]{
		Attrs:     attrs,
		M:         f.M,
		Criterion: f.Criterion,
		MaxDepth:  f.MaxDepth,
		MinSplit:  f.MinSplit,
	}
	if err := treeGrower.checkParams(); err != nil {
		return nil, errors.Wrap(err, "grow random forest")
	}
	if f.Size < 1 {
		return nil, errors.Wrapf(ErrInvalidInput, "grow random forest: size must be positive but got %d", f.Size)
	}
	if f.N < 1 {
		return nil, errors.Wrapf(ErrInvalidInput, "grow random forest: n must be positive but got %d", f.N)
	}
	if err := treeGrower.checkSamples(samples); err != nil {
		return nil, errors.Wrap(err, "grow random forest")
	}

	logger := treeGrower.logger()
	if f.Logger != nil {
		logger = f.Logger
	}

	trees := make([]*Tree[D], f.Size)
	for i := range trees {
		bag := Choices(r, samples, f.N)
		trees[i] = treeGrower.grow(r, bag)
		logger.Debug().
			Int("tree", i).
			Int("leaves", trees[i].NumLeaves()).
			Int("depth", trees[i].Depth()).
			Msg("grew forest tree")
	}
	logger.Debug().Int("trees", f.Size).Int("samples", len(samples)).Msg("grew random forest")

	return &RandomForest[D]{trees: trees}, nil
}

// NumTrees returns the number of trees in the forest.
func (r *RandomForest[D]) NumTrees() int {
	return len(r.trees)
}

// Trees returns the trees in the forest.
//
// The trees are shared with the forest and must not be modified.
func (r *RandomForest[D]) Trees() []*Tree[D] {
	return append([]*Tree[D]{}, r.trees...)
}

// Votes counts the decisions of each tree, in tree order.
func (r *RandomForest[D]) Votes(choices map[string]string) (*Counter[D], error) {
	res := NewCounter[D]()
	for i, t := range r.trees {
		d, err := t.Decide(choices)
		if err != nil {
			return nil, errors.Wrapf(err, "tree %d", i)
		}
		res.Add(d)
	}
	return res, nil
}

// Decide returns the mode of the trees' decisions on the sample.
func (r *RandomForest[D]) Decide(sample *Sample[D]) (D, error) {
	votes, err := r.Votes(sample.choices)
	if err != nil {
		var zero D
		return zero, errors.Wrap(err, "decide")
	}
	return votes.Mode(), nil
}

// DecideAll makes a decision for every sample, using multiple Goroutines.
//
// If any decision fails, the error for the earliest failing sample is
// returned.
func (r *RandomForest[D]) DecideAll(samples []*Sample[D]) ([]D, error) {
	res := make([]D, len(samples))
	errs := make([]error, len(samples))
	essentials.ConcurrentMap(0, len(samples), func(i int) {
		res[i], errs[i] = r.Decide(samples[i])
	})
	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
	}
	return res, nil
}

// NumCorrectDecisions counts the samples for which the forest's decision
// equals the sample's decision.
func (r *RandomForest[D]) NumCorrectDecisions(samples []*Sample[D]) (int, error) {
	decisions, err := r.DecideAll(samples)
	if err != nil {
		return 0, err
	}
	var correct int
	for i, d := range decisions {
		if d == samples[i].decision {
			correct++
		}
	}
	return correct, nil
}

// Accuracy returns the fraction of samples decided correctly.
func (r *RandomForest[D]) Accuracy(samples []*Sample[D]) (float64, error) {
	if len(samples) == 0 {
		return 0, errors.Wrap(ErrInvalidInput, "accuracy of no samples")
	}
	correct, err := r.NumCorrectDecisions(samples)
	if err != nil {
		return 0, err
	}
	return float64(correct) / float64(len(samples)), nil
}
