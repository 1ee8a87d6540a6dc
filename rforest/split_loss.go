package rforest

// A SplitCriterion scores how well a split separates labels.
//
// The parent counter holds the labels of every sample at a node, and parts
// holds the labels of each branch after splitting. Higher scores are
// better.
type SplitCriterion[D comparable] interface {
	Gain(parent *Counter[D], parts []*Counter[D]) float64
}

// InformationGain is a SplitCriterion which measures the decrease in
// entropy caused by a split.
type InformationGain[D comparable] struct{}

func (_ InformationGain[D]) Gain(parent *Counter[D], parts []*Counter[D]) float64 {
	return impurityDecrease(parent, parts, (*Counter[D]).Entropy)
}

// GiniGain is a SplitCriterion which measures the decrease in Gini
// impurity caused by a split.
type GiniGain[D comparable] struct{}

func (_ GiniGain[D]) Gain(parent *Counter[D], parts []*Counter[D]) float64 {
	return impurityDecrease(parent, parts, (*Counter[D]).Gini)
}

func impurityDecrease[D comparable](
	parent *Counter[D],
	parts []*Counter[D],
	impurity func(*Counter[D]) float64,
) float64 {
	total := float64(parent.Total())
	if total == 0 {
		return 0
	}
	res := impurity(parent)
	for _, part := range parts {
		if part.Total() == 0 {
			continue
		}
		res -= float64(part.Total()) / total * impurity(part)
	}
	return res
}
