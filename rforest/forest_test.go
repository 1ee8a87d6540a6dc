package rforest

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func TestRandomForestWeather(t *testing.T) {
	attrs := Attrs{"weather": {"sunny", "rainy"}}
	samples := []*Sample[string]{
		NewSample(map[string]string{"weather": "sunny"}, "play"),
		NewSample(map[string]string{"weather": "rainy"}, "stay"),
	}
	// A bag with only one of the two samples yields a tree that is wrong
	// half the time, so use enough trees that the vote is reliable.
	forest, err := GrowRandomForest(rand.New(rand.NewSource(1337)), attrs, samples, 101, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if forest.NumTrees() != 101 {
		t.Fatalf("expected 101 trees but got %d", forest.NumTrees())
	}
	for _, s := range samples {
		d, err := forest.Decide(s)
		if err != nil {
			t.Fatal(err)
		}
		mustEqual(t, s.Decision(), d)
	}
	if correct, err := forest.NumCorrectDecisions(samples); err != nil {
		t.Fatal(err)
	} else if correct != 2 {
		t.Fatalf("expected 2 correct decisions but got %d", correct)
	}
}

func TestRandomForestSmall(t *testing.T) {
	attrs := Attrs{"weather": {"sunny", "rainy"}}
	samples := []*Sample[string]{
		NewSample(map[string]string{"weather": "sunny"}, "play"),
		NewSample(map[string]string{"weather": "rainy"}, "stay"),
	}
	for seed := int64(0); seed < 20; seed++ {
		forest, err := GrowRandomForest(rand.New(rand.NewSource(seed)), attrs, samples, 5, 2, 1)
		if err != nil {
			t.Fatal(err)
		}
		var expectedCorrect int
		for _, s := range samples {
			votes, err := forest.Votes(s.choices)
			if err != nil {
				t.Fatal(err)
			}
			if votes.Total() != 5 {
				t.Fatalf("expected 5 votes but got %d", votes.Total())
			}
			d, err := forest.Decide(s)
			if err != nil {
				t.Fatal(err)
			}
			mustEqual(t, votes.Mode(), d)
			if d == s.Decision() {
				expectedCorrect++
			}
		}
		correct, err := forest.NumCorrectDecisions(samples)
		if err != nil {
			t.Fatal(err)
		}
		if correct != expectedCorrect || correct > len(samples) {
			t.Fatalf("seed %d: expected %d correct but got %d", seed, expectedCorrect, correct)
		}
	}
}

func TestRandomForestSeparable(t *testing.T) {
	attrs, samples := separableDataset()
	r := rand.New(rand.NewSource(1337))
	for m := 1; m <= len(attrs); m++ {
		forest, err := GrowRandomForest(r, attrs, samples, 25, len(samples), m)
		if err != nil {
			t.Fatal(err)
		}
		correct, err := forest.NumCorrectDecisions(samples)
		if err != nil {
			t.Fatal(err)
		}
		if correct != len(samples) {
			t.Errorf("m=%d: expected %d correct but got %d", m, len(samples), correct)
		}
		acc, err := forest.Accuracy(samples)
		if err != nil {
			t.Fatal(err)
		}
		if acc != 1 {
			t.Errorf("m=%d: expected accuracy 1 but got %f", m, acc)
		}
	}
}

func TestRandomForestBetterThanChance(t *testing.T) {
	attrs, samples := randomDataset(rand.New(rand.NewSource(1337)), 4, 3, 600)
	train, test := samples[:400], samples[400:]
	logger := zerolog.Nop()
	g := &ForestGrower[string]{Size: 15, N: len(train), M: 2, Logger: &logger}
	forest, err := g.Grow(rand.New(rand.NewSource(1337)), attrs, train)
	if err != nil {
		t.Fatal(err)
	}
	var baseline int
	for _, s := range test {
		if s.Decision() == "no" {
			baseline++
		}
	}
	correct, err := forest.NumCorrectDecisions(test)
	if err != nil {
		t.Fatal(err)
	}
	if correct <= baseline {
		t.Errorf("expected more than %d correct but got %d", baseline, correct)
	}
}

func TestRandomForestDeterministic(t *testing.T) {
	attrs, samples := randomDataset(rand.New(rand.NewSource(1337)), 5, 3, 200)
	g := &ForestGrower[string]{Size: 7, N: 100, M: 2, MaxDepth: 3}
	forest1, err := g.Grow(rand.New(rand.NewSource(42)), attrs, samples)
	if err != nil {
		t.Fatal(err)
	}
	forest2, err := g.Grow(rand.New(rand.NewSource(42)), attrs, samples)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(forest1.Trees(), forest2.Trees()) {
		t.Fatal("forests differ")
	}
	for _, tree := range forest1.Trees() {
		if tree.Depth() > 3 {
			t.Fatalf("tree depth %d exceeds limit", tree.Depth())
		}
	}

	decisions, err := forest1.DecideAll(samples)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range samples {
		for j := 0; j < 3; j++ {
			d, err := forest1.Decide(s)
			if err != nil {
				t.Fatal(err)
			}
			mustEqual(t, decisions[i], d)
		}
	}
}

func TestRandomForestInvalid(t *testing.T) {
	attrs, samples := separableDataset()
	r := rand.New(rand.NewSource(1337))
	for i, args := range []struct {
		Samples []*Sample[string]
		Size    int
		N       int
		M       int
	}{
		{nil, 5, 2, 1},
		{samples, 0, 2, 1},
		{samples, 5, 0, 1},
		{samples, 5, 2, 0},
		{samples, 5, 2, 3},
	} {
		forest, err := GrowRandomForest(r, attrs, args.Samples, args.Size, args.N, args.M)
		if forest != nil || !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected invalid input but got %v", i, err)
		}
	}
}

func TestRandomForestUnknownValue(t *testing.T) {
	attrs, samples := separableDataset()
	forest, err := GrowRandomForest(rand.New(rand.NewSource(1337)), attrs, samples, 5, 12, 2)
	if err != nil {
		t.Fatal(err)
	}
	bad := NewSample(map[string]string{"color": "blue", "size": "small"}, "plum")
	_, err = forest.Decide(bad)
	var unknown *UnknownValueError
	if !errors.As(err, &unknown) || unknown.Attr != "color" || unknown.Value != "blue" {
		t.Fatalf("expected unknown color error but got %v", err)
	}
	if _, err := forest.NumCorrectDecisions(append(samples, bad)); !errors.As(err, &unknown) {
		t.Fatalf("expected unknown value error but got %v", err)
	}
}

func BenchmarkGrowRandomForest(b *testing.B) {
	attrs, samples := randomDataset(rand.New(rand.NewSource(1337)), 10, 4, 1000)
	r := rand.New(rand.NewSource(1337))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GrowRandomForest(r, attrs, samples, 10, len(samples), 3)
	}
}
