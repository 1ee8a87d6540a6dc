package rforest

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Attrs maps each attribute name to its legal values.
type Attrs map[string][]string

// Names returns the attribute names in the fixed order used to break ties
// between attributes.
func (a Attrs) Names() []string {
	names := maps.Keys(a)
	slices.Sort(names)
	return names
}

// Validate checks that every attribute has a non-empty set of distinct
// legal values.
func (a Attrs) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(ErrInvalidInput, "no attributes")
	}
	for _, name := range a.Names() {
		values := a[name]
		if len(values) == 0 {
			return errors.Wrapf(ErrInvalidInput, "attribute %s has no values", name)
		}
		seen := map[string]bool{}
		for _, v := range values {
			if seen[v] {
				return errors.Wrapf(ErrInvalidInput, "attribute %s repeats value %s", name, v)
			}
			seen[v] = true
		}
	}
	return nil
}

// Check makes sure that a sample assigns exactly one legal value to every
// attribute.
func (a Attrs) Check(choices map[string]string) error {
	for name, value := range choices {
		values, ok := a[name]
		if !ok {
			return errors.Wrapf(ErrInvalidInput, "unknown attribute %s", name)
		}
		if !slices.Contains(values, value) {
			return errors.Wrapf(ErrInvalidInput, "attribute %s got unknown value %s", name, value)
		}
	}
	if len(choices) != len(a) {
		for _, name := range a.Names() {
			if _, ok := choices[name]; !ok {
				return errors.Wrapf(ErrInvalidInput, "missing attribute %s", name)
			}
		}
	}
	return nil
}

// A Sample is a labeled observation. It cannot be modified after creation.
type Sample[D comparable] struct {
	choices  map[string]string
	decision D
}

// NewSample creates a sample with a copy of the given choices.
func NewSample[D comparable](choices map[string]string, decision D) *Sample[D] {
	return &Sample[D]{
		choices:  maps.Clone(choices),
		decision: decision,
	}
}

// Choice returns the value chosen for an attribute, if any.
func (s *Sample[D]) Choice(attr string) (string, bool) {
	v, ok := s.choices[attr]
	return v, ok
}

// Choices returns a copy of the sample's attribute values.
func (s *Sample[D]) Choices() map[string]string {
	return maps.Clone(s.choices)
}

func (s *Sample[D]) Decision() D {
	return s.decision
}
