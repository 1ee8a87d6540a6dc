package rforest

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Tree is a node of a decision tree over categorical attributes.
//
// Leaf nodes have a nil Children map and store their decision in Leaf.
// Branch nodes split on Attr and have one child per legal value.
type Tree[D comparable] struct {
	Attr     string
	Children map[string]*Tree[D]

	Leaf D
}

func (t *Tree[D]) IsLeaf() bool {
	return t.Children == nil
}

// Decide follows the branches selected by the choices and returns the
// decision of the leaf it reaches.
func (t *Tree[D]) Decide(choices map[string]string) (D, error) {
	node := t
	for !node.IsLeaf() {
		value, ok := choices[node.Attr]
		if !ok {
			var zero D
			return zero, &UnknownValueError{Attr: node.Attr, Missing: true}
		}
		child, ok := node.Children[value]
		if !ok {
			var zero D
			return zero, &UnknownValueError{Attr: node.Attr, Value: value}
		}
		node = child
	}
	return node.Leaf, nil
}

func (t *Tree[D]) NumLeaves() int {
	if t.IsLeaf() {
		return 1
	}
	var res int
	for _, child := range t.Children {
		res += child.NumLeaves()
	}
	return res
}

// Depth returns the number of branches on the longest path to a leaf.
func (t *Tree[D]) Depth() int {
	if t.IsLeaf() {
		return 0
	}
	var res int
	for _, child := range t.Children {
		if d := child.Depth() + 1; d > res {
			res = d
		}
	}
	return res
}

func (t *Tree[D]) String() string {
	if t.IsLeaf() {
		return fmt.Sprintf("return %v", t.Leaf)
	}
	values := maps.Keys(t.Children)
	slices.Sort(values)
	cases := make([]string, len(values))
	for i, v := range values {
		cases[i] = fmt.Sprintf("case %q:\n%s", v, indentText(t.Children[v].String()))
	}
	return fmt.Sprintf("switch %s {\n%s\n}", t.Attr, strings.Join(cases, "\n"))
}

func indentText(text string) string {
	lines := strings.Split(text, "\n")
	for i, x := range lines {
		lines[i] = "  " + x
	}
	return strings.Join(lines, "\n")
}
