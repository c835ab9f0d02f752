// Package intervaltree indexes a fixed batch of ranged values for point and
// window overlap queries.
//
// A Tree is built once from its batch and has no mutators, so any number of
// goroutines may query it at the same time. Values sharing an identical Range
// live together in one node's bag; the node's max is the highest endpoint
// anywhere in its subtree and prunes descents that cannot match.
package intervaltree

import (
	"errors"
	"fmt"

	"github.com/jsphweid/noteindex/ranges"
	"github.com/jsphweid/noteindex/util"
	"golang.org/x/exp/slices"
)

var ErrInvalidInput = errors.New("invalid input")

// Element is a ranged value with payload equality and a natural order.
// Equal decides which values are duplicates within a node's bag.
type Element[T any] interface {
	ranges.Ranged
	Equal(other T) bool
	Less(other T) bool
}

type node[T Element[T]] struct {
	key         ranges.Range
	max         int
	bag         []T
	left, right *node[T]
}

type Tree[T Element[T]] struct {
	root         *node[T]
	nodeCount    int
	elementCount int
}

// Build indexes batch. The tree's shape depends only on the set of distinct
// Ranges in batch, never on its order. Values equal to one already indexed
// under the same Range are dropped.
func Build[T Element[T]](batch []T) (*Tree[T], error) {
	if batch == nil {
		return nil, fmt.Errorf("nil batch: %w", ErrInvalidInput)
	}

	t := &Tree[T]{}

	seen := make(map[ranges.Range]struct{}, len(batch))
	keys := make([]ranges.Range, 0, len(batch))
	for _, e := range batch {
		r := e.Range()
		if !r.IsValid() {
			return nil, fmt.Errorf("element with range %v: %w", r, ErrInvalidInput)
		}
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			keys = append(keys, r)
		}
	}
	slices.SortFunc(keys, func(a, b ranges.Range) bool { return a.Less(b) })

	t.root = t.skeleton(keys)
	for _, e := range batch {
		if t.insert(e) {
			t.elementCount++
		}
	}
	return t, nil
}

// skeleton builds a balanced tree over sorted, distinct keys.
func (t *Tree[T]) skeleton(keys []ranges.Range) *node[T] {
	if len(keys) == 0 {
		return nil
	}
	mid := len(keys) / 2
	t.nodeCount++
	n := &node[T]{key: keys[mid], max: keys[mid].High()}
	n.left = t.skeleton(keys[:mid])
	n.right = t.skeleton(keys[mid+1:])
	return n
}

// insert descends to the node keyed by e's Range, raising max along the way.
// Every element's Range has a node after skeleton, so the descent always lands.
func (t *Tree[T]) insert(e T) bool {
	r := e.Range()
	n := t.root
	for n != nil {
		n.max = util.Max(n.max, r.High())
		switch c := r.Compare(n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			for _, have := range n.bag {
				if have.Equal(e) {
					return false
				}
			}
			n.bag = append(n.bag, e)
			return true
		}
	}
	panic(fmt.Sprintf("intervaltree: no node for range %v", r))
}

// Query returns every element whose Range contains point, in natural order.
func (t *Tree[T]) Query(point int) []T {
	res := make([]T, 0)
	var visit func(n *node[T])
	visit = func(n *node[T]) {
		if n.key.Contains(point) {
			res = append(res, n.bag...)
		}
		if n.left != nil && point <= n.left.max {
			visit(n.left)
		}
		if n.right != nil && point >= n.key.Low() {
			visit(n.right)
		}
	}
	if t.root != nil {
		visit(t.root)
	}
	sortElements(res)
	return res
}

// QueryRange returns every element whose Range overlaps window, in natural order.
func (t *Tree[T]) QueryRange(window ranges.Range) ([]T, error) {
	if !window.IsValid() {
		return nil, fmt.Errorf("window %v: %w", window, ErrInvalidInput)
	}
	res := make([]T, 0)
	var visit func(n *node[T])
	visit = func(n *node[T]) {
		if window.Overlaps(n.key) {
			res = append(res, n.bag...)
		}
		if n.left != nil && window.Low() <= n.left.max {
			visit(n.left)
		}
		if n.right != nil && window.High() >= n.key.Low() {
			visit(n.right)
		}
	}
	if t.root != nil {
		visit(t.root)
	}
	sortElements(res)
	return res, nil
}

// Ordered returns all elements in natural order.
func (t *Tree[T]) Ordered() []T {
	res := make([]T, 0, t.elementCount)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		res = append(res, n.bag...)
		walk(n.right)
	}
	walk(t.root)
	sortElements(res)
	return res
}

// Span is the smallest Range covering every element. False on an empty tree.
func (t *Tree[T]) Span() (ranges.Range, bool) {
	if t.root == nil {
		return ranges.Range{}, false
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	r, err := ranges.New(n.key.Low(), t.root.max)
	return r, err == nil
}

func (t *Tree[T]) IsEmpty() bool     { return t.elementCount == 0 }
func (t *Tree[T]) NodeCount() int    { return t.nodeCount }
func (t *Tree[T]) ElementCount() int { return t.elementCount }

// Height is the number of nodes on the longest root-to-leaf path.
func (t *Tree[T]) Height() int {
	var height func(n *node[T]) int
	height = func(n *node[T]) int {
		if n == nil {
			return 0
		}
		return 1 + util.Max(height(n.left), height(n.right))
	}
	return height(t.root)
}

func sortElements[T Element[T]](es []T) {
	slices.SortStableFunc(es, func(a, b T) bool { return a.Less(b) })
}
