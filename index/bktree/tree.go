package bktree

import (
	"maps"
	"math"
	"slices"

	"github.com/viant/metric-index/index"
	"github.com/viant/metric-index/metric"
)

var magic = index.Magic{'B', 'K', 'T', '1'}

// Tree is a BK-tree over elements of type M.
type Tree[M metric.Element[M]] struct {
	root *node[M]
	size int
}

type node[M any] struct {
	data     M
	children map[float64]*node[M] // distance to data -> child
}

// New builds a tree by inserting points in order.
func New[M metric.Element[M]](points ...M) (*Tree[M], error) {
	return NewFromSlice(points)
}

// NewFromSlice builds a tree by inserting points in order.
func NewFromSlice[M metric.Element[M]](points []M) (*Tree[M], error) {
	t := &Tree[M]{}
	for _, p := range points {
		if err := t.Insert(p); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Insert adds point as a new leaf. Existing nodes are never modified apart
// from gaining a child.
func (t *Tree[M]) Insert(point M) error {
	leaf := &node[M]{data: point}
	if t.root == nil {
		t.root = leaf
		t.size++
		return nil
	}
	current := t.root
	for {
		d, err := metric.Distance(point, current.data)
		if err != nil {
			return err
		}
		child, ok := current.children[d]
		if !ok {
			if current.children == nil {
				current.children = make(map[float64]*node[M])
			}
			current.children[d] = leaf
			t.size++
			return nil
		}
		current = child
	}
}

// RangeQuery returns every element within radius of query, in no particular
// order. Querying an empty tree returns index.ErrEmptyIndex.
func (t *Tree[M]) RangeQuery(query M, radius float64) ([]M, error) {
	if t.root == nil {
		return nil, index.ErrEmptyIndex
	}
	if radius < 0 || math.IsNaN(radius) {
		return nil, nil
	}
	var result []M
	if err := t.rangeQuery(t.root, query, radius, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (t *Tree[M]) rangeQuery(n *node[M], query M, radius float64, result *[]M) error {
	d, err := metric.Distance(query, n.data)
	if err != nil {
		return err
	}
	if d <= radius {
		*result = append(*result, n.data)
	}
	// every element under key k is exactly k away from n.data, hence at
	// least |d-k| away from query
	for k, child := range n.children {
		if math.Abs(d-k) <= radius {
			if err := t.rangeQuery(child, query, radius, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// Values returns the elements in pre-order, visiting children by ascending
// key. Inserting the result into an empty tree reproduces this tree's shape.
func (t *Tree[M]) Values() []M {
	result := make([]M, 0, t.size)
	var walk func(n *node[M])
	walk = func(n *node[M]) {
		if n == nil {
			return
		}
		result = append(result, n.data)
		for _, k := range slices.Sorted(maps.Keys(n.children)) {
			walk(n.children[k])
		}
	}
	walk(t.root)
	return result
}

// Size returns the number of inserted elements.
func (t *Tree[M]) Size() int { return t.size }

// Empty reports whether the tree holds no elements.
func (t *Tree[M]) Empty() bool { return t.root == nil }

// Encode serializes the tree's elements in Values order.
func (t *Tree[M]) Encode(codec metric.Codec[M]) ([]byte, error) {
	return index.EncodeSnapshot(magic, t.Values(), codec)
}

// Decode rebuilds a tree from bytes written by Encode.
func Decode[M metric.Element[M]](data []byte, codec metric.Codec[M]) (*Tree[M], error) {
	points, err := index.DecodeSnapshot(magic, data, codec)
	if err != nil {
		return nil, err
	}
	return NewFromSlice(points)
}

var _ index.Index[metric.Hash] = (*Tree[metric.Hash])(nil)
