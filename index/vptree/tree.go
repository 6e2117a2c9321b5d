package vptree

import (
	"context"
	"log/slog"
	"math"

	"github.com/viant/metric-index/index"
	"github.com/viant/metric-index/metric"
	"github.com/viant/metric-index/partition"
)

var magic = index.Magic{'V', 'P', 'T', '1'}

// Tree is a vantage-point tree over elements of type M.
type Tree[M metric.Element[M]] struct {
	root *node[M]
	opts *options
}

type node[M any] struct {
	data  M
	mu    float64
	left  *node[M]
	right *node[M]
	size  int
}

func (n *node[M]) count() int {
	if n == nil {
		return 0
	}
	return n.size
}

// New builds a tree from points.
func New[M metric.Element[M]](points ...M) (*Tree[M], error) {
	return NewFromSlice(points)
}

// NewFromSlice builds a tree from points. The caller's slice is copied and
// never reordered.
func NewFromSlice[M metric.Element[M]](points []M, opts ...Option) (*Tree[M], error) {
	t := &Tree[M]{opts: newOptions(opts)}
	if err := t.rebuild(append([]M(nil), points...)); err != nil {
		return nil, err
	}
	return t, nil
}

// rebuild replaces the tree with one built over points, which it reorders.
func (t *Tree[M]) rebuild(points []M) error {
	b := &builder[M]{
		points:      points,
		partitioner: partition.New[M](len(points)),
	}
	root, err := b.build(0, len(points)-1)
	if err != nil {
		return err
	}
	t.root = root
	if t.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.opts.logger.Debug("vptree built", "size", root.count(), "height", t.Height())
	}
	return nil
}

type builder[M metric.Element[M]] struct {
	points      []M
	partitioner *partition.Partitioner[M]
}

// build indexes points[i..j]. The last element becomes the vantage point and
// the rest are split at the median distance to it.
func (b *builder[M]) build(i, j int) (*node[M], error) {
	if i > j {
		return nil, nil
	}
	n := &node[M]{data: b.points[j], size: 1}
	if i == j {
		return n, nil
	}
	p, err := b.partitioner.Select(n.data, b.points, i, j-1)
	if err != nil {
		return nil, err
	}
	if n.mu, err = metric.Distance(n.data, b.points[p]); err != nil {
		return nil, err
	}
	if n.left, err = b.build(i, p); err != nil {
		return nil, err
	}
	if n.right, err = b.build(p+1, j-1); err != nil {
		return nil, err
	}
	n.size += n.left.count() + n.right.count()
	return n, nil
}

// Values returns the elements in pre-order: node, left subtree, right subtree.
func (t *Tree[M]) Values() []M {
	return values(t.root, make([]M, 0, t.Size()))
}

func values[M any](n *node[M], result []M) []M {
	if n == nil {
		return result
	}
	result = append(result, n.data)
	result = values(n.left, result)
	return values(n.right, result)
}

// InsertAll rebuilds the tree over its current values followed by points and
// returns the receiver. On error the tree is left unchanged.
func (t *Tree[M]) InsertAll(points ...M) (*Tree[M], error) {
	all := append(t.Values(), points...)
	if err := t.rebuild(all); err != nil {
		return t, err
	}
	return t, nil
}

// Size returns the number of indexed elements.
func (t *Tree[M]) Size() int { return t.root.count() }

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[M]) Height() int {
	var height func(n *node[M]) int
	height = func(n *node[M]) int {
		if n == nil {
			return 0
		}
		return 1 + max(height(n.left), height(n.right))
	}
	return height(t.root)
}

// RangeQuery returns, in pre-order, every element whose distance to query is
// at most threshold. An empty tree yields no elements.
//
// The left subtree is searched when d-threshold <= mu and the right one when
// d+threshold > mu, where d is the distance from the vantage point to query.
// An element stored on the right at exactly mu from its vantage point is
// therefore not reached when d+threshold == mu.
func (t *Tree[M]) RangeQuery(query M, threshold float64) ([]M, error) {
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, nil
	}
	var result []M
	if err := rangeQuery(t.root, query, threshold, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func rangeQuery[M metric.Element[M]](n *node[M], query M, threshold float64, result *[]M) error {
	if n == nil {
		return nil
	}
	d, err := metric.Distance(n.data, query)
	if err != nil {
		return err
	}
	if d <= threshold {
		*result = append(*result, n.data)
	}
	if d-threshold <= n.mu {
		if err := rangeQuery(n.left, query, threshold, result); err != nil {
			return err
		}
	}
	if d+threshold > n.mu {
		if err := rangeQuery(n.right, query, threshold, result); err != nil {
			return err
		}
	}
	return nil
}

// Encode serializes the tree's elements in Values order.
func (t *Tree[M]) Encode(codec metric.Codec[M]) ([]byte, error) {
	return index.EncodeSnapshot(magic, t.Values(), codec)
}

// Decode rebuilds a tree from bytes written by Encode. The restored tree holds
// the same elements; its shape may differ from the encoded one.
func Decode[M metric.Element[M]](data []byte, codec metric.Codec[M], opts ...Option) (*Tree[M], error) {
	points, err := index.DecodeSnapshot(magic, data, codec)
	if err != nil {
		return nil, err
	}
	return NewFromSlice(points, opts...)
}

var _ index.Index[metric.Vector] = (*Tree[metric.Vector])(nil)
