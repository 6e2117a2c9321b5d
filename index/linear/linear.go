package linear

import (
	"github.com/viant/metric-index/index"
	"github.com/viant/metric-index/metric"
)

var magic = index.Magic{'L', 'I', 'N', '1'}

// Index is a brute-force metric index.
type Index[M metric.Element[M]] struct {
	points []M
}

// New returns an index over a copy of points.
func New[M metric.Element[M]](points ...M) *Index[M] {
	return &Index[M]{points: append([]M(nil), points...)}
}

// Insert appends points to the index.
func (i *Index[M]) Insert(points ...M) {
	i.points = append(i.points, points...)
}

// RangeQuery returns, in insertion order, every element within radius of query.
func (i *Index[M]) RangeQuery(query M, radius float64) ([]M, error) {
	if radius < 0 {
		return nil, nil
	}
	var result []M
	for _, p := range i.points {
		d, err := metric.Distance(query, p)
		if err != nil {
			return nil, err
		}
		if d <= radius {
			result = append(result, p)
		}
	}
	return result, nil
}

// Values returns a copy of the indexed elements in insertion order.
func (i *Index[M]) Values() []M {
	return append([]M(nil), i.points...)
}

// Size returns the number of indexed elements.
func (i *Index[M]) Size() int { return len(i.points) }

// Encode serializes the indexed elements with codec.
func (i *Index[M]) Encode(codec metric.Codec[M]) ([]byte, error) {
	return index.EncodeSnapshot(magic, i.points, codec)
}

// Decode restores an index written by Encode.
func Decode[M metric.Element[M]](data []byte, codec metric.Codec[M]) (*Index[M], error) {
	points, err := index.DecodeSnapshot(magic, data, codec)
	if err != nil {
		return nil, err
	}
	return &Index[M]{points: points}, nil
}

var _ index.Index[metric.Float] = (*Index[metric.Float])(nil)
