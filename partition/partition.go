// Package partition implements the median selection primitive used to build
// balanced metric trees.
package partition

import (
	"fmt"

	"github.com/viant/metric-index/metric"
)

// Partitioner reorders a range of elements in place around the median
// distance to a reference element. It keeps one scratch buffer of distances
// that is reused by every Select call on the same element sequence.
//
// A Partitioner is not safe for concurrent use.
type Partitioner[M metric.Element[M]] struct {
	dists []float64
}

// New returns a Partitioner sized for sequences of up to capacity elements.
func New[M metric.Element[M]](capacity int) *Partitioner[M] {
	return &Partitioner[M]{dists: make([]float64, capacity)}
}

// Select partitions points[i..j] by distance to ref and returns the split
// index p = i + (j-i)/2. After the call every element in points[i..p] is no
// farther from ref than points[p], and every element in points[p+1..j] is no
// closer. Equal input order always produces the same arrangement.
func (s *Partitioner[M]) Select(ref M, points []M, i, j int) (int, error) {
	if i < 0 || j >= len(points) || i > j {
		return 0, fmt.Errorf("partition: invalid range [%d, %d] over %d elements", i, j, len(points))
	}
	if len(s.dists) < len(points) {
		s.dists = make([]float64, len(points))
	}
	for k := i; k <= j; k++ {
		d, err := metric.Distance(ref, points[k])
		if err != nil {
			return 0, err
		}
		s.dists[k] = d
	}
	mid := i + (j-i)/2
	lo, hi := i, j
	for lo < hi {
		lt, gt := s.partition(points, lo, hi, s.pivot(lo, hi))
		switch {
		case mid < lt:
			hi = lt - 1
		case mid > gt:
			lo = gt + 1
		default:
			return mid, nil
		}
	}
	return mid, nil
}

// pivot returns the median of the first, middle and last distance in [lo, hi].
func (s *Partitioner[M]) pivot(lo, hi int) float64 {
	a, b, c := s.dists[lo], s.dists[lo+(hi-lo)/2], s.dists[hi]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}
	return b
}

// partition performs a three-way split of [lo, hi] so that [lo, lt) is
// closer than pivot, [lt, gt] equals pivot and (gt, hi] is farther.
func (s *Partitioner[M]) partition(points []M, lo, hi int, pivot float64) (lt, gt int) {
	lt, k, gt := lo, lo, hi
	for k <= gt {
		switch d := s.dists[k]; {
		case d < pivot:
			s.swap(points, lt, k)
			lt++
			k++
		case d > pivot:
			s.swap(points, k, gt)
			gt--
		default:
			k++
		}
	}
	return lt, gt
}

func (s *Partitioner[M]) swap(points []M, a, b int) {
	points[a], points[b] = points[b], points[a]
	s.dists[a], s.dists[b] = s.dists[b], s.dists[a]
}
