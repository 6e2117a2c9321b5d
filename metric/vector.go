package metric

import (
	"math"

	"github.com/viant/vec/search"
)

// Vector is a point in Euclidean space.
type Vector []float32

// Distance returns the Euclidean (L2) distance. Vectors of different
// dimensionality are outside the domain; the result is NaN so that Distance
// rejects the pair.
func (v Vector) Distance(other Vector) float64 {
	if len(v) != len(other) {
		return math.NaN()
	}
	return float64(search.Float32s(v).EuclideanDistance([]float32(other)))
}

// Magnitude returns the L2 norm of v.
func (v Vector) Magnitude() float32 {
	return search.Float32s(v).Magnitude()
}

// CosineDistance returns 1 - cosine similarity. It is not a metric (the
// triangle inequality does not hold) and is provided for scoring only.
func (v Vector) CosineDistance(other Vector) float64 {
	if len(v) != len(other) {
		return math.NaN()
	}
	if v.Magnitude() == 0 || other.Magnitude() == 0 {
		return math.NaN()
	}
	return float64(search.Float32s(v).CosineDistance([]float32(other)))
}
