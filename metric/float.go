package metric

import "math"

// Float is a point on the real line; distance is the absolute difference.
type Float float64

// Distance returns |f - other|.
func (f Float) Distance(other Float) float64 {
	return math.Abs(float64(f) - float64(other))
}
