package metric

import (
	"errors"
	"fmt"
	"math"
)

// Element is implemented by any domain with a distance function that is
// non-negative, symmetric and satisfies the triangle inequality.
//
// Indexes assume these properties and never verify them, apart from the
// finiteness and sign check done by Distance.
type Element[M any] interface {
	Distance(other M) float64
}

// ErrInvalidDistance is matched (via errors.Is) by every InvalidDistanceError.
var ErrInvalidDistance = errors.New("metric: invalid distance")

// InvalidDistanceError reports a NaN, infinite or negative distance returned
// by an Element implementation.
type InvalidDistanceError struct {
	Value float64
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("metric: invalid distance %v", e.Value)
}

// Is reports whether target is ErrInvalidDistance.
func (e *InvalidDistanceError) Is(target error) bool { return target == ErrInvalidDistance }

// Distance returns a.Distance(b), or an InvalidDistanceError when the metric
// breaks its contract.
func Distance[M Element[M]](a, b M) (float64, error) {
	d := a.Distance(b)
	if err := Check(d); err != nil {
		return 0, err
	}
	return d, nil
}

// Check validates a raw distance value.
func Check(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return &InvalidDistanceError{Value: d}
	}
	return nil
}
