package index

import "errors"

var (
	// ErrEmptyIndex is returned when a query requires at least one indexed element.
	ErrEmptyIndex = errors.New("index: empty index")
	// ErrCorruptSnapshot is returned when snapshot bytes cannot be decoded.
	ErrCorruptSnapshot = errors.New("index: corrupt snapshot")
)

// Index defines a metric range-search index over elements of type M.
type Index[M any] interface {
	// RangeQuery returns every indexed element whose distance to query is
	// at most radius. A negative radius yields no elements.
	RangeQuery(query M, radius float64) ([]M, error)

	// Values returns every indexed element exactly once.
	Values() []M

	// Size returns the number of indexed elements.
	Size() int
}
