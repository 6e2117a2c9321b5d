package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/metric-index/metric"
	sqlite "modernc.org/sqlite"
)

// RegisterMetricFunctions registers metric_l2, metric_cosine and
// metric_hamming with the driver so they are available on connections opened
// after this call. Existing open connections will not see new functions.
//
//	metric_l2(a BLOB, b BLOB)        Euclidean distance of float32 vectors
//	metric_cosine(a BLOB, b BLOB)    1 - cosine similarity of float32 vectors
//	metric_hamming(a INTEGER, b INTEGER) differing bits of 64-bit hashes
//
// Registration runs once per process; later calls return the first result.
func RegisterMetricFunctions() error {
	registerOnce.Do(func() {
		registerErr = registerMetricFunctions()
	})
	return registerErr
}

var (
	registerOnce sync.Once
	registerErr  error
)

func registerMetricFunctions() error {
	functions := []struct {
		name string
		impl func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error)
	}{
		{"metric_l2", vectorFunc("metric_l2", metric.Vector.Distance)},
		{"metric_cosine", vectorFunc("metric_cosine", metric.Vector.CosineDistance)},
		{"metric_hamming", hammingImpl},
	}
	for _, fn := range functions {
		if err := sqlite.RegisterDeterministicScalarFunction(fn.name, 2, fn.impl); err != nil {
			return fmt.Errorf("engine: register %s: %w", fn.name, err)
		}
	}
	return nil
}

func asVector(arg driver.Value) (metric.Vector, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return metric.VectorCodec{}.Decode(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for vector; want BLOB", arg)
	}
}

func vectorFunc(name string, distance func(a, b metric.Vector) float64) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
		}
		a, err := asVector(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asVector(args[1])
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		d := distance(a, b)
		if err := metric.Check(d); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return d, nil
	}
}

func hammingImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("metric_hamming: expected 2 arguments, got %d", len(args))
	}
	var hashes [2]metric.Hash
	for i, arg := range args {
		switch v := arg.(type) {
		case nil:
			return nil, nil
		case int64:
			hashes[i] = metric.Hash(uint64(v))
		default:
			return nil, fmt.Errorf("metric_hamming: unsupported argument type %T; want INTEGER", arg)
		}
	}
	return int64(hashes[0].Distance(hashes[1])), nil
}
