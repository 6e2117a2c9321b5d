package vptree

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/metric-index/index"
	"github.com/viant/metric-index/index/linear"
	"github.com/viant/metric-index/metric"
)

type signed float64

func (s signed) Distance(other signed) float64 { return float64(s - other) }

func randomFloats(rng *rand.Rand, n int) []metric.Float {
	points := make([]metric.Float, n)
	for i := range points {
		points[i] = metric.Float(rng.Float64() * 100)
	}
	return points
}

func TestTree_RangeQuery(t *testing.T) {
	tree, err := New[metric.Float](1, 2, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Size())

	got, err := tree.RangeQuery(2.5, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []metric.Float{2, 3}, got)
	assert.Equal(t, []metric.Float{10, 2, 3, 1}, tree.Values())
}

func TestTree_Empty(t *testing.T) {
	tree, err := New[metric.Float]()
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Size())
	assert.Equal(t, 0, tree.Height())
	assert.Empty(t, tree.Values())

	got, err := tree.RangeQuery(1, 100)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTree_SingleElement(t *testing.T) {
	tree, err := New[metric.Float](7)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Size())

	got, err := tree.RangeQuery(7, 0)
	require.NoError(t, err)
	assert.Equal(t, []metric.Float{7}, got)

	got, err = tree.RangeQuery(7, -0.5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTree_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	points := randomFloats(rng, 1000)
	tree, err := NewFromSlice(points)
	require.NoError(t, err)
	oracle := linear.New(points...)

	for q := 0; q < 100; q++ {
		query := metric.Float(rng.Float64()*120 - 10)
		threshold := rng.Float64() * 15
		got, err := tree.RangeQuery(query, threshold)
		require.NoError(t, err)
		want, err := oracle.RangeQuery(query, threshold)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, got, "query %v threshold %v", query, threshold)
	}
}

func TestTree_MatchesLinearScan_Vectors(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	points := make([]metric.Vector, 400)
	for i := range points {
		points[i] = metric.Vector{rng.Float32(), rng.Float32(), rng.Float32()}
	}
	tree, err := NewFromSlice(points)
	require.NoError(t, err)
	oracle := linear.New(points...)

	for q := 0; q < 50; q++ {
		query := metric.Vector{rng.Float32(), rng.Float32(), rng.Float32()}
		threshold := rng.Float64() * 0.4
		got, err := tree.RangeQuery(query, threshold)
		require.NoError(t, err)
		want, err := oracle.RangeQuery(query, threshold)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, got)
	}
}

func TestTree_InsertAll(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tree, err := New[metric.Float]()
	require.NoError(t, err)
	oracle := linear.New[metric.Float]()

	total := 0
	for round := 0; round < 5; round++ {
		batch := randomFloats(rng, 1+rng.Intn(50))
		total += len(batch)
		same, err := tree.InsertAll(batch...)
		require.NoError(t, err)
		assert.Same(t, tree, same)
		oracle.Insert(batch...)

		assert.Equal(t, total, tree.Size())
		assert.ElementsMatch(t, oracle.Values(), tree.Values())

		got, err := tree.RangeQuery(50, 10)
		require.NoError(t, err)
		want, err := oracle.RangeQuery(50, 10)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, got)
	}
}

func TestTree_RebuildFromValues(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	tree, err := NewFromSlice(randomFloats(rng, 300))
	require.NoError(t, err)

	rebuilt, err := NewFromSlice(tree.Values())
	require.NoError(t, err)
	assert.Equal(t, tree.Size(), rebuilt.Size())
	assert.ElementsMatch(t, tree.Values(), rebuilt.Values())

	for q := 0; q < 30; q++ {
		query := metric.Float(rng.Float64() * 100)
		threshold := rng.Float64() * 20
		a, err := tree.RangeQuery(query, threshold)
		require.NoError(t, err)
		b, err := rebuilt.RangeQuery(query, threshold)
		require.NoError(t, err)
		assert.ElementsMatch(t, a, b)
	}
}

func TestTree_DoesNotReorderInput(t *testing.T) {
	points := []metric.Float{9, 4, 7, 1, 8, 2}
	before := append([]metric.Float(nil), points...)
	tree, err := NewFromSlice(points)
	require.NoError(t, err)
	assert.Equal(t, before, points)

	extra := []metric.Float{5, 3}
	_, err = tree.InsertAll(extra...)
	require.NoError(t, err)
	assert.Equal(t, []metric.Float{5, 3}, extra)
}

func TestTree_Balanced(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tree, err := NewFromSlice(randomFloats(rng, 1023))
	require.NoError(t, err)
	assert.Equal(t, 1023, tree.Size())
	assert.Equal(t, 10, tree.Height())
}

// A right-hand element exactly mu away from its vantage point is skipped when
// d+threshold == mu, since the right branch requires d+threshold > mu.
func TestTree_RangeQuery_MuBoundary(t *testing.T) {
	// vantage point 5; 2, 8, 2 all lie at distance 3, so mu == 3 and the
	// last 2 lands in the right subtree
	tree, err := New[metric.Float](2, 8, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []metric.Float{5, 8, 2, 2}, tree.Values())

	got, err := tree.RangeQuery(3.5, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []metric.Float{5, 2}, got)

	want, err := linear.New[metric.Float](2, 8, 2, 5).RangeQuery(3.5, 1.5)
	require.NoError(t, err)
	assert.Len(t, want, 3)

	got, err = tree.RangeQuery(3.5, 1.6)
	require.NoError(t, err)
	assert.Equal(t, []metric.Float{5, 2, 2}, got)
}

func TestTree_InvalidDistance(t *testing.T) {
	_, err := New[signed](1, 5, 3)
	assert.ErrorIs(t, err, metric.ErrInvalidDistance)

	tree, err := New[signed](1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []signed{5, 2, 1}, tree.Values())

	_, err = tree.InsertAll(0)
	assert.ErrorIs(t, err, metric.ErrInvalidDistance)
	assert.Equal(t, 3, tree.Size())
	assert.Equal(t, []signed{5, 2, 1}, tree.Values())

	_, err = tree.RangeQuery(3, 1)
	assert.ErrorIs(t, err, metric.ErrInvalidDistance)
}

func TestTree_EncodeDecode(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	tree, err := NewFromSlice(randomFloats(rng, 64))
	require.NoError(t, err)

	data, err := tree.Encode(metric.FloatCodec{})
	require.NoError(t, err)

	restored, err := Decode[metric.Float](data, metric.FloatCodec{})
	require.NoError(t, err)
	assert.Equal(t, tree.Size(), restored.Size())
	assert.ElementsMatch(t, tree.Values(), restored.Values())

	_, err = Decode[metric.Float](data[:7], metric.FloatCodec{})
	assert.ErrorIs(t, err, index.ErrCorruptSnapshot)
}

func TestTree_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewFromSlice([]metric.Float{1, 2, 3}, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "vptree built")
	assert.Contains(t, buf.String(), "size=3")
}
