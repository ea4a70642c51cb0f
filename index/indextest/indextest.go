package indextest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/knn/index"
	"github.com/viant/knn/index/bruteforce"
	"github.com/viant/knn/vector"
	"gonum.org/v1/gonum/floats"
)

// Factory creates an empty index for the given metric.
type Factory func(t *testing.T, metric vector.Metric) index.Index

// Options tunes the suite per implementation.
type Options struct {
	// Metrics lists the metrics to run the random agreement check with.
	// Euclidean is used when empty.
	Metrics []vector.Metric
	// Delta is the allowed absolute distance error. 1e-9 when zero.
	Delta float64
}

// Sample returns the five demo points.
func Sample() vector.Points {
	return vector.Points{{1, 2}, {2, 3}, {3, 4}, {5, 5}, {8, 8}}
}

// RandomPoints returns n seeded random points in [0, 100)^dim.
func RandomPoints(seed int64, n, dim int) vector.Points {
	rng := rand.New(rand.NewSource(seed))
	out := make(vector.Points, n)
	for i := range out {
		p := make(vector.Point, dim)
		for d := range p {
			p[d] = rng.Float64() * 100
		}
		out[i] = p
	}
	return out
}

// CenteredPoints returns n seeded random points spread around the origin
// with mixed signs and norms between 0.1 and 100.
func CenteredPoints(seed int64, n, dim int) vector.Points {
	rng := rand.New(rand.NewSource(seed))
	out := make(vector.Points, n)
	for i := range out {
		p := make(vector.Point, dim)
		for d := range p {
			p[d] = rng.NormFloat64()
		}
		norm := floats.Norm(p, 2)
		scale := (0.1 + rng.Float64()*99.9) / norm
		floats.Scale(scale, p)
		out[i] = p
	}
	return out
}

// Run executes the conformance suite against indexes produced by factory.
func Run(t *testing.T, factory Factory, opts Options) {
	delta := opts.Delta
	if delta == 0 {
		delta = 1e-9
	}
	metrics := opts.Metrics
	if len(metrics) == 0 {
		metrics = []vector.Metric{vector.Euclidean}
	}

	t.Run("sample query", func(t *testing.T) {
		idx := factory(t, vector.Euclidean)
		require.NoError(t, idx.Build(Sample()))
		assert.Equal(t, 5, idx.Len())
		actual, err := idx.Query(vector.Point{3.5, 3.5}, 2)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assert.Equal(t, 2, actual[0].Index)
		assert.Equal(t, 3, actual[1].Index)
		assert.InDelta(t, math.Sqrt(0.5), actual[0].Distance, delta)
		assert.InDelta(t, math.Sqrt(4.5), actual[1].Distance, delta)
	})

	t.Run("every k", func(t *testing.T) {
		idx := factory(t, vector.Euclidean)
		points := Sample()
		require.NoError(t, idx.Build(points))
		for k := 1; k <= len(points); k++ {
			actual, err := idx.Query(vector.Point{3.5, 3.5}, k)
			require.NoError(t, err, "k=%d", k)
			require.Len(t, actual, k)
			for j := 1; j < len(actual); j++ {
				assert.LessOrEqual(t, actual[j-1].Distance, actual[j].Distance, "k=%d", k)
			}
		}
	})

	t.Run("existing point", func(t *testing.T) {
		idx := factory(t, vector.Euclidean)
		points := Sample()
		require.NoError(t, idx.Build(points))
		for i, p := range points {
			actual, err := idx.Query(p, 1)
			require.NoError(t, err)
			require.Len(t, actual, 1)
			assert.Equal(t, i, actual[0].Index)
			assert.InDelta(t, 0, actual[0].Distance, delta)
		}
	})

	t.Run("k bounds", func(t *testing.T) {
		idx := factory(t, vector.Euclidean)
		require.NoError(t, idx.Build(Sample()))
		_, err := idx.Query(vector.Point{3.5, 3.5}, 6)
		assert.ErrorIs(t, err, index.ErrTooFewPoints)
		_, err = idx.Query(vector.Point{3.5, 3.5}, 0)
		assert.ErrorIs(t, err, index.ErrInvalidK)
	})

	t.Run("dimension", func(t *testing.T) {
		idx := factory(t, vector.Euclidean)
		require.NoError(t, idx.Build(Sample()))
		_, err := idx.Query(vector.Point{3.5, 3.5, 1}, 1)
		assert.ErrorIs(t, err, index.ErrDimension)
		assert.ErrorIs(t, factory(t, vector.Euclidean).Build(vector.Points{{1, 2}, {1}}), index.ErrDimension)
		assert.ErrorIs(t, factory(t, vector.Euclidean).Build(nil), index.ErrEmpty)
	})

	t.Run("not built", func(t *testing.T) {
		_, err := factory(t, vector.Euclidean).Query(vector.Point{1, 1}, 1)
		assert.ErrorIs(t, err, index.ErrNotBuilt)
	})

	t.Run("ties", func(t *testing.T) {
		idx := factory(t, vector.Euclidean)
		require.NoError(t, idx.Build(vector.Points{{5, 0}, {0, 1}, {1, 0}, {0, -1}, {-1, 0}}))
		actual, err := idx.Query(vector.Point{0, 0}, 3)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{actual[0].Index, actual[1].Index, actual[2].Index})
	})

	fixtures := []struct {
		name    string
		points  vector.Points
		queries vector.Points
	}{
		{name: "positive", points: RandomPoints(7, 200, 3), queries: RandomPoints(11, 20, 3)},
		{name: "centered", points: CenteredPoints(7, 200, 3), queries: CenteredPoints(11, 20, 3)},
	}
	for _, metric := range metrics {
		for _, fixture := range fixtures {
			points, queries := fixture.points, fixture.queries
			t.Run("agrees with brute force "+string(metric)+" "+fixture.name, func(t *testing.T) {
				idx := factory(t, metric)
				require.NoError(t, idx.Build(points))
				baseline := bruteforce.New(metric)
				require.NoError(t, baseline.Build(points))
				for _, q := range queries {
					expect, err := baseline.Query(q, 10)
					require.NoError(t, err)
					actual, err := idx.Query(q, 10)
					require.NoError(t, err)
					require.Len(t, actual, len(expect))
					for j := range expect {
						assert.Equal(t, expect[j].Index, actual[j].Index)
						assert.InDelta(t, expect[j].Distance, actual[j].Distance, delta)
					}
				}
			})
		}
	}
}
