package tree

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePoints() [][]float32 {
	return [][]float32{{1, 2}, {2, 3}, {3, 4}, {5, 5}, {8, 8}}
}

func buildTree(vectors [][]float32, distance DistanceFunction) *Tree {
	t := NewTree(0, distance)
	for _, v := range vectors {
		t.Insert(NewPoint(v...))
	}
	return t
}

func indices(neighbors []*Neighbor) []int32 {
	out := make([]int32, len(neighbors))
	for i, n := range neighbors {
		out[i] = n.Point.Index()
	}
	return out
}

func TestTree_KNearestNeighbors(t *testing.T) {
	tree := buildTree(samplePoints(), DistanceFunctionEuclidean)
	require.Equal(t, 5, tree.Len())
	query := NewPoint(3.5, 3.5)

	for name, search := range map[string]func(*Point, int) []*Neighbor{
		"depth-first": tree.KNearestNeighbors,
		"best-first":  tree.KNearestNeighborsBestFirst,
	} {
		actual := search(query, 2)
		require.Len(t, actual, 2, name)
		assert.Equal(t, []int32{2, 3}, indices(actual), name)
		assert.InDelta(t, math.Sqrt(0.5), float64(actual[0].Distance), 1e-6, name)
		assert.InDelta(t, math.Sqrt(4.5), float64(actual[1].Distance), 1e-6, name)
	}
}

func TestTree_Ties(t *testing.T) {
	tree := buildTree([][]float32{{5, 0}, {0, 1}, {1, 0}, {0, -1}, {-1, 0}}, DistanceFunctionEuclidean)
	assert.Equal(t, []int32{1, 2, 3}, indices(tree.KNearestNeighbors(NewPoint(0, 0), 3)))
	assert.Equal(t, []int32{1, 2, 3}, indices(tree.KNearestNeighborsBestFirst(NewPoint(0, 0), 3)))
}

func TestTree_DuplicatePoints(t *testing.T) {
	tree := buildTree([][]float32{{1, 1}, {1, 1}, {1, 1}, {2, 2}}, DistanceFunctionEuclidean)
	assert.Equal(t, []int32{0, 1, 2}, indices(tree.KNearestNeighbors(NewPoint(1, 1), 3)))
}

func TestTree_RandomAgreesWithScan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	vectors := make([][]float32, 300)
	for i := range vectors {
		vectors[i] = []float32{rng.Float32() * 50, rng.Float32() * 50, rng.Float32() * 50}
	}
	tree := buildTree(vectors, DistanceFunctionEuclidean)
	for q := 0; q < 25; q++ {
		query := NewPoint(rng.Float32()*50, rng.Float32()*50, rng.Float32()*50)
		expect := make([]int32, len(vectors))
		dists := make([]float32, len(vectors))
		for i, v := range vectors {
			expect[i] = int32(i)
			dists[i] = EuclideanDistance(query, &Point{Vector: v})
		}
		sort.Slice(expect, func(a, b int) bool {
			if dists[expect[a]] != dists[expect[b]] {
				return dists[expect[a]] < dists[expect[b]]
			}
			return expect[a] < expect[b]
		})
		assert.Equal(t, expect[:7], indices(tree.KNearestNeighbors(query, 7)))
		assert.Equal(t, expect[:7], indices(tree.KNearestNeighborsBestFirst(query, 7)))
	}
}

func TestTree_BoundLevel(t *testing.T) {
	tree := buildTree(samplePoints(), DistanceFunctionEuclidean)
	tree.SetBoundStrategy(BoundLevel)
	actual := tree.KNearestNeighbors(NewPoint(3.5, 3.5), 3)
	require.Len(t, actual, 3)
	for i := 1; i < len(actual); i++ {
		assert.LessOrEqual(t, actual[i-1].Distance, actual[i].Distance)
	}
}

func TestTree_EdgeCases(t *testing.T) {
	empty := NewTree(2, DistanceFunctionEuclidean)
	assert.Nil(t, empty.KNearestNeighbors(NewPoint(1, 1), 1))

	tree := buildTree(samplePoints(), DistanceFunction("bogus"))
	assert.Nil(t, tree.KNearestNeighbors(NewPoint(1, 1), 0))
	assert.Len(t, tree.KNearestNeighbors(NewPoint(1, 1), 10), 5)

	assert.Equal(t, int32(-1), NewPoint(1).Index())
}

func TestTree_Within(t *testing.T) {
	tree := buildTree(samplePoints(), DistanceFunctionEuclidean)
	actual := tree.Within(NewPoint(3.5, 3.5), 2.2)
	assert.Equal(t, []int32{2, 1, 3}, indices(actual))
	assert.Empty(t, tree.Within(NewPoint(100, 100), 1))
	assert.Nil(t, NewTree(0, DistanceFunctionEuclidean).Within(NewPoint(1, 1), 1))
}

func TestTree_WithinRoundingBand(t *testing.T) {
	// Both coordinates round to the same float32, so the tree cannot order
	// them; Within must return both for the caller to rescore.
	tree := buildTree([][]float32{{float32(1e6 + 0.02)}, {float32(1e6 + 0.01)}, {1e6 + 50}}, DistanceFunctionEuclidean)
	query := NewPoint(1e6)
	nearest := tree.KNearestNeighbors(query, 1)
	require.Len(t, nearest, 1)
	band := tree.Within(query, nearest[0].Distance)
	assert.Equal(t, []int32{0, 1}, indices(band))
}
