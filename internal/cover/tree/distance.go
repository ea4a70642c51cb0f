package tree

import "github.com/viant/vec/search"

// DistanceFunction enumerates supported distance metrics for the cover tree.
type DistanceFunction string

// DistanceFunctionEuclidean is the only metric the tree prunes with; pruning
// relies on the triangle inequality.
const DistanceFunctionEuclidean DistanceFunction = "euclidean"

// DistanceFunc computes the distance between two points.
type DistanceFunc func(p1, p2 *Point) float32

// Function resolves the callable distance implementation, or nil for an
// unknown name.
func (d DistanceFunction) Function() DistanceFunc {
	if d == DistanceFunctionEuclidean {
		return EuclideanDistance
	}
	return nil
}

// EuclideanDistance returns the Euclidean distance between two points.
func EuclideanDistance(p1, p2 *Point) float32 {
	return search.Float32s(p1.Vector).EuclideanDistance(p2.Vector)
}
