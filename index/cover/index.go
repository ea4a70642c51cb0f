package cover

import (
	"fmt"

	"github.com/viant/knn/index"
	"github.com/viant/knn/internal/cover/tree"
	"github.com/viant/knn/vector"
)

// Index implements a kNN index on top of a cover tree.
type Index struct {
	opts   options
	metric vector.Metric
	points vector.Points
	tree   *tree.Tree
}

// New creates an index; by default it uses Euclidean distance, base 1.3,
// per-node bounds and depth-first search.
func New(opts ...Option) *Index {
	o := options{base: defaultBase, bound: BoundPerNode, distance: DistanceFunctionEuclidean}
	for _, opt := range opts {
		opt(&o)
	}
	return &Index{opts: o}
}

// DistanceFor maps a vector metric onto a tree distance function. Only
// Euclidean is supported; cosine breaks the triangle inequality that
// pruning relies on.
func DistanceFor(m vector.Metric) (DistanceFunction, error) {
	if m == vector.Euclidean || m == "" {
		return DistanceFunctionEuclidean, nil
	}
	return "", fmt.Errorf("cover: %w: %q", index.ErrUnsupportedMetric, string(m))
}

func metricFor(d DistanceFunction) (vector.Metric, error) {
	if d == DistanceFunctionEuclidean {
		return vector.Euclidean, nil
	}
	return "", fmt.Errorf("cover: %w: %q", index.ErrUnsupportedMetric, string(d))
}

// Build inserts the points into a fresh tree in slice order, so tree
// indices equal point indices.
func (i *Index) Build(points vector.Points) error {
	metric, err := metricFor(i.opts.distance)
	if err != nil {
		return err
	}
	if err := points.Validate(); err != nil {
		return fmt.Errorf("cover: %w", err)
	}
	t := tree.NewTree(i.opts.base, i.opts.distance)
	t.SetBoundStrategy(i.opts.bound)
	for _, p := range points {
		t.Insert(tree.NewPoint(p.Float32s()...))
	}
	i.metric = metric
	i.points = append(vector.Points(nil), points...)
	i.tree = t
	return nil
}

// Len returns the number of indexed points.
func (i *Index) Len() int { return len(i.points) }

// Query returns the k nearest points ordered by ascending distance. The
// tree searches in float32; every point within rounding distance of the
// k-th float32 candidate is rescored in float64 before the cut.
func (i *Index) Query(query vector.Point, k int) ([]index.Neighbor, error) {
	if i.tree == nil {
		return nil, fmt.Errorf("cover: %w", index.ErrNotBuilt)
	}
	if err := i.points.CheckQuery(query); err != nil {
		return nil, fmt.Errorf("cover: %w", err)
	}
	if err := index.CheckK(k, len(i.points)); err != nil {
		return nil, fmt.Errorf("cover: %w", err)
	}
	q := tree.NewPoint(query.Float32s()...)
	var found []*tree.Neighbor
	switch i.opts.search {
	case SearchBestFirst:
		found = i.tree.KNearestNeighborsBestFirst(q, k)
	default:
		found = i.tree.KNearestNeighbors(q, k)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("cover: found 0 neighbors, want %d", k)
	}
	band := i.tree.Within(q, found[len(found)-1].Distance)
	seen := make(map[int32]bool, len(band)+len(found))
	out := make([]index.Neighbor, 0, len(band)+len(found))
	for _, n := range append(band, found...) {
		idx := n.Point.Index()
		if seen[idx] {
			continue
		}
		seen[idx] = true
		d, err := i.metric.Distance(query, i.points[idx])
		if err != nil {
			return nil, fmt.Errorf("cover: point %d: %w", idx, err)
		}
		out = append(out, index.Neighbor{Index: int(idx), Distance: d})
	}
	if len(out) < k {
		return nil, fmt.Errorf("cover: found %d neighbors, want %d", len(out), k)
	}
	index.Sort(out)
	return out[:k], nil
}

var _ index.Index = (*Index)(nil)
