package vptree

import (
	"fmt"

	"github.com/viant/knn/index"
	"github.com/viant/knn/vector"
	"gonum.org/v1/gonum/spatial/vptree"
)

// DefaultEffort is the vantage point selection effort passed to gonum.
const DefaultEffort = 3

// Index is a kNN index over a gonum vptree.Tree.
type Index struct {
	metric vector.Metric
	effort int
	points vector.Points
	tree   *vptree.Tree
}

// New creates an index; an empty metric means Euclidean and effort < 0
// means DefaultEffort.
func New(metric vector.Metric, effort int) *Index {
	if metric == "" {
		metric = vector.Euclidean
	}
	if effort < 0 {
		effort = DefaultEffort
	}
	return &Index{metric: metric, effort: effort}
}

// item binds a point to its index and metric so it satisfies
// vptree.Comparable.
type item struct {
	index  int
	point  vector.Point
	metric vector.Metric
}

// Distance implements vptree.Comparable. Points share a validated
// dimension, so the metric cannot fail here.
func (it item) Distance(c vptree.Comparable) float64 {
	d, _ := it.metric.Distance(it.point, c.(item).point)
	return d
}

// Build constructs the vantage-point tree.
func (i *Index) Build(points vector.Points) error {
	if !i.metric.IsMetricSpace() {
		return fmt.Errorf("vptree: %w: %q", index.ErrUnsupportedMetric, string(i.metric))
	}
	if err := points.Validate(); err != nil {
		return fmt.Errorf("vptree: %w", err)
	}
	items := make([]vptree.Comparable, len(points))
	for j, p := range points {
		items[j] = item{index: j, point: p, metric: i.metric}
	}
	t, err := vptree.New(items, i.effort, nil)
	if err != nil {
		return fmt.Errorf("vptree: build: %w", err)
	}
	i.points = append(vector.Points(nil), points...)
	i.tree = t
	return nil
}

// Len returns the number of indexed points.
func (i *Index) Len() int { return len(i.points) }

// Query returns the k nearest points ordered by ascending distance.
func (i *Index) Query(query vector.Point, k int) ([]index.Neighbor, error) {
	if i.tree == nil {
		return nil, fmt.Errorf("vptree: %w", index.ErrNotBuilt)
	}
	if err := i.points.CheckQuery(query); err != nil {
		return nil, fmt.Errorf("vptree: %w", err)
	}
	if err := index.CheckK(k, len(i.points)); err != nil {
		return nil, fmt.Errorf("vptree: %w", err)
	}
	q := item{index: -1, point: query, metric: i.metric}
	keeper := vptree.NewNKeeper(k)
	i.tree.NearestSet(keeper, q)
	if len(keeper.Heap) != k {
		return nil, fmt.Errorf("vptree: found %d neighbors, want %d", len(keeper.Heap), k)
	}
	radius := 0.0
	for _, c := range keeper.Heap {
		radius = max(radius, c.Dist)
	}
	// NKeeper favours later finds on ties; collect every point at or
	// below the k-th distance and cut by (distance, index) instead.
	within := vptree.NewDistKeeper(radius)
	i.tree.NearestSet(within, q)
	out := make([]index.Neighbor, 0, len(within.Heap))
	for _, c := range within.Heap {
		it, ok := c.Comparable.(item)
		if !ok {
			continue // sentinel
		}
		out = append(out, index.Neighbor{Index: it.index, Distance: c.Dist})
	}
	if len(out) < k {
		return nil, fmt.Errorf("vptree: found %d neighbors, want %d", len(out), k)
	}
	index.Sort(out)
	return out[:k], nil
}

var _ index.Index = (*Index)(nil)
