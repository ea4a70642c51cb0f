package bruteforce

import (
	"fmt"

	"github.com/viant/knn/index"
	"github.com/viant/knn/vector"
)

// Index is a brute-force kNN index.
type Index struct {
	metric vector.Metric
	points vector.Points
}

// New creates an index for the given metric; an empty metric means Euclidean.
func New(metric vector.Metric) *Index {
	if metric == "" {
		metric = vector.Euclidean
	}
	return &Index{metric: metric}
}

// Build validates and stores the points.
func (i *Index) Build(points vector.Points) error {
	if !i.metric.Valid() {
		return fmt.Errorf("bruteforce: %w: %q", index.ErrUnsupportedMetric, string(i.metric))
	}
	if err := points.Validate(); err != nil {
		return fmt.Errorf("bruteforce: %w", err)
	}
	i.points = append(vector.Points(nil), points...)
	return nil
}

// Len returns the number of indexed points.
func (i *Index) Len() int { return len(i.points) }

// Query returns the k nearest points by scanning the whole set.
func (i *Index) Query(query vector.Point, k int) ([]index.Neighbor, error) {
	if len(i.points) == 0 {
		return nil, fmt.Errorf("bruteforce: %w", index.ErrNotBuilt)
	}
	if err := i.points.CheckQuery(query); err != nil {
		return nil, fmt.Errorf("bruteforce: %w", err)
	}
	if err := index.CheckK(k, len(i.points)); err != nil {
		return nil, fmt.Errorf("bruteforce: %w", err)
	}
	scored := make([]index.Neighbor, len(i.points))
	for j, p := range i.points {
		d, err := i.metric.Distance(query, p)
		if err != nil {
			return nil, fmt.Errorf("bruteforce: point %d: %w", j, err)
		}
		scored[j] = index.Neighbor{Index: j, Distance: d}
	}
	index.Sort(scored)
	return scored[:k], nil
}

var _ index.Index = (*Index)(nil)
