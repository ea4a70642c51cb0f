package knn

import (
	"errors"
	"fmt"
	"io"

	"github.com/viant/knn/index"
	"github.com/viant/knn/index/bruteforce"
	"github.com/viant/knn/index/cover"
	"github.com/viant/knn/index/sqlindex"
	"github.com/viant/knn/index/vptree"
	"github.com/viant/knn/vector"
)

// ErrNotFitted is returned by queries issued before Fit.
var ErrNotFitted = errors.New("knn: not fitted")

// NearestNeighbors finds the k closest points of a fitted set.
type NearestNeighbors struct {
	opts   options
	points vector.Points
	index  index.Index
}

// Result holds the neighbors of one query, nearest first.
type Result struct {
	Indices   []int
	Distances []float64
}

// Len returns the number of neighbors.
func (r *Result) Len() int { return len(r.Indices) }

// Neighbors resolves the neighbor coordinates in points.
func (r *Result) Neighbors(points vector.Points) vector.Points {
	return points.Select(r.Indices)
}

// New creates an unfitted estimator.
func New(opts ...Option) *NearestNeighbors {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &NearestNeighbors{opts: o}
}

// K returns the configured neighbor count.
func (n *NearestNeighbors) K() int { return n.opts.neighbors }

// Metric returns the configured metric.
func (n *NearestNeighbors) Metric() vector.Metric { return n.opts.metric }

// Points returns the fitted point set.
func (n *NearestNeighbors) Points() vector.Points { return n.points }

// Fit builds the index over points. It fails when the set is empty or
// ragged, or when k is not in [1, len(points)].
func (n *NearestNeighbors) Fit(points vector.Points) error {
	metric, err := vector.ParseMetric(string(n.opts.metric))
	if err != nil {
		return fmt.Errorf("knn: %w", err)
	}
	kind, err := index.ParseKind(string(n.opts.kind))
	if err != nil {
		return fmt.Errorf("knn: %w", err)
	}
	n.opts.metric, n.opts.kind = metric, resolveKind(kind, metric)
	if err := points.Validate(); err != nil {
		return fmt.Errorf("knn: %w", err)
	}
	if err := index.CheckK(n.opts.neighbors, len(points)); err != nil {
		return fmt.Errorf("knn: %w", err)
	}
	idx, err := newIndex(n.opts.kind, n.opts.metric)
	if err != nil {
		return fmt.Errorf("knn: %w", err)
	}
	if err := idx.Build(points); err != nil {
		closeIndex(idx)
		return fmt.Errorf("knn: %w", err)
	}
	if err := n.Close(); err != nil {
		closeIndex(idx)
		return err
	}
	n.points = append(vector.Points(nil), points...)
	n.index = idx
	n.opts.logger.Debug().
		Str("index", string(n.opts.kind)).
		Str("metric", string(n.opts.metric)).
		Int("points", len(points)).
		Int("dim", points.Dim()).
		Int("k", n.opts.neighbors).
		Msg("fitted")
	return nil
}

// KNeighbors returns the configured number of neighbors of query.
func (n *NearestNeighbors) KNeighbors(query vector.Point) (*Result, error) {
	return n.KNeighborsN(query, n.opts.neighbors)
}

// KNeighborsN returns the k nearest neighbors of query, overriding the
// configured count. k larger than the fitted set is an error.
func (n *NearestNeighbors) KNeighborsN(query vector.Point, k int) (*Result, error) {
	if n.index == nil {
		return nil, ErrNotFitted
	}
	found, err := n.index.Query(query, k)
	if err != nil {
		return nil, fmt.Errorf("knn: %w", err)
	}
	result := &Result{Indices: make([]int, len(found)), Distances: make([]float64, len(found))}
	for i, nb := range found {
		result.Indices[i] = nb.Index
		result.Distances[i] = nb.Distance
	}
	n.opts.logger.Debug().
		Stringer("query", query).
		Ints("indices", result.Indices).
		Floats64("distances", result.Distances).
		Msg("kneighbors")
	return result, nil
}

// Close releases resources held by the index, if any.
func (n *NearestNeighbors) Close() error {
	if n.index == nil {
		return nil
	}
	c, ok := n.index.(io.Closer)
	n.index = nil
	if !ok {
		return nil
	}
	return c.Close()
}

// resolveKind maps KindAuto onto a concrete kind for metric. Tree indexes
// prune with the triangle inequality, so cosine falls back to a scan.
func resolveKind(kind index.Kind, metric vector.Metric) index.Kind {
	if kind != index.KindAuto && kind != "" {
		return kind
	}
	switch {
	case metric == vector.Euclidean:
		return index.KindCover
	case metric.IsMetricSpace():
		return index.KindVPTree
	}
	return index.KindBruteForce
}

func newIndex(kind index.Kind, metric vector.Metric) (index.Index, error) {
	switch kind {
	case index.KindBruteForce:
		return bruteforce.New(metric), nil
	case index.KindCover:
		d, err := cover.DistanceFor(metric)
		if err != nil {
			return nil, err
		}
		return cover.New(cover.WithDistance(d)), nil
	case index.KindVPTree:
		return vptree.New(metric, vptree.DefaultEffort), nil
	case index.KindSQL:
		return sqlindex.New(metric), nil
	}
	return nil, fmt.Errorf("unknown index kind %q", string(kind))
}

func closeIndex(idx index.Index) {
	if c, ok := idx.(io.Closer); ok {
		_ = c.Close()
	}
}
