package cover

import "github.com/viant/knn/internal/cover/tree"

// BoundStrategy selects the pruning radius used by the tree.
type BoundStrategy = tree.BoundStrategy

// DistanceFunction names a tree distance metric.
type DistanceFunction = tree.DistanceFunction

const (
	BoundPerNode = tree.BoundPerNode
	BoundLevel   = tree.BoundLevel

	DistanceFunctionEuclidean = tree.DistanceFunctionEuclidean
)

// SearchStrategy selects the tree traversal.
type SearchStrategy int

const (
	// SearchDepthFirst visits children nearest-first, recursively.
	SearchDepthFirst SearchStrategy = iota
	// SearchBestFirst expands nodes from a priority queue keyed by lower bound.
	SearchBestFirst
)

const defaultBase float32 = 1.3

type options struct {
	base     float32
	bound    BoundStrategy
	distance DistanceFunction
	search   SearchStrategy
}

// Option configures an Index.
type Option func(*options)

// WithBase sets the cover tree base; values <= 1 are ignored.
func WithBase(base float32) Option {
	return func(o *options) {
		if base > 1 {
			o.base = base
		}
	}
}

// WithBoundStrategy sets the pruning strategy.
func WithBoundStrategy(s BoundStrategy) Option {
	return func(o *options) { o.bound = s }
}

// WithDistance sets the tree distance metric.
func WithDistance(d DistanceFunction) Option {
	return func(o *options) { o.distance = d }
}

// WithSearch sets the traversal strategy.
func WithSearch(s SearchStrategy) Option {
	return func(o *options) { o.search = s }
}
