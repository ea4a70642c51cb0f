package knn

import (
	"github.com/rs/zerolog"
	"github.com/viant/knn/index"
	"github.com/viant/knn/vector"
)

// DefaultNeighbors is the neighbor count used when none is configured.
const DefaultNeighbors = 5

type options struct {
	neighbors int
	metric    vector.Metric
	kind      index.Kind
	logger    zerolog.Logger
}

func defaultOptions() options {
	return options{
		neighbors: DefaultNeighbors,
		metric:    vector.Euclidean,
		kind:      index.KindAuto,
		logger:    zerolog.Nop(),
	}
}

// Option configures NearestNeighbors.
type Option func(*options)

// WithNeighbors sets the default neighbor count k. Fit rejects k < 1.
func WithNeighbors(k int) Option {
	return func(o *options) { o.neighbors = k }
}

// WithMetric sets the distance metric. Names accepted by
// vector.ParseMetric, such as "l2", work too.
func WithMetric(m vector.Metric) Option {
	return func(o *options) { o.metric = m }
}

// WithIndex selects the index implementation; names are resolved with
// index.ParseKind at Fit.
func WithIndex(kind index.Kind) Option {
	return func(o *options) { o.kind = kind }
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
