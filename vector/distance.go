package vector

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrZeroVector is returned by cosine distance for zero-magnitude input.
	ErrZeroVector = errors.New("vector: zero-magnitude vector")
	// ErrUnknownMetric is returned by ParseMetric and Distance for
	// unsupported metric names.
	ErrUnknownMetric = errors.New("vector: unknown metric")
)

// Metric names a distance function.
type Metric string

const (
	Euclidean Metric = "euclidean"
	Manhattan Metric = "manhattan"
	Chebyshev Metric = "chebyshev"
	Cosine    Metric = "cosine"
)

// ParseMetric resolves a metric name or one of its aliases.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean", "l2":
		return Euclidean, nil
	case "manhattan", "l1", "cityblock":
		return Manhattan, nil
	case "chebyshev", "linf":
		return Chebyshev, nil
	case "cosine", "cos":
		return Cosine, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	switch m {
	case Euclidean, Manhattan, Chebyshev, Cosine:
		return true
	}
	return false
}

// IsMetricSpace reports whether m satisfies the triangle inequality, which
// tree indexes rely on for pruning.
func (m Metric) IsMetricSpace() bool {
	return m == Euclidean || m == Manhattan || m == Chebyshev
}

// Distance computes the distance between a and b under m.
func (m Metric) Distance(a, b Point) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimension, len(a), len(b))
	}
	switch m {
	case Euclidean:
		return L2Distance(a, b)
	case Manhattan:
		return floats.Distance(a, b, 1), nil
	case Chebyshev:
		return floats.Distance(a, b, math.Inf(1)), nil
	case Cosine:
		sim, err := CosineSimilarity(a, b)
		if err != nil {
			return 0, err
		}
		return 1 - sim, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, string(m))
}

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns an error if the vectors have different lengths or if either vector
// has zero magnitude.
func CosineSimilarity(a, b Point) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimension, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}
	return floats.Dot(a, b) / (na * nb), nil
}

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b Point) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimension, len(a), len(b))
	}
	return floats.Distance(a, b, 2), nil
}
