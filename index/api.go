package index

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/knn/vector"
)

// Index defines a nearest-neighbor index with basic lifecycle methods.
type Index interface {
	// Build constructs the index from the given points. The position of a
	// point in the slice is its index in query results.
	Build(points vector.Points) error

	// Query runs a kNN search against the index and returns exactly k
	// neighbors ordered by ascending distance, ties by ascending index.
	Query(query vector.Point, k int) ([]Neighbor, error)

	// Len returns the number of indexed points.
	Len() int
}

// Neighbor is a single kNN match.
type Neighbor struct {
	Index    int
	Distance float64
}

var (
	// ErrInvalidK is returned when k is smaller than one.
	ErrInvalidK = errors.New("index: k must be positive")
	// ErrTooFewPoints is returned when k exceeds the number of points.
	ErrTooFewPoints = errors.New("index: k exceeds number of points")
	// ErrUnsupportedMetric is returned when an index kind cannot use a metric.
	ErrUnsupportedMetric = errors.New("index: unsupported metric")
	// ErrNotBuilt is returned by Query before Build.
	ErrNotBuilt = errors.New("index: not built")
	// ErrEmpty aliases vector.ErrEmpty.
	ErrEmpty = vector.ErrEmpty
	// ErrDimension aliases vector.ErrDimension.
	ErrDimension = vector.ErrDimension
)

// Kind names an index implementation.
type Kind string

const (
	// KindAuto picks cover for Euclidean, vptree for the other metric-space
	// metrics and brute force for cosine.
	KindAuto       Kind = "auto"
	KindBruteForce Kind = "brute"
	KindCover      Kind = "cover"
	KindVPTree     Kind = "vptree"
	KindSQL        Kind = "sql"
)

// ParseKind resolves an index kind name.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindAuto, KindBruteForce, KindCover, KindVPTree, KindSQL:
		return k, nil
	case "":
		return KindAuto, nil
	case "bruteforce", "brute_force":
		return KindBruteForce, nil
	}
	return "", fmt.Errorf("index: unknown kind %q", name)
}

// CheckK validates k against the number of indexed points.
func CheckK(k, n int) error {
	if k < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if k > n {
		return fmt.Errorf("%w: k=%d, points=%d", ErrTooFewPoints, k, n)
	}
	return nil
}

// Sort orders neighbors by ascending distance, ties by ascending index.
func Sort(neighbors []Neighbor) {
	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Distance != neighbors[b].Distance {
			return neighbors[a].Distance < neighbors[b].Distance
		}
		return neighbors[a].Index < neighbors[b].Index
	})
}
