package vector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when a point set holds no points.
	ErrEmpty = errors.New("vector: empty point set")
	// ErrDimension is returned when points do not share one dimensionality.
	ErrDimension = errors.New("vector: dimension mismatch")
)

// Point is a coordinate tuple.
type Point []float64

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p) }

// Float32s returns a float32 copy of the point.
func (p Point) Float32s() []float32 {
	out := make([]float32, len(p))
	for i, v := range p {
		out[i] = float32(v)
	}
	return out
}

// String formats the point as [x y ...] using the shortest representation
// of each coordinate.
func (p Point) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	for i, v := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// Points is an ordered point set. Position in the slice is the point index.
type Points []Point

// Dim returns the dimension of the first point, or 0 for an empty set.
func (s Points) Dim() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Validate checks that the set is non-empty and every point has the same,
// non-zero dimension.
func (s Points) Validate() error {
	if len(s) == 0 {
		return ErrEmpty
	}
	dim := len(s[0])
	if dim == 0 {
		return fmt.Errorf("%w: point 0 has no coordinates", ErrDimension)
	}
	for i := 1; i < len(s); i++ {
		if len(s[i]) != dim {
			return fmt.Errorf("%w: point %d has %d coordinates, want %d", ErrDimension, i, len(s[i]), dim)
		}
	}
	return nil
}

// CheckQuery verifies that query matches the set dimension.
func (s Points) CheckQuery(query Point) error {
	if dim := s.Dim(); len(query) != dim {
		return fmt.Errorf("%w: query has %d coordinates, want %d", ErrDimension, len(query), dim)
	}
	return nil
}

// Select returns the points at the given indices, in order.
func (s Points) Select(indices []int) Points {
	out := make(Points, len(indices))
	for i, idx := range indices {
		out[i] = s[idx]
	}
	return out
}

// Column returns coordinate d of every point.
func (s Points) Column(d int) []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p[d]
	}
	return out
}
