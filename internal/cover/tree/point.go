package tree

// Point represents a vector in the cover tree.
type Point struct {
	index  int32
	Vector []float32
}

// NewPoint constructs a point for the given vector. The point receives its
// index on Insert.
func NewPoint(vector ...float32) *Point {
	return &Point{Vector: vector, index: -1}
}

// Index returns the insertion index, or -1 for a point that was never
// inserted.
func (p *Point) Index() int32 {
	if p == nil {
		return -1
	}
	return p.index
}

// scale returns the largest absolute coordinate.
func (p *Point) scale() float32 {
	var m float32
	for _, v := range p.Vector {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}
