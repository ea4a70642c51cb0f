package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodePoint encodes a point into a BLOB representation suitable for
// storage in SQLite. The encoding is a little-endian sequence of IEEE 754
// float64 values without a length prefix; the dimension is derived from the
// BLOB size on decode.
func EncodePoint(p Point) []byte {
	if len(p) == 0 {
		return nil
	}
	b := make([]byte, len(p)*8)
	for i, v := range p {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b
}

// DecodePoint decodes a BLOB produced by EncodePoint.
func DecodePoint(b []byte) (Point, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("vector: invalid point blob length %d (not multiple of 8)", len(b))
	}
	p := make(Point, len(b)/8)
	for i := range p {
		p[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return p, nil
}
