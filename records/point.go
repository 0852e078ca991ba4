// Package records defines the record kinds exchanged by collaborative
// line drawing sessions.
package records

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/oy3o/recsplit"
)

// PointSize is the encoded length of a Point.
const PointSize = 16

// ErrNonFinite indicates a point coordinate or thickness that is NaN or infinite.
var ErrNonFinite = errors.New("records: non-finite point component")

// Point is one sample of a drawn line: a position in meters and the stroke
// thickness at that position.
type Point struct {
	X, Y, Z   float32
	Thickness float32
}

func (*Point) FixedSize() int { return PointSize }

// Validate reports whether every component is finite.
func (p *Point) Validate() error {
	for i, v := range [4]float32{p.X, p.Y, p.Z, p.Thickness} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("%w: component %d is %v", ErrNonFinite, i, v)
		}
	}
	return nil
}

func (p *Point) MarshalBinary() ([]byte, error) {
	buf := make([]byte, PointSize)
	if _, err := p.MarshalTo(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (p *Point) MarshalTo(buf []byte) (int, error) {
	if len(buf) < PointSize {
		return 0, io.ErrShortWrite
	}
	recsplit.Order.PutUint32(buf[0:], math.Float32bits(p.X))
	recsplit.Order.PutUint32(buf[4:], math.Float32bits(p.Y))
	recsplit.Order.PutUint32(buf[8:], math.Float32bits(p.Z))
	recsplit.Order.PutUint32(buf[12:], math.Float32bits(p.Thickness))
	return PointSize, nil
}

// UnmarshalBinary decodes a point and rejects non-finite components,
// which only appear in a corrupted stream.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) < PointSize {
		return recsplit.ErrTruncatedData
	}
	p.X = math.Float32frombits(recsplit.Order.Uint32(data[0:]))
	p.Y = math.Float32frombits(recsplit.Order.Uint32(data[4:]))
	p.Z = math.Float32frombits(recsplit.Order.Uint32(data[8:]))
	p.Thickness = math.Float32frombits(recsplit.Order.Uint32(data[12:]))
	return p.Validate()
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g) thickness=%g", p.X, p.Y, p.Z, p.Thickness)
}
