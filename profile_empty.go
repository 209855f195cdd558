/*
Copyright © 2026 the geotess authors.
This file is part of geotess.

geotess is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geotess is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geotess.  If not, see <http://www.gnu.org/licenses/>.
*/

package geotess

import (
	"fmt"
	"io"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// ProfileEmpty is a Profile defined by a bottom and top radius and no
// Data. Queries for values return NaN rather than an error.
type ProfileEmpty struct {
	radiusBottom, radiusTop float32
	layerNormal
}

// NewProfileEmpty returns an empty profile spanning [radiusBottom,
// radiusTop].
func NewProfileEmpty(radiusBottom, radiusTop float32) (*ProfileEmpty, error) {
	if err := checkRadii(radiusBottom, radiusTop); err != nil {
		return nil, err
	}
	return &ProfileEmpty{radiusBottom: radiusBottom, radiusTop: radiusTop}, nil
}

func readEmptyASCII(s *Scanner) (Profile, error) {
	bottom, err := s.NextFloat32()
	if err != nil {
		return nil, err
	}
	top, err := s.NextFloat32()
	if err != nil {
		return nil, err
	}
	return NewProfileEmpty(bottom, top)
}

func readEmptyBinary(r io.Reader) (Profile, error) {
	var radii [2]float32
	if err := readBinary(r, &radii); err != nil {
		return nil, err
	}
	return NewProfileEmpty(radii[0], radii[1])
}

func (p *ProfileEmpty) Type() ProfileType { return Empty }
func (p *ProfileEmpty) NRadii() int       { return 2 }
func (p *ProfileEmpty) NData() int        { return 0 }

func (p *ProfileEmpty) Radii() []float32 { return []float32{p.radiusBottom, p.radiusTop} }

// Radius returns the bottom radius for node 0 and the top radius for
// any other node.
func (p *ProfileEmpty) Radius(node int) (float64, error) {
	if node == 0 {
		return float64(p.radiusBottom), nil
	}
	return float64(p.radiusTop), nil
}

func (p *ProfileEmpty) SetRadius(node int, radius float32) error {
	switch node {
	case 0:
		if err := checkRadii(radius, p.radiusTop); err != nil {
			return err
		}
		p.radiusBottom = radius
	case 1:
		if err := checkRadii(p.radiusBottom, radius); err != nil {
			return err
		}
		p.radiusTop = radius
	default:
		return indexError("radius", node, 2)
	}
	return nil
}

func (p *ProfileEmpty) RadiusTop() float64    { return float64(p.radiusTop) }
func (p *ProfileEmpty) RadiusBottom() float64 { return float64(p.radiusBottom) }

func (p *ProfileEmpty) Data() []Data                  { return []Data{} }
func (p *ProfileEmpty) DataAt(node int) (Data, error) { return nil, nil }
func (p *ProfileEmpty) DataTop() Data                 { return nil }
func (p *ProfileEmpty) DataBottom() Data              { return nil }

// SetData always fails: an empty profile has no data node to replace.
func (p *ProfileEmpty) SetData(node int, d Data) error {
	return fmt.Errorf("geotess: setting data of node %d of an empty profile: %w", node, ErrUnsupported)
}

// SetAllData does nothing.
func (p *ProfileEmpty) SetAllData(d ...Data) error { return nil }

func (p *ProfileEmpty) Value(attribute, node int) (float64, error) { return math.NaN(), nil }

func (p *ProfileEmpty) ValueAtRadius(interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error) {
	return math.NaN(), nil
}

func (p *ProfileEmpty) ValueTop(attribute int) (float64, error)    { return math.NaN(), nil }
func (p *ProfileEmpty) ValueBottom(attribute int) (float64, error) { return math.NaN(), nil }
func (p *ProfileEmpty) IsNaN(node, attribute int) bool             { return true }

func (p *ProfileEmpty) FindClosestRadiusIndex(radius float64) int {
	return closestOfTwo(float64(p.radiusBottom), float64(p.radiusTop), radius)
}

// AppendCoefficients appends node 0 with a NaN weight. Any sum formed
// from the coefficients of an empty profile is therefore NaN.
func (p *ProfileEmpty) AppendCoefficients(interp InterpolatorType, radius float64, allowOutOfRange bool,
	nodes []int, coeffs []float64) ([]int, []float64, error) {
	return append(nodes, 0), append(coeffs, math.NaN()), nil
}

func (p *ProfileEmpty) Weights(weights map[int]float64, dkm, radius, hcoefficient float64, interp InterpolatorType) error {
	return nil
}

func (p *ProfileEmpty) PointIndices(radius float64, points *roaring.Bitmap) {}

// SetPointIndex is ignored: empty profiles have no points.
func (p *ProfileEmpty) SetPointIndex(node, point int) error { return nil }
func (p *ProfileEmpty) PointIndex(node int) int             { return -1 }
func (p *ProfileEmpty) ResetPointIndices()                  {}

func (p *ProfileEmpty) Equal(other Profile) bool {
	o, ok := other.(*ProfileEmpty)
	return ok && o != nil && p.radiusBottom == o.radiusBottom && p.radiusTop == o.radiusTop
}

func (p *ProfileEmpty) Copy() Profile {
	return &ProfileEmpty{radiusBottom: p.radiusBottom, radiusTop: p.radiusTop, layerNormal: p.copyNormal()}
}

func (p *ProfileEmpty) String() string {
	return profileString(Empty, p.Radii(), nil, p.normal)
}

func (p *ProfileEmpty) WriteASCII(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %s %s\n", Empty, formatFloat32(p.radiusBottom), formatFloat32(p.radiusTop))
	return err
}

func (p *ProfileEmpty) WriteBinary(w io.Writer) error {
	return writeBinary(w, struct {
		Tag         ProfileType
		Bottom, Top float32
	}{Empty, p.radiusBottom, p.radiusTop})
}
