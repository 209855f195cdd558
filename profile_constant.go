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
)

// ProfileConstant is a layer with a bottom and top radius and a single
// Data that applies at every radius in between.
type ProfileConstant struct {
	radiusBottom, radiusTop float32
	singleData
	singlePoint
	layerNormal
}

// NewProfileConstant returns a constant profile spanning [radiusBottom,
// radiusTop] holding d.
func NewProfileConstant(radiusBottom, radiusTop float32, d Data) (*ProfileConstant, error) {
	if err := checkRadii(radiusBottom, radiusTop); err != nil {
		return nil, err
	}
	if err := checkData(d); err != nil {
		return nil, err
	}
	return &ProfileConstant{
		radiusBottom: radiusBottom,
		radiusTop:    radiusTop,
		singleData:   singleData{data: d},
		singlePoint:  singlePoint{point: -1},
	}, nil
}

func readConstantASCII(s *Scanner, t DataType, nAttributes int) (Profile, error) {
	bottom, err := s.NextFloat32()
	if err != nil {
		return nil, err
	}
	top, err := s.NextFloat32()
	if err != nil {
		return nil, err
	}
	d, err := ReadDataASCII(s, t, nAttributes)
	if err != nil {
		return nil, err
	}
	return NewProfileConstant(bottom, top, d)
}

func readConstantBinary(r io.Reader, t DataType, nAttributes int) (Profile, error) {
	var radii [2]float32
	if err := readBinary(r, &radii); err != nil {
		return nil, err
	}
	d, err := ReadDataBinary(r, t, nAttributes)
	if err != nil {
		return nil, err
	}
	return NewProfileConstant(radii[0], radii[1], d)
}

func (p *ProfileConstant) Type() ProfileType { return Constant }
func (p *ProfileConstant) NRadii() int       { return 2 }
func (p *ProfileConstant) Radii() []float32  { return []float32{p.radiusBottom, p.radiusTop} }

func (p *ProfileConstant) Radius(node int) (float64, error) {
	switch node {
	case 0:
		return float64(p.radiusBottom), nil
	case 1:
		return float64(p.radiusTop), nil
	default:
		return math.NaN(), indexError("radius", node, 2)
	}
}

func (p *ProfileConstant) SetRadius(node int, radius float32) error {
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

func (p *ProfileConstant) RadiusTop() float64    { return float64(p.radiusTop) }
func (p *ProfileConstant) RadiusBottom() float64 { return float64(p.radiusBottom) }

func (p *ProfileConstant) ValueAtRadius(interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error) {
	if _, err := clampRadius(float64(p.radiusBottom), float64(p.radiusTop), radius, allowOutOfRange); err != nil {
		return math.NaN(), err
	}
	return p.data.Double(attribute)
}

// FindClosestRadiusIndex returns 1 when radius is at least as close to
// the top of the layer as to the bottom, otherwise 0.
func (p *ProfileConstant) FindClosestRadiusIndex(radius float64) int {
	return closestOfTwo(float64(p.radiusBottom), float64(p.radiusTop), radius)
}

func (p *ProfileConstant) AppendCoefficients(interp InterpolatorType, radius float64, allowOutOfRange bool,
	nodes []int, coeffs []float64) ([]int, []float64, error) {
	if _, err := clampRadius(float64(p.radiusBottom), float64(p.radiusTop), radius, allowOutOfRange); err != nil {
		return nodes, coeffs, err
	}
	return append(nodes, 0), append(coeffs, 1), nil
}

func (p *ProfileConstant) Equal(other Profile) bool {
	o, ok := other.(*ProfileConstant)
	return ok && o != nil && p.radiusBottom == o.radiusBottom && p.radiusTop == o.radiusTop &&
		p.data.Equal(o.data)
}

func (p *ProfileConstant) Copy() Profile {
	return &ProfileConstant{
		radiusBottom: p.radiusBottom,
		radiusTop:    p.radiusTop,
		singleData:   singleData{data: p.data.Copy()},
		singlePoint:  p.singlePoint,
		layerNormal:  p.copyNormal(),
	}
}

func (p *ProfileConstant) String() string {
	return profileString(Constant, p.Radii(), p.Data(), p.normal)
}

func (p *ProfileConstant) WriteASCII(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %s %s ", Constant, formatFloat32(p.radiusBottom), formatFloat32(p.radiusTop)); err != nil {
		return err
	}
	if err := p.data.WriteASCII(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (p *ProfileConstant) WriteBinary(w io.Writer) error {
	if err := writeBinary(w, struct {
		Tag         ProfileType
		Bottom, Top float32
	}{Constant, p.radiusBottom, p.radiusTop}); err != nil {
		return err
	}
	return p.data.WriteBinary(w)
}
