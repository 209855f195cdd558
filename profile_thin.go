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

// ProfileThin is a zero thickness layer: a single radius, used as both
// the bottom and the top of the layer, and a single Data.
type ProfileThin struct {
	radius float32
	singleData
	singlePoint
	layerNormal
}

// NewProfileThin returns a thin profile at radius holding d.
func NewProfileThin(radius float32, d Data) (*ProfileThin, error) {
	if err := checkData(d); err != nil {
		return nil, err
	}
	return &ProfileThin{radius: radius, singleData: singleData{data: d}, singlePoint: singlePoint{point: -1}}, nil
}

func readThinASCII(s *Scanner, t DataType, nAttributes int) (Profile, error) {
	r, err := s.NextFloat32()
	if err != nil {
		return nil, err
	}
	d, err := ReadDataASCII(s, t, nAttributes)
	if err != nil {
		return nil, err
	}
	return NewProfileThin(r, d)
}

func readThinBinary(r io.Reader, t DataType, nAttributes int) (Profile, error) {
	var radius float32
	if err := readBinary(r, &radius); err != nil {
		return nil, err
	}
	d, err := ReadDataBinary(r, t, nAttributes)
	if err != nil {
		return nil, err
	}
	return NewProfileThin(radius, d)
}

func (p *ProfileThin) Type() ProfileType { return Thin }
func (p *ProfileThin) NRadii() int       { return 1 }
func (p *ProfileThin) Radii() []float32  { return []float32{p.radius} }

func (p *ProfileThin) Radius(node int) (float64, error) {
	if node != 0 {
		return math.NaN(), indexError("radius", node, 1)
	}
	return float64(p.radius), nil
}

func (p *ProfileThin) SetRadius(node int, radius float32) error {
	if node != 0 {
		return indexError("radius", node, 1)
	}
	p.radius = radius
	return nil
}

func (p *ProfileThin) RadiusTop() float64    { return float64(p.radius) }
func (p *ProfileThin) RadiusBottom() float64 { return float64(p.radius) }

func (p *ProfileThin) ValueAtRadius(interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error) {
	if _, err := clampRadius(float64(p.radius), float64(p.radius), radius, allowOutOfRange); err != nil {
		return math.NaN(), err
	}
	return p.data.Double(attribute)
}

func (p *ProfileThin) FindClosestRadiusIndex(radius float64) int { return 0 }

func (p *ProfileThin) AppendCoefficients(interp InterpolatorType, radius float64, allowOutOfRange bool,
	nodes []int, coeffs []float64) ([]int, []float64, error) {
	return radialCoefficients(interp, []float32{p.radius}, radius, allowOutOfRange, nodes, coeffs)
}

func (p *ProfileThin) Equal(other Profile) bool {
	o, ok := other.(*ProfileThin)
	return ok && o != nil && p.radius == o.radius && p.data.Equal(o.data)
}

func (p *ProfileThin) Copy() Profile {
	return &ProfileThin{
		radius:      p.radius,
		singleData:  singleData{data: p.data.Copy()},
		singlePoint: p.singlePoint,
		layerNormal: p.copyNormal(),
	}
}

func (p *ProfileThin) String() string {
	return profileString(Thin, p.Radii(), p.Data(), p.normal)
}

func (p *ProfileThin) WriteASCII(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %s ", Thin, formatFloat32(p.radius)); err != nil {
		return err
	}
	if err := p.data.WriteASCII(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (p *ProfileThin) WriteBinary(w io.Writer) error {
	if err := writeBinary(w, struct {
		Tag    ProfileType
		Radius float32
	}{Thin, p.radius}); err != nil {
		return err
	}
	return p.data.WriteBinary(w)
}
