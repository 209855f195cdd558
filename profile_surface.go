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

// ProfileSurface holds a single Data and no radii. It is used by 2D
// models, where values do not vary with depth, and radius arguments are
// ignored.
type ProfileSurface struct {
	singleData
	singlePoint
	layerNormal
}

// NewProfileSurface returns a surface profile holding d.
func NewProfileSurface(d Data) (*ProfileSurface, error) {
	if err := checkData(d); err != nil {
		return nil, err
	}
	return &ProfileSurface{singleData: singleData{data: d}, singlePoint: singlePoint{point: -1}}, nil
}

func readSurfaceASCII(s *Scanner, t DataType, nAttributes int) (Profile, error) {
	d, err := ReadDataASCII(s, t, nAttributes)
	if err != nil {
		return nil, err
	}
	return NewProfileSurface(d)
}

func readSurfaceBinary(r io.Reader, t DataType, nAttributes int) (Profile, error) {
	d, err := ReadDataBinary(r, t, nAttributes)
	if err != nil {
		return nil, err
	}
	return NewProfileSurface(d)
}

func (p *ProfileSurface) Type() ProfileType { return Surface }
func (p *ProfileSurface) NRadii() int       { return 0 }
func (p *ProfileSurface) Radii() []float32  { return []float32{} }

func (p *ProfileSurface) Radius(node int) (float64, error) {
	return math.NaN(), indexError("radius", node, 0)
}

func (p *ProfileSurface) SetRadius(node int, radius float32) error {
	return indexError("radius", node, 0)
}

func (p *ProfileSurface) RadiusTop() float64    { return math.NaN() }
func (p *ProfileSurface) RadiusBottom() float64 { return math.NaN() }

func (p *ProfileSurface) ValueAtRadius(interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error) {
	return p.data.Double(attribute)
}

func (p *ProfileSurface) FindClosestRadiusIndex(radius float64) int { return 0 }

func (p *ProfileSurface) AppendCoefficients(interp InterpolatorType, radius float64, allowOutOfRange bool,
	nodes []int, coeffs []float64) ([]int, []float64, error) {
	return append(nodes, 0), append(coeffs, 1), nil
}

func (p *ProfileSurface) Equal(other Profile) bool {
	o, ok := other.(*ProfileSurface)
	return ok && o != nil && p.data.Equal(o.data)
}

func (p *ProfileSurface) Copy() Profile {
	return &ProfileSurface{
		singleData:  singleData{data: p.data.Copy()},
		singlePoint: p.singlePoint,
		layerNormal: p.copyNormal(),
	}
}

func (p *ProfileSurface) String() string {
	return profileString(Surface, nil, p.Data(), p.normal)
}

func (p *ProfileSurface) WriteASCII(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d ", Surface); err != nil {
		return err
	}
	if err := p.data.WriteASCII(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (p *ProfileSurface) WriteBinary(w io.Writer) error {
	if err := writeBinary(w, Surface); err != nil {
		return err
	}
	return p.data.WriteBinary(w)
}

// ProfileSurfaceEmpty is a surface profile with no data, marking a
// vertex of a 2D model where the model is undefined.
type ProfileSurfaceEmpty struct {
	layerNormal
}

// NewProfileSurfaceEmpty returns an empty surface profile.
func NewProfileSurfaceEmpty() *ProfileSurfaceEmpty { return &ProfileSurfaceEmpty{} }

func (p *ProfileSurfaceEmpty) Type() ProfileType { return SurfaceEmpty }
func (p *ProfileSurfaceEmpty) NRadii() int       { return 0 }
func (p *ProfileSurfaceEmpty) NData() int        { return 0 }
func (p *ProfileSurfaceEmpty) Radii() []float32  { return []float32{} }

func (p *ProfileSurfaceEmpty) Radius(node int) (float64, error) {
	return math.NaN(), indexError("radius", node, 0)
}

func (p *ProfileSurfaceEmpty) SetRadius(node int, radius float32) error {
	return indexError("radius", node, 0)
}

func (p *ProfileSurfaceEmpty) RadiusTop() float64    { return math.NaN() }
func (p *ProfileSurfaceEmpty) RadiusBottom() float64 { return math.NaN() }

func (p *ProfileSurfaceEmpty) Data() []Data                  { return []Data{} }
func (p *ProfileSurfaceEmpty) DataAt(node int) (Data, error) { return nil, nil }
func (p *ProfileSurfaceEmpty) DataTop() Data                 { return nil }
func (p *ProfileSurfaceEmpty) DataBottom() Data              { return nil }

func (p *ProfileSurfaceEmpty) SetData(node int, d Data) error {
	return fmt.Errorf("geotess: setting data of node %d of an empty surface profile: %w", node, ErrUnsupported)
}

func (p *ProfileSurfaceEmpty) SetAllData(d ...Data) error { return nil }

func (p *ProfileSurfaceEmpty) Value(attribute, node int) (float64, error) { return math.NaN(), nil }

func (p *ProfileSurfaceEmpty) ValueAtRadius(interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error) {
	return math.NaN(), nil
}

func (p *ProfileSurfaceEmpty) ValueTop(attribute int) (float64, error)    { return math.NaN(), nil }
func (p *ProfileSurfaceEmpty) ValueBottom(attribute int) (float64, error) { return math.NaN(), nil }
func (p *ProfileSurfaceEmpty) IsNaN(node, attribute int) bool             { return true }
func (p *ProfileSurfaceEmpty) FindClosestRadiusIndex(radius float64) int  { return -1 }

// AppendCoefficients appends node 0 with a NaN weight, as for
// ProfileEmpty.
func (p *ProfileSurfaceEmpty) AppendCoefficients(interp InterpolatorType, radius float64, allowOutOfRange bool,
	nodes []int, coeffs []float64) ([]int, []float64, error) {
	return append(nodes, 0), append(coeffs, math.NaN()), nil
}

func (p *ProfileSurfaceEmpty) Weights(weights map[int]float64, dkm, radius, hcoefficient float64, interp InterpolatorType) error {
	return nil
}

func (p *ProfileSurfaceEmpty) PointIndices(radius float64, points *roaring.Bitmap) {}
func (p *ProfileSurfaceEmpty) SetPointIndex(node, point int) error               { return nil }
func (p *ProfileSurfaceEmpty) PointIndex(node int) int                           { return -1 }
func (p *ProfileSurfaceEmpty) ResetPointIndices()                                {}

func (p *ProfileSurfaceEmpty) Equal(other Profile) bool {
	o, ok := other.(*ProfileSurfaceEmpty)
	return ok && o != nil
}

func (p *ProfileSurfaceEmpty) Copy() Profile {
	return &ProfileSurfaceEmpty{layerNormal: p.copyNormal()}
}

func (p *ProfileSurfaceEmpty) String() string {
	return profileString(SurfaceEmpty, nil, nil, p.normal)
}

func (p *ProfileSurfaceEmpty) WriteASCII(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d\n", SurfaceEmpty)
	return err
}

func (p *ProfileSurfaceEmpty) WriteBinary(w io.Writer) error {
	return writeBinary(w, SurfaceEmpty)
}
