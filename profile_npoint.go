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

// ProfileNPoint is a layer described by two or more nodes, each with
// its own radius and Data. Values between nodes are interpolated.
type ProfileNPoint struct {
	radii  []float32
	data   []Data
	points []int
	layerNormal
}

// NewProfileNPoint returns a profile with a node at each radius. radii
// must be in non-decreasing order and have the same length as data.
// The profile keeps its own copy of both slices.
func NewProfileNPoint(radii []float32, data []Data) (*ProfileNPoint, error) {
	if len(radii) < 2 {
		return nil, fmt.Errorf("geotess: npoint profile needs at least 2 nodes, got %d: %w", len(radii), ErrInvalidProfile)
	}
	if len(radii) != len(data) {
		return nil, fmt.Errorf("geotess: npoint profile has %d radii and %d data: %w", len(radii), len(data), ErrInvalidProfile)
	}
	for i := 1; i < len(radii); i++ {
		if err := checkRadii(radii[i-1], radii[i]); err != nil {
			return nil, err
		}
	}
	if err := checkData(data...); err != nil {
		return nil, err
	}
	p := &ProfileNPoint{
		radii:  make([]float32, len(radii)),
		data:   make([]Data, len(data)),
		points: make([]int, len(radii)),
	}
	copy(p.radii, radii)
	copy(p.data, data)
	p.ResetPointIndices()
	return p, nil
}

func readNPointASCII(s *Scanner, t DataType, nAttributes int) (Profile, error) {
	n, err := s.NextInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, formatError("npoint profile with %d nodes", n)
	}
	// n is untrusted; grow with the input.
	var radii []float32
	var data []Data
	for i := 0; i < n; i++ {
		r, err := s.NextFloat32()
		if err != nil {
			return nil, err
		}
		d, err := ReadDataASCII(s, t, nAttributes)
		if err != nil {
			return nil, err
		}
		radii = append(radii, r)
		data = append(data, d)
	}
	return NewProfileNPoint(radii, data)
}

func readNPointBinary(r io.Reader, t DataType, nAttributes int) (Profile, error) {
	var n int32
	if err := readBinary(r, &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, formatError("npoint profile with %d nodes", n)
	}
	var radii []float32
	for i := int32(0); i < n; i++ {
		var radius float32
		if err := readBinary(r, &radius); err != nil {
			return nil, err
		}
		radii = append(radii, radius)
	}
	var data []Data
	for i := int32(0); i < n; i++ {
		d, err := ReadDataBinary(r, t, nAttributes)
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}
	return NewProfileNPoint(radii, data)
}

func (p *ProfileNPoint) Type() ProfileType { return NPoint }
func (p *ProfileNPoint) NRadii() int       { return len(p.radii) }
func (p *ProfileNPoint) NData() int        { return len(p.data) }

func (p *ProfileNPoint) Radii() []float32 {
	r := make([]float32, len(p.radii))
	copy(r, p.radii)
	return r
}

func (p *ProfileNPoint) Radius(node int) (float64, error) {
	if node < 0 || node >= len(p.radii) {
		return math.NaN(), indexError("radius", node, len(p.radii))
	}
	return float64(p.radii[node]), nil
}

func (p *ProfileNPoint) SetRadius(node int, radius float32) error {
	if node < 0 || node >= len(p.radii) {
		return indexError("radius", node, len(p.radii))
	}
	if node > 0 {
		if err := checkRadii(p.radii[node-1], radius); err != nil {
			return err
		}
	}
	if node < len(p.radii)-1 {
		if err := checkRadii(radius, p.radii[node+1]); err != nil {
			return err
		}
	}
	p.radii[node] = radius
	return nil
}

func (p *ProfileNPoint) RadiusTop() float64    { return float64(p.radii[len(p.radii)-1]) }
func (p *ProfileNPoint) RadiusBottom() float64 { return float64(p.radii[0]) }

func (p *ProfileNPoint) Data() []Data {
	d := make([]Data, len(p.data))
	copy(d, p.data)
	return d
}

func (p *ProfileNPoint) DataAt(node int) (Data, error) {
	if node < 0 || node >= len(p.data) {
		return nil, indexError("node", node, len(p.data))
	}
	return p.data[node], nil
}

func (p *ProfileNPoint) DataTop() Data    { return p.data[len(p.data)-1] }
func (p *ProfileNPoint) DataBottom() Data { return p.data[0] }

func (p *ProfileNPoint) SetData(node int, d Data) error {
	if node < 0 || node >= len(p.data) {
		return indexError("node", node, len(p.data))
	}
	if err := checkData(p.data[0], d); err != nil {
		return err
	}
	p.data[node] = d
	return nil
}

func (p *ProfileNPoint) SetAllData(d ...Data) error {
	if len(d) != len(p.data) {
		return fmt.Errorf("geotess: got %d data for %d nodes: %w", len(d), len(p.data), ErrInconsistentData)
	}
	all := append([]Data{p.data[0]}, d...)
	if err := checkData(all...); err != nil {
		return err
	}
	copy(p.data, d)
	return nil
}

func (p *ProfileNPoint) Value(attribute, node int) (float64, error) {
	if node < 0 || node >= len(p.data) {
		return math.NaN(), indexError("node", node, len(p.data))
	}
	return p.data[node].Double(attribute)
}

func (p *ProfileNPoint) ValueAtRadius(interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error) {
	nodes, coeffs, err := radialCoefficients(interp, p.radii, radius, allowOutOfRange, nil, nil)
	if err != nil {
		return math.NaN(), err
	}
	return weightedValue(p.data, attribute, nodes, coeffs)
}

func (p *ProfileNPoint) ValueTop(attribute int) (float64, error) {
	return p.DataTop().Double(attribute)
}

func (p *ProfileNPoint) ValueBottom(attribute int) (float64, error) {
	return p.DataBottom().Double(attribute)
}

func (p *ProfileNPoint) IsNaN(node, attribute int) bool {
	if node < 0 || node >= len(p.data) {
		return true
	}
	return p.data[node].IsNaN(attribute)
}

func (p *ProfileNPoint) FindClosestRadiusIndex(radius float64) int {
	return closestNode(p.radii, radius)
}

func (p *ProfileNPoint) AppendCoefficients(interp InterpolatorType, radius float64, allowOutOfRange bool,
	nodes []int, coeffs []float64) ([]int, []float64, error) {
	return radialCoefficients(interp, p.radii, radius, allowOutOfRange, nodes, coeffs)
}

// Weights clamps radius to the extent of the profile.
func (p *ProfileNPoint) Weights(weights map[int]float64, dkm, radius, hcoefficient float64, interp InterpolatorType) error {
	nodes, coeffs, err := radialCoefficients(interp, p.radii, radius, true, nil, nil)
	if err != nil {
		return err
	}
	for k, node := range nodes {
		point := p.points[node]
		if point < 0 {
			return fmt.Errorf("geotess: node %d has no point index: %w", node, ErrUnsupported)
		}
		weights[point] += hcoefficient * coeffs[k]
	}
	return nil
}

// PointIndices adds the points of the two nodes that bracket radius,
// or of the nearest end node when radius is outside the profile.
func (p *ProfileNPoint) PointIndices(radius float64, points *roaring.Bitmap) {
	nodes, _, err := radialCoefficients(Linear, p.radii, radius, true, nil, nil)
	if err != nil {
		return
	}
	for _, node := range nodes {
		if p.points[node] >= 0 {
			points.Add(uint32(p.points[node]))
		}
	}
}

func (p *ProfileNPoint) SetPointIndex(node, point int) error {
	if node < 0 || node >= len(p.points) {
		return indexError("node", node, len(p.points))
	}
	p.points[node] = point
	return nil
}

func (p *ProfileNPoint) PointIndex(node int) int {
	if node < 0 || node >= len(p.points) {
		return -1
	}
	return p.points[node]
}

func (p *ProfileNPoint) ResetPointIndices() {
	for i := range p.points {
		p.points[i] = -1
	}
}

func (p *ProfileNPoint) Equal(other Profile) bool {
	o, ok := other.(*ProfileNPoint)
	if !ok || o == nil || len(o.radii) != len(p.radii) {
		return false
	}
	for i, r := range p.radii {
		if o.radii[i] != r {
			return false
		}
	}
	return equalData(p.data, o.data)
}

func (p *ProfileNPoint) Copy() Profile {
	c := &ProfileNPoint{
		radii:       p.Radii(),
		data:        copyData(p.data),
		points:      make([]int, len(p.points)),
		layerNormal: p.copyNormal(),
	}
	copy(c.points, p.points)
	return c
}

func (p *ProfileNPoint) String() string {
	return profileString(NPoint, p.radii, p.data, p.normal)
}

func (p *ProfileNPoint) WriteASCII(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", NPoint, len(p.radii)); err != nil {
		return err
	}
	for i, r := range p.radii {
		if _, err := fmt.Fprintf(w, "%s ", formatFloat32(r)); err != nil {
			return err
		}
		if err := p.data[i].WriteASCII(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (p *ProfileNPoint) WriteBinary(w io.Writer) error {
	if err := writeBinary(w, struct {
		Tag ProfileType
		N   int32
	}{NPoint, int32(len(p.radii))}); err != nil {
		return err
	}
	if err := writeBinary(w, p.radii); err != nil {
		return err
	}
	for _, d := range p.data {
		if err := d.WriteBinary(w); err != nil {
			return err
		}
	}
	return nil
}
