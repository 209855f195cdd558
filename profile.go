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
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// ProfileType identifies the shape of a Profile. Its value is the type
// tag written in front of every persisted profile, so the order of the
// constants must not change.
type ProfileType int8

// These are the profile shapes.
const (
	// Empty profiles have a bottom and top radius and no data.
	Empty ProfileType = iota
	// Thin profiles have one radius and one Data.
	Thin
	// Constant profiles have a bottom and top radius and one Data that
	// applies throughout the layer.
	Constant
	// NPoint profiles have two or more radius/Data pairs.
	NPoint
	// Surface profiles have one Data and no radii.
	Surface
	// SurfaceEmpty profiles have neither radii nor data.
	SurfaceEmpty
)

var profileTypeNames = []string{"EMPTY", "THIN", "CONSTANT", "NPOINT", "SURFACE", "SURFACE_EMPTY"}

func (t ProfileType) String() string {
	if t < 0 || int(t) >= len(profileTypeNames) {
		return fmt.Sprintf("ProfileType(%d)", int(t))
	}
	return profileTypeNames[t]
}

// ParseProfileType returns the ProfileType with the given name.
func ParseProfileType(s string) (ProfileType, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range profileTypeNames {
		if n == u {
			return ProfileType(i), nil
		}
	}
	return 0, formatError("unknown profile type %q", s)
}

// Profile is the radial column of nodes at one vertex of the
// tessellation within one layer. Nodes are ordered from the bottom of
// the layer to the top. Radii are in km.
//
// Node index arguments refer to data nodes, in [0, NData()), except for
// Radius and SetRadius, which take radius nodes in [0, NRadii()).
type Profile interface {
	Type() ProfileType

	// NRadii returns the number of radii. It may exceed NData.
	NRadii() int
	// NData returns the number of Data objects.
	NData() int

	// Radii returns a copy of the radii, in ascending order.
	Radii() []float32
	Radius(node int) (float64, error)
	// SetRadius changes the radius of a node. Changes that would break
	// the ordering of the radii are rejected and leave the profile
	// unchanged.
	SetRadius(node int, radius float32) error
	RadiusTop() float64
	RadiusBottom() float64

	// Data returns the Data of every node. The returned slice is a copy
	// but its elements are not.
	Data() []Data
	DataAt(node int) (Data, error)
	DataTop() Data
	DataBottom() Data
	// SetData replaces the Data of a single node. The replacement must
	// have the same type and size as the existing node data.
	SetData(node int, d Data) error
	// SetAllData replaces the Data of every node.
	SetAllData(d ...Data) error

	// Value returns the value of an attribute at a node.
	Value(attribute, node int) (float64, error)
	// ValueAtRadius interpolates the value of an attribute at radius.
	ValueAtRadius(interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error)
	ValueTop(attribute int) (float64, error)
	ValueBottom(attribute int) (float64, error)
	IsNaN(node, attribute int) bool

	// FindClosestRadiusIndex returns the index of the node whose radius
	// is closest to radius. Ties go to the upper node.
	FindClosestRadiusIndex(radius float64) int

	// AppendCoefficients appends to nodes and coeffs the node indices and
	// weights that reproduce ValueAtRadius as a weighted sum of node
	// values.
	AppendCoefficients(interp InterpolatorType, radius float64, allowOutOfRange bool, nodes []int, coeffs []float64) ([]int, []float64, error)

	// Weights adds to weights, keyed by point index, the interpolation
	// coefficients at radius multiplied by hcoefficient. dkm is the
	// horizontal distance in km from the interpolation location to the
	// vertex that owns this profile.
	Weights(weights map[int]float64, dkm, radius, hcoefficient float64, interp InterpolatorType) error

	// PointIndices adds to points the point indices of the nodes
	// involved in interpolation at radius.
	PointIndices(radius float64, points *roaring.Bitmap)

	SetPointIndex(node, point int) error
	// PointIndex returns the point index of a node, or -1.
	PointIndex(node int) int
	ResetPointIndices()

	LayerNormal() []float64
	SetLayerNormal(n []float64)

	Equal(other Profile) bool
	// Copy returns a deep copy, independent of the receiver.
	Copy() Profile
	String() string

	WriteASCII(w io.Writer) error
	WriteBinary(w io.Writer) error
}

// layerNormal is embedded in every profile shape.
type layerNormal struct {
	normal []float64
}

func (l *layerNormal) LayerNormal() []float64 { return l.normal }

func (l *layerNormal) SetLayerNormal(n []float64) { l.normal = n }

func (l *layerNormal) copyNormal() layerNormal {
	if l.normal == nil {
		return layerNormal{}
	}
	n := make([]float64, len(l.normal))
	copy(n, l.normal)
	return layerNormal{normal: n}
}

func vectorString(v []float64) string {
	if v == nil {
		return "null"
	}
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = fmt.Sprintf("%1.6f", x)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// profileString renders the parts of String shared by all shapes.
func profileString(t ProfileType, radii []float32, data []Data, normal []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Type: %s\n", t)
	switch len(radii) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "    Radius: %9.4f\n", radii[0])
	case 2:
		fmt.Fprintf(&b, "    Radii:\n      Bottom: %9.4f\n      Top:    %9.4f\n", radii[0], radii[1])
	default:
		b.WriteString("    Radii:")
		for _, r := range radii {
			fmt.Fprintf(&b, " %9.4f", r)
		}
		b.WriteString("\n")
	}
	for i, d := range data {
		fmt.Fprintf(&b, "    Data %d: %s\n", i, d)
	}
	fmt.Fprintf(&b, "    Layer Normal: %s\n", vectorString(normal))
	return b.String()
}

func checkRadii(bottom, top float32) error {
	if top < bottom {
		return fmt.Errorf("geotess: radiusTop %g must be >= radiusBottom %g: %w", top, bottom, ErrInvalidProfile)
	}
	return nil
}

// value returns attribute of d, or NaN for nil d.
func value(d Data, attribute int) (float64, error) {
	if d == nil {
		return math.NaN(), nil
	}
	return d.Double(attribute)
}

// closestOfTwo returns 1 if radius is at least as close to top as to
// bottom, otherwise 0.
func closestOfTwo(bottom, top, radius float64) int {
	if math.Abs(top-radius) <= math.Abs(bottom-radius) {
		return 1
	}
	return 0
}

// singlePoint holds the point index of a profile with one Data.
type singlePoint struct {
	point int
}

func (s *singlePoint) SetPointIndex(node, point int) error {
	if node != 0 {
		return indexError("node", node, 1)
	}
	s.point = point
	return nil
}

func (s *singlePoint) PointIndex(node int) int {
	if node != 0 {
		return -1
	}
	return s.point
}

func (s *singlePoint) ResetPointIndices() { s.point = -1 }

func (s *singlePoint) PointIndices(radius float64, points *roaring.Bitmap) {
	if s.point >= 0 {
		points.Add(uint32(s.point))
	}
}

func (s *singlePoint) Weights(weights map[int]float64, dkm, radius, hcoefficient float64, interp InterpolatorType) error {
	if s.point < 0 {
		return fmt.Errorf("geotess: profile has no point index: %w", ErrUnsupported)
	}
	weights[s.point] += hcoefficient
	return nil
}

// singleData implements the Data accessors of profiles holding exactly
// one Data.
type singleData struct {
	data Data
}

func (s *singleData) NData() int       { return 1 }
func (s *singleData) Data() []Data     { return []Data{s.data} }
func (s *singleData) DataTop() Data    { return s.data }
func (s *singleData) DataBottom() Data { return s.data }

func (s *singleData) DataAt(node int) (Data, error) {
	if node != 0 {
		return nil, indexError("node", node, 1)
	}
	return s.data, nil
}

func (s *singleData) SetData(node int, d Data) error {
	if node != 0 {
		return indexError("node", node, 1)
	}
	return s.replace(d)
}

func (s *singleData) SetAllData(d ...Data) error {
	if len(d) != 1 {
		return fmt.Errorf("geotess: got %d data for a single data profile: %w", len(d), ErrInconsistentData)
	}
	return s.replace(d[0])
}

func (s *singleData) replace(d Data) error {
	if err := checkData(s.data, d); err != nil {
		return err
	}
	s.data = d
	return nil
}

func (s *singleData) Value(attribute, node int) (float64, error) {
	if node != 0 {
		return math.NaN(), indexError("node", node, 1)
	}
	return s.data.Double(attribute)
}

func (s *singleData) ValueTop(attribute int) (float64, error)    { return s.data.Double(attribute) }
func (s *singleData) ValueBottom(attribute int) (float64, error) { return s.data.Double(attribute) }

func (s *singleData) IsNaN(node, attribute int) bool {
	return node != 0 || s.data.IsNaN(attribute)
}
