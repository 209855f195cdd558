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
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
)

const testTolerance = 1.e-8

func different(a, b, tolerance float64) bool {
	if a == b {
		return false
	}
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func mustNPoint(t *testing.T, radii []float32, values ...float32) *ProfileNPoint {
	t.Helper()
	data := make([]Data, len(values))
	for i, v := range values {
		data[i] = NewDataArrayOfFloats(v, 2*v)
	}
	p, err := NewProfileNPoint(radii, data)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProfileNPointMidpoint(t *testing.T) {
	p := mustNPoint(t, []float32{3480, 5701}, 10, 20)
	v, err := p.ValueAtRadius(Linear, 0, 4590.5, false)
	if err != nil {
		t.Fatal(err)
	}
	if v != 15 {
		t.Errorf("have %g, want 15", v)
	}
	v, _ = p.ValueAtRadius(Linear, 1, 4590.5, false)
	if v != 30 {
		t.Errorf("attribute 1: have %g, want 30", v)
	}
	if p.RadiusBottom() != 3480 || p.RadiusTop() != 5701 {
		t.Errorf("radii: %g %g", p.RadiusBottom(), p.RadiusTop())
	}
	if top, _ := p.ValueTop(0); top != 20 {
		t.Errorf("top: have %g", top)
	}
	if bottom, _ := p.ValueBottom(0); bottom != 10 {
		t.Errorf("bottom: have %g", bottom)
	}
}

func TestProfileNPointOutOfRange(t *testing.T) {
	p := mustNPoint(t, []float32{10, 20, 30}, 1, 2, 3)
	if _, err := p.ValueAtRadius(Linear, 0, 35, false); !errors.Is(err, ErrRadiusOutOfRange) {
		t.Errorf("have %v, want ErrRadiusOutOfRange", err)
	}
	v, err := p.ValueAtRadius(Linear, 0, 35, true)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("clamped top: have %g, want 3", v)
	}
	v, _ = p.ValueAtRadius(Linear, 0, 0, true)
	if v != 1 {
		t.Errorf("clamped bottom: have %g, want 1", v)
	}
	if _, err := p.ValueAtRadius(Linear, 5, 15, false); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("bad attribute: have %v", err)
	}
}

func TestProfileConstruction(t *testing.T) {
	d := NewDataFloat(1)
	if _, err := NewProfileEmpty(10, 5); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("empty: have %v", err)
	}
	if _, err := NewProfileConstant(10, 5, d); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("constant: have %v", err)
	}
	if _, err := NewProfileNPoint([]float32{1, 3, 2}, []Data{d, d, d}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("npoint order: have %v", err)
	}
	if _, err := NewProfileNPoint([]float32{1, 2}, []Data{d}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("npoint lengths: have %v", err)
	}
	if _, err := NewProfileNPoint([]float32{1}, []Data{d}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("npoint single node: have %v", err)
	}
	if _, err := NewProfileNPoint([]float32{1, 2}, []Data{d, NewDataDouble(1)}); !errors.Is(err, ErrInconsistentData) {
		t.Errorf("npoint mixed data: have %v", err)
	}
	if _, err := NewProfileThin(5, nil); !errors.Is(err, ErrInconsistentData) {
		t.Errorf("thin nil data: have %v", err)
	}
	if _, err := NewProfileConstant(5, 5, d); err != nil {
		t.Errorf("zero thickness constant should be allowed: %v", err)
	}
}

func TestProfileEmpty(t *testing.T) {
	p, err := NewProfileEmpty(0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if p.NData() != 0 || p.NRadii() != 2 {
		t.Errorf("have %d data and %d radii", p.NData(), p.NRadii())
	}
	v, err := p.ValueAtRadius(Linear, 0, 5, false)
	if err != nil || !math.IsNaN(v) {
		t.Errorf("value: have %g, %v; want NaN", v, err)
	}
	if v, _ := p.Value(3, 7); !math.IsNaN(v) {
		t.Errorf("Value: have %g", v)
	}
	if !p.IsNaN(0, 0) {
		t.Error("IsNaN should be true")
	}
	if d, err := p.DataAt(0); d != nil || err != nil {
		t.Errorf("DataAt: have %v, %v", d, err)
	}
	if p.DataTop() != nil || p.DataBottom() != nil {
		t.Error("top and bottom data should be nil")
	}
	if err := p.SetData(0, NewDataFloat(1)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("SetData: have %v", err)
	}
	if err := p.SetAllData(NewDataFloat(1)); err != nil {
		t.Errorf("SetAllData should be a no-op: %v", err)
	}
	if r, _ := p.Radius(0); r != 0 {
		t.Errorf("Radius(0): have %g", r)
	}
	if r, _ := p.Radius(7); r != 10 {
		t.Errorf("Radius(7): have %g", r)
	}
	for _, test := range []struct {
		r    float64
		want int
	}{{6, 1}, {4, 0}, {5, 1}, {-3, 0}, {12, 1}} {
		if have := p.FindClosestRadiusIndex(test.r); have != test.want {
			t.Errorf("FindClosestRadiusIndex(%g): have %d, want %d", test.r, have, test.want)
		}
	}
	nodes, coeffs, err := p.AppendCoefficients(Linear, 5, false, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(nodes, []int{0}) || len(coeffs) != 1 || !math.IsNaN(coeffs[0]) {
		t.Errorf("coefficients: have %v %v", nodes, coeffs)
	}
	w := map[int]float64{}
	if err := p.Weights(w, 0, 5, 1, Linear); err != nil || len(w) != 0 {
		t.Errorf("weights: have %v, %v", w, err)
	}
	if p.PointIndex(0) != -1 {
		t.Errorf("point index: have %d", p.PointIndex(0))
	}
}

func TestProfileThin(t *testing.T) {
	p, err := NewProfileThin(6371, NewDataArrayOfDoubles(1.5, 2.5))
	if err != nil {
		t.Fatal(err)
	}
	v, err := p.ValueAtRadius(Linear, 1, 6371, false)
	if err != nil || v != 2.5 {
		t.Errorf("have %g, %v", v, err)
	}
	if _, err := p.ValueAtRadius(Linear, 1, 6000, false); !errors.Is(err, ErrRadiusOutOfRange) {
		t.Errorf("out of range: have %v", err)
	}
	if v, _ := p.ValueAtRadius(Linear, 0, 6000, true); v != 1.5 {
		t.Errorf("allowed out of range: have %g", v)
	}
	if p.FindClosestRadiusIndex(0) != 0 {
		t.Error("thin profiles have one node")
	}
	if err := p.SetData(0, NewDataArrayOfDoubles(3, 4)); err != nil {
		t.Fatal(err)
	}
	if err := p.SetData(0, NewDataDouble(3)); !errors.Is(err, ErrInconsistentData) {
		t.Errorf("shape change: have %v", err)
	}
	if err := p.SetData(1, NewDataArrayOfDoubles(3, 4)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("bad node: have %v", err)
	}
}

func TestProfileConstant(t *testing.T) {
	p, err := NewProfileConstant(0, 10, NewDataInt(42))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []float64{0, 3, 10} {
		v, err := p.ValueAtRadius(CubicSpline, 0, r, false)
		if err != nil || v != 42 {
			t.Errorf("radius %g: have %g, %v", r, v, err)
		}
	}
	if _, err := p.ValueAtRadius(Linear, 0, 11, false); !errors.Is(err, ErrRadiusOutOfRange) {
		t.Errorf("have %v", err)
	}
	if p.FindClosestRadiusIndex(6) != 1 || p.FindClosestRadiusIndex(4) != 0 {
		t.Error("wrong closest radius")
	}
	if err := p.SetRadius(1, -1); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("inverted radii: have %v", err)
	}
	if p.RadiusTop() != 10 {
		t.Errorf("failed SetRadius changed the profile: top %g", p.RadiusTop())
	}
	if err := p.SetRadius(2, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("have %v", err)
	}
}

func TestProfileSurface(t *testing.T) {
	p, err := NewProfileSurface(NewDataArrayOfShorts(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if p.NRadii() != 0 || p.NData() != 1 {
		t.Errorf("have %d radii and %d data", p.NRadii(), p.NData())
	}
	if !math.IsNaN(p.RadiusTop()) || !math.IsNaN(p.RadiusBottom()) {
		t.Error("surface radii should be NaN")
	}
	if _, err := p.Radius(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("have %v", err)
	}
	v, err := p.ValueAtRadius(Nearest, 1, 1e9, false)
	if err != nil || v != 2 {
		t.Errorf("radius is ignored: have %g, %v", v, err)
	}

	e := NewProfileSurfaceEmpty()
	if e.FindClosestRadiusIndex(1) != -1 {
		t.Error("surface empty has no closest radius")
	}
	if v, _ := e.ValueAtRadius(Linear, 0, 0, false); !math.IsNaN(v) {
		t.Errorf("have %g", v)
	}
	if err := e.SetData(0, NewDataFloat(1)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("have %v", err)
	}
	_, coeffs, _ := e.AppendCoefficients(Linear, 0, false, nil, nil)
	if len(coeffs) != 1 || !math.IsNaN(coeffs[0]) {
		t.Errorf("coefficients: have %v", coeffs)
	}
}

func TestProfileCopyIsIndependent(t *testing.T) {
	empty, _ := NewProfileEmpty(1, 2)
	thin, _ := NewProfileThin(3, NewDataFloat(1))
	constant, _ := NewProfileConstant(1, 2, NewDataArrayOfInts(1, 2))
	surface, _ := NewProfileSurface(NewDataDouble(4))
	profiles := []Profile{empty, thin, constant, mustNPoint(t, []float32{1, 2, 3}, 4, 5, 6), surface, NewProfileSurfaceEmpty()}
	for _, p := range profiles {
		t.Run(p.Type().String(), func(t *testing.T) {
			p.SetLayerNormal([]float64{0, 0, 1})
			c := p.Copy()
			if !c.Equal(p) || c.Type() != p.Type() {
				t.Fatalf("copy differs:\n%s\n%s", c, p)
			}
			c.LayerNormal()[2] = 9
			if p.LayerNormal()[2] != 1 {
				t.Error("layer normal is shared")
			}
			if p.NData() > 0 {
				if err := c.DataBottom().SetDouble(0, 99); err != nil {
					t.Fatal(err)
				}
				if v, _ := p.DataBottom().Double(0); v == 99 {
					t.Error("data is shared")
				}
			}
			if p.NRadii() > 0 {
				r := p.RadiusBottom()
				if err := c.SetRadius(0, float32(r-1)); err != nil {
					t.Fatal(err)
				}
				if p.RadiusBottom() != r {
					t.Error("radii are shared")
				}
			}
		})
	}
}

func TestProfileNPointSetters(t *testing.T) {
	p := mustNPoint(t, []float32{1, 2, 3}, 1, 2, 3)
	if err := p.SetRadius(1, 4); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("have %v", err)
	}
	if err := p.SetRadius(1, 2.5); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p.Radii(), []float32{1, 2.5, 3}) {
		t.Errorf("radii: have %v", p.Radii())
	}
	if err := p.SetAllData(NewDataArrayOfFloats(1, 1), NewDataArrayOfFloats(1, 1)); !errors.Is(err, ErrInconsistentData) {
		t.Errorf("wrong count: have %v", err)
	}
	if err := p.SetAllData(NewDataArrayOfFloats(7, 7), NewDataArrayOfFloats(8, 8), NewDataArrayOfFloats(9, 9)); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Value(0, 2); v != 9 {
		t.Errorf("have %g", v)
	}
	if _, err := p.Value(0, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("have %v", err)
	}
}

func TestProfilePointIndices(t *testing.T) {
	p := mustNPoint(t, []float32{1, 2, 3, 4}, 1, 2, 3, 4)
	for i := 0; i < 4; i++ {
		if err := p.SetPointIndex(i, 10+i); err != nil {
			t.Fatal(err)
		}
	}
	b := roaring.New()
	p.PointIndices(2.5, b)
	if !reflect.DeepEqual(b.ToArray(), []uint32{11, 12}) {
		t.Errorf("have %v", b.ToArray())
	}
	b.Clear()
	p.PointIndices(100, b)
	if !reflect.DeepEqual(b.ToArray(), []uint32{12, 13}) {
		t.Errorf("above top: have %v", b.ToArray())
	}

	w := make(map[int]float64)
	if err := p.Weights(w, 0, 2.25, 2, Linear); err != nil {
		t.Fatal(err)
	}
	want := map[int]float64{11: 1.5, 12: 0.5}
	if !reflect.DeepEqual(w, want) {
		t.Errorf("weights: have %v, want %v", w, want)
	}

	p.ResetPointIndices()
	if p.PointIndex(0) != -1 {
		t.Error("reset failed")
	}
	if err := p.Weights(w, 0, 2, 1, Linear); !errors.Is(err, ErrUnsupported) {
		t.Errorf("weights without points: have %v", err)
	}
}

func TestProfileString(t *testing.T) {
	p := mustNPoint(t, []float32{1, 2}, 3, 4)
	s := p.String()
	for _, want := range []string{"Type: NPOINT", "Layer Normal: null", "Data 1: 4 8"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q does not contain %q", s, want)
		}
	}
	if Surface.String() != "SURFACE" || ProfileType(9).String() != "ProfileType(9)" {
		t.Error("wrong profile type names")
	}
}
