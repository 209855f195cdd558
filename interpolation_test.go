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
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

func TestNearest(t *testing.T) {
	p := mustNPoint(t, []float32{0, 10, 20}, 1, 2, 3)
	for _, test := range []struct {
		r    float64
		want float64
	}{{0, 1}, {4.9, 1}, {5, 2}, {14, 2}, {15, 3}, {20, 3}} {
		v, err := p.ValueAtRadius(Nearest, 0, test.r, false)
		if err != nil {
			t.Fatal(err)
		}
		if v != test.want {
			t.Errorf("radius %g: have %g, want %g", test.r, v, test.want)
		}
	}
}

func TestCubicSpline(t *testing.T) {
	radii := []float32{0, 1, 3, 4, 7}
	values := []float64{0, 2, 1, 5, 3}
	data := make([]Data, len(values))
	xs := make([]float64, len(radii))
	for i, v := range values {
		data[i] = NewDataDouble(v)
		xs[i] = float64(radii[i])
	}
	p, err := NewProfileNPoint(radii, data)
	if err != nil {
		t.Fatal(err)
	}
	var spline interp.NaturalCubic
	if err := spline.Fit(xs, values); err != nil {
		t.Fatal(err)
	}
	for _, r := range []float64{0, 0.5, 2, 3.3, 6.9, 7} {
		v, err := p.ValueAtRadius(CubicSpline, 0, r, false)
		if err != nil {
			t.Fatal(err)
		}
		want := spline.Predict(r)
		if math.Abs(v-want) > testTolerance {
			t.Errorf("radius %g: have %g, want %g", r, v, want)
		}
		_, coeffs, err := p.AppendCoefficients(CubicSpline, r, false, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if sum := floats.Sum(coeffs); math.Abs(sum-1) > testTolerance {
			t.Errorf("radius %g: coefficients sum to %g", r, sum)
		}
	}
}

func TestCubicSplineFallsBackToLinear(t *testing.T) {
	two := mustNPoint(t, []float32{0, 10}, 0, 10)
	v, err := two.ValueAtRadius(CubicSpline, 0, 2.5, false)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2.5 {
		t.Errorf("two nodes: have %g, want 2.5", v)
	}

	repeated := mustNPoint(t, []float32{0, 5, 5, 10}, 0, 5, 7, 12)
	v, err = repeated.ValueAtRadius(CubicSpline, 0, 7.5, false)
	if err != nil {
		t.Fatal(err)
	}
	if v != 9.5 {
		t.Errorf("repeated radii: have %g, want 9.5", v)
	}
}

func TestDegenerateInterval(t *testing.T) {
	nodes, coeffs, err := radialCoefficients(Linear, []float32{5, 5}, 5, false, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(nodes, []int{0, 1}) || !reflect.DeepEqual(coeffs, []float64{1, 0}) {
		t.Errorf("have %v %v", nodes, coeffs)
	}
}

func TestAppendCoefficients(t *testing.T) {
	p := mustNPoint(t, []float32{0, 10, 20}, 1, 2, 3)
	nodes, coeffs, err := p.AppendCoefficients(Linear, 12, false, []int{7}, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(nodes, []int{7, 1, 2}) {
		t.Errorf("nodes: have %v", nodes)
	}
	want := []float64{0.5, 0.8, 0.2}
	for i := range want {
		if different(coeffs[i], want[i], testTolerance) {
			t.Errorf("coefficient %d: have %g, want %g", i, coeffs[i], want[i])
		}
	}
	if _, _, err := p.AppendCoefficients(Linear, -1, false, nil, nil); !errors.Is(err, ErrRadiusOutOfRange) {
		t.Errorf("have %v", err)
	}
	if _, _, err := p.AppendCoefficients(InterpolatorType(8), 5, false, nil, nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("have %v", err)
	}
}

func TestParseInterpolatorType(t *testing.T) {
	for s, want := range map[string]InterpolatorType{
		"linear":       Linear,
		"NEAREST":      Nearest,
		"nn":           Nearest,
		"cubic_spline": CubicSpline,
		"Spline":       CubicSpline,
	} {
		have, err := ParseInterpolatorType(s)
		if err != nil || have != want {
			t.Errorf("%s: have %s, %v; want %s", s, have, err, want)
		}
	}
	if _, err := ParseInterpolatorType("bilinear"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("have %v", err)
	}
}
