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
	"reflect"
	"testing"
)

// testColumns returns two vertices with three layers each, mixing
// profiles with and without data.
func testColumns(t *testing.T) [][]Profile {
	empty, _ := NewProfileEmpty(0, 1221.5)
	constant, _ := NewProfileConstant(1221.5, 3480, NewDataArrayOfFloats(1, 2))
	thin, _ := NewProfileThin(6371, NewDataArrayOfFloats(3, 4))
	return [][]Profile{
		{empty, mustNPoint(t, []float32{1221.5, 2000, 3480}, 5, 6, 7), thin},
		{constant.Copy(), constant, empty.Copy()},
	}
}

func pointIndices(profiles [][]Profile) [][][]int {
	o := make([][][]int, len(profiles))
	for v, layers := range profiles {
		o[v] = make([][]int, len(layers))
		for l, p := range layers {
			for n := 0; n < p.NData(); n++ {
				o[v][l] = append(o[v][l], p.PointIndex(n))
			}
		}
	}
	return o
}

func TestAssignPointIndices(t *testing.T) {
	profiles := testColumns(t)
	pm := AssignPointIndices(profiles)
	if pm.Size() != 6 {
		t.Fatalf("size: have %d, want 6", pm.Size())
	}
	want := [][][]int{
		{nil, {0, 1, 2}, {3}},
		{{4}, {5}, nil},
	}
	have := pointIndices(profiles)
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
	if err := pm.Check(profiles); err != nil {
		t.Error(err)
	}

	v, l, n, err := pm.Point(2)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 || l != 1 || n != 2 {
		t.Errorf("point 2: have %d %d %d", v, l, n)
	}
	if _, _, _, err := pm.Point(6); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("have %v", err)
	}
	for i := 0; i < pm.Size(); i++ {
		v, l, n, _ := pm.Point(i)
		if pm.PointIndex(v, l, n) != i {
			t.Errorf("point %d does not map back to itself", i)
		}
	}
	if pm.PointIndex(0, 0, 0) != -1 || pm.PointIndex(1, 0, 1) != -1 || pm.PointIndex(5, 0, 0) != -1 {
		t.Error("missing points should be -1")
	}
}

func TestAssignPointIndicesIsIdempotent(t *testing.T) {
	profiles := testColumns(t)
	first := AssignPointIndices(profiles)
	want := pointIndices(profiles)

	// Scramble the indices; reassignment must discard them.
	profiles[0][1].SetPointIndex(1, 99)
	profiles[1][0].SetPointIndex(0, 0)
	if err := first.Check(profiles); err == nil {
		t.Error("Check should detect scrambled indices")
	}

	second := AssignPointIndices(profiles)
	if !reflect.DeepEqual(pointIndices(profiles), want) {
		t.Errorf("have %v, want %v", pointIndices(profiles), want)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("point maps differ")
	}
}

func TestAssignPointIndicesEmpty(t *testing.T) {
	pm := AssignPointIndices(nil)
	if pm.Size() != 0 {
		t.Errorf("have %d", pm.Size())
	}
	e, _ := NewProfileEmpty(0, 1)
	pm = AssignPointIndices([][]Profile{{e, NewProfileSurfaceEmpty()}})
	if pm.Size() != 0 || pm.PointIndex(0, 0, 0) != -1 {
		t.Error("profiles without data receive no points")
	}
}
