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

	"github.com/RoaringBitmap/roaring/v2"
)

// PointMap records where each point of a model lives. A point is a
// (vertex, layer, node) triple holding one Data; points are numbered
// contiguously from 0.
type PointMap struct {
	points [][3]int // vertex, layer, node
	first  [][]int  // first point of each vertex and layer, -1 if none
}

// AssignPointIndices numbers every data node of profiles, which is
// indexed by vertex and then layer. Vertices are visited in order, then
// layers from the bottom up, then nodes from the bottom up. Profiles
// without data receive no points. Existing indices are discarded first,
// so repeated calls on an unchanged structure give identical results.
// The caller must hold exclusive access to profiles.
func AssignPointIndices(profiles [][]Profile) *PointMap {
	pm := &PointMap{first: make([][]int, len(profiles))}
	for v, layers := range profiles {
		pm.first[v] = make([]int, len(layers))
		for l, p := range layers {
			pm.first[v][l] = -1
			if p == nil {
				continue
			}
			p.ResetPointIndices()
			for n := 0; n < p.NData(); n++ {
				if n == 0 {
					pm.first[v][l] = len(pm.points)
				}
				p.SetPointIndex(n, len(pm.points))
				pm.points = append(pm.points, [3]int{v, l, n})
			}
		}
	}
	return pm
}

// Size returns the number of points.
func (pm *PointMap) Size() int { return len(pm.points) }

// Point returns the vertex, layer and node of point i.
func (pm *PointMap) Point(i int) (vertex, layer, node int, err error) {
	if i < 0 || i >= len(pm.points) {
		return -1, -1, -1, indexError("point", i, len(pm.points))
	}
	p := pm.points[i]
	return p[0], p[1], p[2], nil
}

// PointIndex returns the point at a vertex, layer and node, or -1 if
// there is none.
func (pm *PointMap) PointIndex(vertex, layer, node int) int {
	if vertex < 0 || vertex >= len(pm.first) || layer < 0 || layer >= len(pm.first[vertex]) {
		return -1
	}
	first := pm.first[vertex][layer]
	if first < 0 || node < 0 {
		return -1
	}
	i := first + node
	if i >= len(pm.points) || pm.points[i] != [3]int{vertex, layer, node} {
		return -1
	}
	return i
}

// Check verifies that the point indices held by profiles agree with
// the map: every data node has exactly one point, points are
// contiguous from 0, and profiles without data report -1.
func (pm *PointMap) Check(profiles [][]Profile) error {
	seen := roaring.New()
	for v, layers := range profiles {
		for l, p := range layers {
			if p == nil {
				continue
			}
			if p.NData() == 0 && p.PointIndex(0) != -1 {
				return fmt.Errorf("geotess: vertex %d layer %d has no data but point index %d", v, l, p.PointIndex(0))
			}
			for n := 0; n < p.NData(); n++ {
				i := p.PointIndex(n)
				if i < 0 || i >= len(pm.points) {
					return fmt.Errorf("geotess: vertex %d layer %d node %d has invalid point index %d", v, l, n, i)
				}
				if !seen.CheckedAdd(uint32(i)) {
					return fmt.Errorf("geotess: point index %d is assigned more than once", i)
				}
				if pm.points[i] != [3]int{v, l, n} {
					return fmt.Errorf("geotess: point %d maps to %v but is held by vertex %d layer %d node %d",
						i, pm.points[i], v, l, n)
				}
			}
		}
	}
	if n := int(seen.GetCardinality()); n != len(pm.points) {
		seen.Flip(0, uint64(len(pm.points)))
		return fmt.Errorf("geotess: point index %d is not held by any profile", seen.Minimum())
	}
	return nil
}
