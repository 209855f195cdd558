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
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/interp"
)

// InterpolatorType selects the rule used to blend node values when
// interpolating in radius.
type InterpolatorType int

// These are the radial interpolators.
const (
	// Linear interpolates linearly in radius between the two nodes that
	// bracket the requested radius.
	Linear InterpolatorType = iota
	// Nearest returns the value of the node closest to the requested
	// radius.
	Nearest
	// CubicSpline interpolates with a natural cubic spline through every
	// node of the profile.
	CubicSpline
)

var interpolatorNames = []string{"LINEAR", "NEAREST", "CUBIC_SPLINE"}

func (t InterpolatorType) String() string {
	if t < 0 || int(t) >= len(interpolatorNames) {
		return fmt.Sprintf("InterpolatorType(%d)", int(t))
	}
	return interpolatorNames[t]
}

// ParseInterpolatorType returns the interpolator with the given name.
func ParseInterpolatorType(s string) (InterpolatorType, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	switch u {
	case "CUBIC", "SPLINE":
		return CubicSpline, nil
	case "NEAREST_NEIGHBOR", "NN":
		return Nearest, nil
	}
	for i, n := range interpolatorNames {
		if n == u {
			return InterpolatorType(i), nil
		}
	}
	return 0, fmt.Errorf("geotess: unknown interpolator %q: %w", s, ErrUnsupported)
}

// clampRadius returns radius limited to [bottom, top], or an error if
// radius is outside that range and allowOutOfRange is false.
func clampRadius(bottom, top, radius float64, allowOutOfRange bool) (float64, error) {
	if radius >= bottom && radius <= top {
		return radius, nil
	}
	if !allowOutOfRange {
		return radius, fmt.Errorf("geotess: radius %g not in [%g, %g]: %w", radius, bottom, top, ErrRadiusOutOfRange)
	}
	if radius < bottom {
		return bottom, nil
	}
	return top, nil
}

// bracket returns the index i such that radii[i] <= radius <=
// radii[i+1]. radius must be within the range of radii and len(radii)
// must be at least 2.
func bracket(radii []float32, radius float64) int {
	j := sort.Search(len(radii), func(k int) bool { return float64(radii[k]) > radius })
	i := j - 1
	if i < 0 {
		i = 0
	}
	if i > len(radii)-2 {
		i = len(radii) - 2
	}
	return i
}

// closestNode returns the index of the radius closest to radius, ties
// going to the upper node.
func closestNode(radii []float32, radius float64) int {
	if len(radii) == 1 {
		return 0
	}
	if radius <= float64(radii[0]) {
		return 0
	}
	if radius >= float64(radii[len(radii)-1]) {
		return len(radii) - 1
	}
	i := bracket(radii, radius)
	return i + closestOfTwo(float64(radii[i]), float64(radii[i+1]), radius)
}

// linearWeights returns the weights of nodes i and i+1.
func linearWeights(radii []float32, i int, radius float64) (float64, float64) {
	r0, r1 := float64(radii[i]), float64(radii[i+1])
	if r1 == r0 {
		return 1, 0
	}
	w1 := (radius - r0) / (r1 - r0)
	return 1 - w1, w1
}

// radialCoefficients appends the node indices and weights that
// interpolate a profile with the given radii at radius. radii must be
// sorted and hold at least one element.
func radialCoefficients(interpType InterpolatorType, radii []float32, radius float64, allowOutOfRange bool,
	nodes []int, coeffs []float64) ([]int, []float64, error) {

	n := len(radii)
	r, err := clampRadius(float64(radii[0]), float64(radii[n-1]), radius, allowOutOfRange)
	if err != nil {
		return nodes, coeffs, err
	}
	if n == 1 {
		return append(nodes, 0), append(coeffs, 1), nil
	}

	switch interpType {
	case Nearest:
		return append(nodes, closestNode(radii, r)), append(coeffs, 1), nil
	case CubicSpline:
		if w, ok := splineWeights(radii, r); ok {
			for i, wi := range w {
				if wi != 0 {
					nodes = append(nodes, i)
					coeffs = append(coeffs, wi)
				}
			}
			return nodes, coeffs, nil
		}
		fallthrough
	case Linear:
		i := bracket(radii, r)
		w0, w1 := linearWeights(radii, i, r)
		return append(nodes, i, i+1), append(coeffs, w0, w1), nil
	default:
		return nodes, coeffs, fmt.Errorf("geotess: interpolator %s: %w", interpType, ErrUnsupported)
	}
}

// splineWeights returns the weight of every node for a natural cubic
// spline through radii evaluated at radius. A spline is linear in its
// node values, so the weight of node i is the spline through the i'th
// unit vector. ok is false when the radii cannot support a spline:
// fewer than three nodes or repeated radii.
func splineWeights(radii []float32, radius float64) (w []float64, ok bool) {
	n := len(radii)
	if n < 3 {
		return nil, false
	}
	xs := make([]float64, n)
	for i, r := range radii {
		xs[i] = float64(r)
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, false
		}
	}
	ys := make([]float64, n)
	w = make([]float64, n)
	var spline interp.NaturalCubic
	for i := range ys {
		ys[i] = 1
		if err := spline.Fit(xs, ys); err != nil {
			return nil, false
		}
		w[i] = spline.Predict(radius)
		ys[i] = 0
	}
	return w, true
}

// weightedValue returns sum(coeffs[k] * data[nodes[k]][attribute]).
func weightedValue(data []Data, attribute int, nodes []int, coeffs []float64) (float64, error) {
	var v float64
	for k, node := range nodes {
		x, err := data[node].Double(attribute)
		if err != nil {
			return math.NaN(), err
		}
		v += coeffs[k] * x
	}
	return v, nil
}
