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

package geotessutil

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spatialmodel/geotess/polygon"
)

// Contains writes to w one line per point holding its latitude, its
// longitude and whether it is within p at radius.
func Contains(w io.Writer, p polygon.Polygon, points [][2]float64, radius float64) error {
	n := 0
	for _, ll := range points {
		in := p.ContainsRadius(ll[0], ll[1], radius)
		if in {
			n++
		}
		if _, err := fmt.Fprintf(w, "%s %s %t\n",
			strconv.FormatFloat(ll[0], 'g', -1, 64),
			strconv.FormatFloat(ll[1], 'g', -1, 64), in); err != nil {
			return err
		}
	}
	Log.Debugf("geotess: %d of %d points are within the polygon", n, len(points))
	return nil
}
