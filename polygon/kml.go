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

package polygon

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ctessum/geom"
)

// ReadKML returns a polygon for the outer boundary of every Polygon
// element in a KML document, in document order.
func ReadKML(r io.Reader) ([]Polygon, error) {
	dec := xml.NewDecoder(r)
	var (
		polygons []Polygon
		inOuter  int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("polygon: reading kml: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "outerBoundaryIs":
				inOuter++
			case "coordinates":
				if inOuter == 0 {
					continue
				}
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, fmt.Errorf("polygon: reading kml: %v", err)
				}
				points, err := parseCoordinates(text)
				if err != nil {
					return nil, err
				}
				p, err := New(points)
				if err != nil {
					return nil, err
				}
				polygons = append(polygons, p)
			}
		case xml.EndElement:
			if t.Name.Local == "outerBoundaryIs" {
				inOuter--
			}
		}
	}
	if len(polygons) == 0 {
		return nil, fmt.Errorf("polygon: kml document holds no polygons")
	}
	return polygons, nil
}

// parseCoordinates parses a KML coordinate list: whitespace separated
// tuples of lon,lat[,altitude].
func parseCoordinates(text string) ([]geom.Point, error) {
	var points []geom.Point
	for _, tuple := range strings.Fields(text) {
		v, err := parseFloats(strings.Split(tuple, ","))
		if err != nil || len(v) < 2 {
			return nil, fmt.Errorf("polygon: invalid kml coordinate %q", tuple)
		}
		points = append(points, geom.Point{X: v[0], Y: v[1]})
	}
	return points, nil
}

// readKMZ reads the first kml document in a kmz archive.
func readKMZ(path string) ([]Polygon, error) {
	z, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("polygon: %v", err)
	}
	defer z.Close()
	for _, f := range z.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".kml") {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("polygon: %v", err)
		}
		defer r.Close()
		return ReadKML(r)
	}
	return nil, fmt.Errorf("polygon: %s holds no kml document", path)
}
