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

// Package polygon reads geographic regions used to select the parts of
// a model to extract or modify.
package polygon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
)

// EarthRadius is the mean radius of the earth in km, used to convert
// depths to radii.
const EarthRadius = 6371.

// Polygon is a region of the earth.
type Polygon interface {
	// Contains reports whether the point at lat and lon, in degrees, is
	// inside the region. Points on the boundary are inside.
	Contains(lat, lon float64) bool

	// ContainsRadius is like Contains but also checks a radius in km.
	ContainsRadius(lat, lon, radius float64) bool
}

// Polygon2D is a region of the surface of the earth bounded by a ring of
// points. Radius is ignored.
type Polygon2D struct {
	// Boundary holds the ring with X = longitude and Y = latitude, in
	// degrees.
	Boundary geom.Polygon

	// complement is true when the region is everything outside of the
	// boundary.
	complement bool
}

// New returns a polygon bounded by points, given as longitude and
// latitude in degrees.
func New(points []geom.Point) (*Polygon2D, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon: boundary needs at least 3 points, got %d", len(points))
	}
	ring := make([]geom.Point, len(points))
	copy(ring, points)
	return &Polygon2D{Boundary: geom.Polygon{ring}}, nil
}

// SetReference declares whether the point at lat and lon is inside the
// region. When the declaration disagrees with the boundary, the region
// becomes the area outside of the boundary.
func (p *Polygon2D) SetReference(lat, lon float64, inside bool) {
	p.complement = false
	p.complement = p.Contains(lat, lon) != inside
}

// Contains implements Polygon.
func (p *Polygon2D) Contains(lat, lon float64) bool {
	status := geom.Point{X: lon, Y: lat}.Within(p.Boundary)
	if status == geom.OnEdge {
		return true
	}
	return (status == geom.Inside) != p.complement
}

// ContainsRadius implements Polygon.
func (p *Polygon2D) ContainsRadius(lat, lon, radius float64) bool {
	return p.Contains(lat, lon)
}

// Horizon is a surface of constant radius or constant depth.
type Horizon struct {
	Depth bool
	Value float64
}

// Radius returns the radius of the horizon in km.
func (h Horizon) Radius() float64 {
	if h.Depth {
		return EarthRadius - h.Value
	}
	return h.Value
}

func (h Horizon) String() string {
	if h.Depth {
		return fmt.Sprintf("depth %g", h.Value)
	}
	return fmt.Sprintf("radius %g", h.Value)
}

// Polygon3D is a Polygon2D limited in radius by a top and a bottom
// horizon.
type Polygon3D struct {
	*Polygon2D
	Top, Bottom Horizon
}

// ContainsRadius implements Polygon.
func (p *Polygon3D) ContainsRadius(lat, lon, radius float64) bool {
	return radius >= p.Bottom.Radius() && radius <= p.Top.Radius() && p.Contains(lat, lon)
}

// ReadFile reads the polygon in path. Files with a kml or kmz extension
// are read as Google Earth files and only the first polygon is
// returned. Others are read as ascii records; see Read.
func ReadFile(path string) (Polygon, error) {
	polygons, err := ReadPolygons(path)
	if err != nil {
		return nil, err
	}
	return polygons[0], nil
}

// ReadPolygons reads every polygon in path.
func ReadPolygons(path string) ([]Polygon, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("polygon: %v", err)
		}
		defer f.Close()
		return ReadKML(f)
	case ".kmz":
		return readKMZ(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("polygon: %v", err)
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("polygon: reading %s: %w", path, err)
	}
	return []Polygon{p}, nil
}

// Read reads a polygon from ascii records, one per line:
//
//   - records starting with '#' and blank records are ignored;
//   - a first record of POLYGON3D selects a Polygon3D, whose records
//     "top" and "bottom" give the horizons as "radius <km>" or
//     "depth <km>";
//   - a record starting with "lat" or "lon" sets the coordinate order of
//     the records that follow, latitude first by default;
//   - "reference <a> <b> <in|out>" declares a reference point;
//   - every other record is a boundary point. Tokens may be separated by
//     whitespace or commas.
func Read(r io.Reader) (Polygon, error) {
	var (
		points     []geom.Point
		lonFirst   bool
		reference  []float64
		refInside  bool
		is3D       bool
		top        *Horizon
		bottom     *Horizon
		first      = true
		lineNumber int
	)
	s := bufio.NewScanner(r)
	for s.Scan() {
		lineNumber++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ' ' || c == '\t' || c == ','
		})
		key := strings.ToLower(fields[0])
		if first {
			first = false
			if strings.HasPrefix(key, "polygon3d") {
				is3D = true
				continue
			}
		}
		switch {
		case key == "top" || key == "bottom":
			if !is3D {
				return nil, fmt.Errorf("line %d: %s horizon in a 2D polygon", lineNumber, key)
			}
			h, err := parseHorizon(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", lineNumber, err)
			}
			if key == "top" {
				top = &h
			} else {
				bottom = &h
			}
		case strings.HasPrefix(key, "lat"):
			lonFirst = false
		case strings.HasPrefix(key, "lon"):
			lonFirst = true
		case strings.HasPrefix(key, "reference"):
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: reference needs 3 values", lineNumber)
			}
			v, err := parseFloats(fields[1:3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", lineNumber, err)
			}
			reference = v
			refInside = strings.HasPrefix(strings.ToLower(fields[3]), "in")
		default:
			v, err := parseFloats(fields)
			if err != nil || len(v) < 2 {
				return nil, fmt.Errorf("line %d: invalid point %q", lineNumber, line)
			}
			lat, lon := v[0], v[1]
			if lonFirst {
				lat, lon = lon, lat
			}
			points = append(points, geom.Point{X: lon, Y: lat})
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	p, err := New(points)
	if err != nil {
		return nil, err
	}
	if reference != nil {
		lat, lon := reference[0], reference[1]
		if lonFirst {
			lat, lon = lon, lat
		}
		p.SetReference(lat, lon, refInside)
	}
	if !is3D {
		return p, nil
	}
	if top == nil || bottom == nil {
		return nil, fmt.Errorf("3D polygon needs top and bottom horizons")
	}
	if top.Radius() < bottom.Radius() {
		return nil, fmt.Errorf("top horizon (%s) is below bottom horizon (%s)", top, bottom)
	}
	return &Polygon3D{Polygon2D: p, Top: *top, Bottom: *bottom}, nil
}

func parseHorizon(fields []string) (Horizon, error) {
	if len(fields) != 2 {
		return Horizon{}, fmt.Errorf("horizon needs a kind and a value")
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Horizon{}, fmt.Errorf("invalid horizon value %q", fields[1])
	}
	switch strings.ToLower(fields[0]) {
	case "radius":
		return Horizon{Value: v}, nil
	case "depth":
		return Horizon{Depth: true, Value: v}, nil
	default:
		return Horizon{}, fmt.Errorf("invalid horizon kind %q", fields[0])
	}
}

func parseFloats(fields []string) ([]float64, error) {
	v := make([]float64, len(fields))
	for i, f := range fields {
		var err error
		if v[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, err
		}
	}
	return v, nil
}
