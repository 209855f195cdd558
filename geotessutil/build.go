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
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geotess"
	"github.com/spatialmodel/geotess/polygon"
)

// Description describes a model to be built by Build.
type Description struct {
	Description string
	DataType    string

	Attributes []string
	Units      []string
	Layers     []string

	// Vertices is the number of vertices in the model.
	Vertices int

	// Locations optionally holds the latitude and longitude in degrees
	// of every vertex. It is required by profiles that use a polygon.
	Locations [][2]float64

	// Profiles are applied in order, so later entries replace
	// the profiles set by earlier ones.
	Profiles []ProfileDescription

	// dir is the directory of the description file, against which
	// relative polygon paths are resolved.
	dir string
}

// ProfileDescription describes the profiles of one layer at a set of
// vertices.
type ProfileDescription struct {
	// Layer is the name of the layer.
	Layer string

	// Vertices are the indices of the vertices to set. All vertices are
	// set when it is empty.
	Vertices []int

	// Polygon is an optional path to a polygon file. If it is given,
	// only vertices within the polygon are set.
	Polygon string

	// Type is the profile type, for example "NPOINT".
	Type string

	// Radii are the node radii in km, from the bottom of the layer up.
	Radii []float32

	// Values hold one row of attribute values per data node.
	Values [][]float64
}

// ReadDescription reads a TOML model description from path.
func ReadDescription(path string) (*Description, error) {
	if path == "" {
		return nil, fmt.Errorf("geotess: please specify a model description file")
	}
	d := new(Description)
	if _, err := toml.DecodeFile(path, d); err != nil {
		return nil, fmt.Errorf("geotess: problem reading model description: %v", err)
	}
	d.dir = filepath.Dir(path)
	return d, nil
}

// Build creates the model described by d. Every vertex must be given a
// profile in every layer.
func Build(d *Description) (*geotess.Model, error) {
	dt, err := geotess.ParseDataType(d.DataType)
	if err != nil {
		return nil, err
	}
	md := &geotess.MetaData{
		Description:    d.Description,
		AttributeNames: d.Attributes,
		AttributeUnits: d.Units,
		LayerNames:     d.Layers,
		DataType:       dt,
		Software:       "geotess v" + geotess.Version,
	}
	m, err := geotess.NewModel(md, d.Vertices)
	if err != nil {
		return nil, err
	}
	m.Log = Log
	if d.Locations != nil && len(d.Locations) != d.Vertices {
		return nil, fmt.Errorf("geotess: description has %d locations for %d vertices", len(d.Locations), d.Vertices)
	}

	for i, pd := range d.Profiles {
		if err := d.apply(m, pd); err != nil {
			return nil, fmt.Errorf("geotess: profile description %d: %w", i, err)
		}
	}

	for v, layers := range m.Profiles() {
		for l, p := range layers {
			if p == nil {
				return nil, fmt.Errorf("geotess: no profile was described for vertex %d in layer %s", v, md.LayerNames[l])
			}
		}
	}
	Log.WithFields(logrus.Fields{
		"vertices": m.NVertices(),
		"layers":   m.NLayers(),
		"points":   m.NPoints(),
	}).Info("geotess: built model")
	return m, nil
}

func (d *Description) apply(m *geotess.Model, pd ProfileDescription) error {
	md := m.MetaData
	layer := md.LayerIndex(pd.Layer)
	if layer < 0 {
		return fmt.Errorf("unknown layer %q", pd.Layer)
	}
	vertices := pd.Vertices
	if len(vertices) == 0 {
		vertices = make([]int, m.NVertices())
		for i := range vertices {
			vertices[i] = i
		}
	}
	if pd.Polygon != "" {
		var err error
		if vertices, err = d.within(pd.Polygon, vertices); err != nil {
			return err
		}
	}
	for _, v := range vertices {
		p, err := newProfile(md, pd)
		if err != nil {
			return err
		}
		if err := m.SetProfile(v, layer, p); err != nil {
			return err
		}
	}
	return nil
}

// within returns the vertices whose locations are inside the polygon in
// path.
func (d *Description) within(path string, vertices []int) ([]int, error) {
	if d.Locations == nil {
		return nil, fmt.Errorf("polygon %s needs vertex locations", path)
	}
	path = os.ExpandEnv(path)
	if !filepath.IsAbs(path) && d.dir != "" {
		path = filepath.Join(d.dir, path)
	}
	p, err := polygon.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o []int
	for _, v := range vertices {
		if v < 0 || v >= len(d.Locations) {
			return nil, fmt.Errorf("vertex %d is out of range [0, %d)", v, len(d.Locations))
		}
		if p.Contains(d.Locations[v][0], d.Locations[v][1]) {
			o = append(o, v)
		}
	}
	return o, nil
}

// newProfile creates a new profile every time it is called so that
// vertices do not share nodes.
func newProfile(md *geotess.MetaData, pd ProfileDescription) (geotess.Profile, error) {
	t, err := geotess.ParseProfileType(pd.Type)
	if err != nil {
		return nil, err
	}
	data := make([]geotess.Data, len(pd.Values))
	for i, row := range pd.Values {
		if len(row) != md.NAttributes() {
			return nil, fmt.Errorf("got %d values for %d attributes", len(row), md.NAttributes())
		}
		data[i], err = geotess.NewData(md.DataType, len(row))
		if err != nil {
			return nil, err
		}
		for a, x := range row {
			if err := data[i].SetDouble(a, x); err != nil {
				return nil, err
			}
		}
	}
	shape := func(nRadii, nData int) error {
		if len(pd.Radii) != nRadii || len(data) != nData {
			return fmt.Errorf("%s profiles need %d radii and %d rows of values but got %d and %d",
				t, nRadii, nData, len(pd.Radii), len(data))
		}
		return nil
	}
	switch t {
	case geotess.Empty:
		if err := shape(2, 0); err != nil {
			return nil, err
		}
		return geotess.NewProfileEmpty(pd.Radii[0], pd.Radii[1])
	case geotess.Thin:
		if err := shape(1, 1); err != nil {
			return nil, err
		}
		return geotess.NewProfileThin(pd.Radii[0], data[0])
	case geotess.Constant:
		if err := shape(2, 1); err != nil {
			return nil, err
		}
		return geotess.NewProfileConstant(pd.Radii[0], pd.Radii[1], data[0])
	case geotess.NPoint:
		if len(pd.Radii) < 2 {
			return nil, fmt.Errorf("NPOINT profiles need at least 2 radii but got %d", len(pd.Radii))
		}
		if err := shape(len(pd.Radii), len(pd.Radii)); err != nil {
			return nil, err
		}
		return geotess.NewProfileNPoint(pd.Radii, data)
	case geotess.Surface:
		if err := shape(0, 1); err != nil {
			return nil, err
		}
		return geotess.NewProfileSurface(data[0])
	case geotess.SurfaceEmpty:
		if err := shape(0, 0); err != nil {
			return nil, err
		}
		return geotess.NewProfileSurfaceEmpty(), nil
	}
	return nil, fmt.Errorf("unsupported profile type %s", t)
}
