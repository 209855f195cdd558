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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/geotess"
	"github.com/spf13/cast"
)

// load reads the model in path, which can include environment variables.
func load(path string) (*geotess.Model, error) {
	path = os.ExpandEnv(path)
	if path == "" {
		return nil, fmt.Errorf("geotess: please specify an input model file")
	}
	m, err := geotess.Load(path)
	if err != nil {
		return nil, err
	}
	m.Log = Log
	return m, nil
}

// checkOutputFile expands environment variables in the output file
// path and makes sure its directory exists.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("geotess: please specify an output file")
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if err := os.MkdirAll(outdir, os.ModePerm); err != nil {
		return "", fmt.Errorf("geotess: problem creating output directory: %v", err)
	}
	return f, nil
}

// layerIndex returns the index of a layer given by name or by index.
func layerIndex(md *geotess.MetaData, layer string) (int, error) {
	if i := md.LayerIndex(layer); i >= 0 {
		return i, nil
	}
	i, err := strconv.Atoi(layer)
	if err != nil || i < 0 || i >= md.NLayers() {
		return -1, fmt.Errorf("geotess: invalid layer %q; the model has layers %s",
			layer, strings.Join(md.LayerNames, ", "))
	}
	return i, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("geotess: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("geotess: invalid type for variable %s: %#v", varName, i)
	}
}

// parsePoints parses points written as "lat,lon" and separated by
// semicolons.
func parsePoints(s string) ([][2]float64, error) {
	var points [][2]float64
	for _, p := range strings.Split(s, ";") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		ll := strings.Split(p, ",")
		if len(ll) != 2 {
			return nil, fmt.Errorf("geotess: invalid point %q", p)
		}
		var point [2]float64
		for i, v := range ll {
			f, err := cast.ToFloat64E(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("geotess: invalid point %q: %v", p, err)
			}
			point[i] = f
		}
		points = append(points, point)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("geotess: please specify at least one point")
	}
	return points, nil
}
