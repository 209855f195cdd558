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
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geotess"
	"gonum.org/v1/gonum/floats"
)

// ExtractOptions control Extract.
type ExtractOptions struct {
	// Layer is the index of the layer to evaluate.
	Layer int

	// Radius is the radius in km at which to evaluate the layer.
	Radius float64

	Interpolator    geotess.InterpolatorType
	AllowOutOfRange bool

	// Expressions gives derived quantities (as values) and their names
	// (as keys). Expressions can refer to the model attributes by name.
	Expressions map[string]string
}

// expressionFunctions are the functions available to derived
// quantities.
var expressionFunctions = map[string]govaluate.ExpressionFunction{
	"exp":  unary("exp", math.Exp),
	"log":  unary("log", math.Log),
	"sqrt": unary("sqrt", math.Sqrt),
	"abs":  unary("abs", math.Abs),
}

func unary(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("geotess: got %d arguments for function '%s', but needs 1", len(args), name)
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("geotess: invalid argument %v for function '%s'", args[0], name)
		}
		return f(x), nil
	}
}

// Extract writes to w a tab separated table with one row per vertex of m
// holding the value of every attribute, and of every derived quantity,
// in the chosen layer at the chosen radius. A final row holds the mean
// of each column over the vertices where it is defined.
func Extract(w io.Writer, m *geotess.Model, o ExtractOptions) error {
	md := m.MetaData
	names := make([]string, 0, len(o.Expressions))
	for name := range o.Expressions {
		names = append(names, name)
	}
	sort.Strings(names)
	expressions := make([]*govaluate.EvaluableExpression, len(names))
	// vars maps the attribute names as spelled in the expressions, which
	// match the model case-insensitively, to attribute indices.
	vars := make(map[string]int)
	for i, name := range names {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(o.Expressions[name], expressionFunctions)
		if err != nil {
			return fmt.Errorf("geotess: expression %s: %v", name, err)
		}
		for _, v := range e.Vars() {
			a := md.AttributeIndex(v)
			if a < 0 {
				return fmt.Errorf("geotess: expression %s refers to unknown attribute %q", name, v)
			}
			vars[v] = a
		}
		expressions[i] = e
	}

	header := append([]string{"vertex"}, md.AttributeNames...)
	header = append(header, names...)
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}

	nCols := md.NAttributes() + len(names)
	columns := make([][]float64, nCols)
	row := make([]float64, nCols)
	params := make(map[string]interface{}, len(vars))
	for v := 0; v < m.NVertices(); v++ {
		for a := range md.AttributeNames {
			x, err := m.ValueAtRadius(v, o.Layer, o.Interpolator, a, o.Radius, o.AllowOutOfRange)
			if err != nil {
				return fmt.Errorf("geotess: vertex %d: %w", v, err)
			}
			row[a] = x
		}
		for name, a := range vars {
			params[name] = row[a]
		}
		for i, e := range expressions {
			r, err := e.Evaluate(params)
			if err != nil {
				return fmt.Errorf("geotess: vertex %d: evaluating %s: %v", v, names[i], err)
			}
			x, ok := r.(float64)
			if !ok {
				return fmt.Errorf("geotess: expression %s evaluates to %v, which is not a number", names[i], r)
			}
			row[md.NAttributes()+i] = x
		}
		if err := writeRow(w, strconv.Itoa(v), row); err != nil {
			return err
		}
		for i, x := range row {
			if !math.IsNaN(x) {
				columns[i] = append(columns[i], x)
			}
		}
	}

	mean := make([]float64, nCols)
	for i, c := range columns {
		if len(c) == 0 {
			mean[i] = math.NaN()
			continue
		}
		mean[i] = floats.Sum(c) / float64(len(c))
	}
	Log.WithFields(logrus.Fields{
		"layer":    md.LayerNames[o.Layer],
		"radius":   o.Radius,
		"vertices": m.NVertices(),
	}).Debug("geotess: extracted layer")
	return writeRow(w, "mean", mean)
}

func writeRow(w io.Writer, label string, row []float64) error {
	s := make([]string, len(row)+1)
	s[0] = label
	for i, x := range row {
		s[i+1] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	_, err := fmt.Fprintln(w, strings.Join(s, "\t"))
	return err
}
