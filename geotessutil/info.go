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
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spatialmodel/geotess"
)

var heading = color.New(color.FgCyan, color.Bold).SprintFunc()

// Info writes a description of m to w. If verbose is true, every profile
// is written as well.
func Info(w io.Writer, m *geotess.Model, verbose bool) error {
	md := m.MetaData
	fmt.Fprintln(w, heading("Model"))
	fmt.Fprintf(w, "  Description: %s\n", strings.ReplaceAll(md.Description, "\n", "\n               "))
	fmt.Fprintf(w, "  Software:    %s\n", md.Software)
	fmt.Fprintf(w, "  Data type:   %s\n", md.DataType)
	fmt.Fprintf(w, "  Vertices:    %d\n", m.NVertices())
	fmt.Fprintf(w, "  Points:      %d\n", m.NPoints())
	fmt.Fprintf(w, "  Hash:        %s\n", m.Hash())

	fmt.Fprintln(w, heading("Attributes"))
	for i, name := range md.AttributeNames {
		fmt.Fprintf(w, "  %d %s (%s)\n", i, name, md.AttributeUnits[i])
	}

	fmt.Fprintln(w, heading("Profiles"))
	types := []geotess.ProfileType{geotess.Empty, geotess.Thin, geotess.Constant,
		geotess.NPoint, geotess.Surface, geotess.SurfaceEmpty}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "  layer\t")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t", t)
	}
	fmt.Fprintln(tw)
	counts := make([][]int, m.NLayers())
	for _, layers := range m.Profiles() {
		for l, p := range layers {
			if counts[l] == nil {
				counts[l] = make([]int, len(types))
			}
			if p != nil {
				counts[l][p.Type()]++
			}
		}
	}
	for l, name := range md.LayerNames {
		fmt.Fprintf(tw, "  %s\t", name)
		for t := range types {
			n := 0
			if counts[l] != nil {
				n = counts[l][t]
			}
			fmt.Fprintf(tw, "%d\t", n)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !verbose {
		return nil
	}
	for v, layers := range m.Profiles() {
		for l, p := range layers {
			fmt.Fprintln(w, heading(fmt.Sprintf("Vertex %d layer %d (%s)", v, l, md.LayerNames[l])))
			if p == nil {
				fmt.Fprintln(w, "  unset")
				continue
			}
			fmt.Fprint(w, p)
		}
	}
	return nil
}
