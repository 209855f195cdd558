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
	"strings"
)

// MetaData describes the attributes and layers shared by every profile
// of a model.
type MetaData struct {
	// Description is free text describing the model.
	Description string

	// AttributeNames and AttributeUnits name each attribute stored at
	// every data node, in storage order.
	AttributeNames []string
	AttributeUnits []string

	// DataType is the type used to store every attribute value.
	DataType DataType

	// LayerNames names the layers from the deepest to the shallowest.
	LayerNames []string

	// Software identifies the program that wrote the model.
	Software string
}

// NAttributes returns the number of attributes.
func (md *MetaData) NAttributes() int { return len(md.AttributeNames) }

// NLayers returns the number of layers.
func (md *MetaData) NLayers() int { return len(md.LayerNames) }

// AttributeIndex returns the index of the named attribute, or -1.
func (md *MetaData) AttributeIndex(name string) int {
	return indexOf(md.AttributeNames, name)
}

// LayerIndex returns the index of the named layer, or -1.
func (md *MetaData) LayerIndex(name string) int {
	return indexOf(md.LayerNames, name)
}

func indexOf(s []string, name string) int {
	for i, n := range s {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// Validate checks that the metadata describe at least one attribute and
// one layer and that names can be persisted.
func (md *MetaData) Validate() error {
	if len(md.AttributeNames) == 0 {
		return fmt.Errorf("geotess: metadata has no attributes")
	}
	if len(md.AttributeNames) != len(md.AttributeUnits) {
		return fmt.Errorf("geotess: metadata has %d attribute names and %d attribute units",
			len(md.AttributeNames), len(md.AttributeUnits))
	}
	if len(md.LayerNames) == 0 {
		return fmt.Errorf("geotess: metadata has no layers")
	}
	if md.DataType < TypeDouble || md.DataType > TypeByte {
		return fmt.Errorf("geotess: metadata has invalid data type %d", int(md.DataType))
	}
	for _, list := range [][]string{md.AttributeNames, md.AttributeUnits, md.LayerNames} {
		for _, n := range list {
			if strings.ContainsAny(n, ";\n") {
				return fmt.Errorf("geotess: metadata name %q may not contain ';' or a newline", n)
			}
		}
	}
	for i, n := range md.AttributeNames {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("geotess: attribute %d has no name", i)
		}
	}
	return nil
}

// checkProfile returns an error if the data of p do not match the
// metadata.
func (md *MetaData) checkProfile(p Profile) error {
	for i, d := range p.Data() {
		if d.Type() != md.DataType || d.Size() != md.NAttributes() {
			return fmt.Errorf("geotess: node %d holds %s[%d] but the model stores %s[%d]: %w",
				i, d.Type(), d.Size(), md.DataType, md.NAttributes(), ErrInconsistentData)
		}
	}
	return nil
}

// Equal reports whether md and o are identical.
func (md *MetaData) Equal(o *MetaData) bool {
	return md.Description == o.Description && md.DataType == o.DataType && md.Software == o.Software &&
		equalStrings(md.AttributeNames, o.AttributeNames) &&
		equalStrings(md.AttributeUnits, o.AttributeUnits) &&
		equalStrings(md.LayerNames, o.LayerNames)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinNames(s []string) string { return strings.Join(s, ";") }

func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	o := strings.Split(s, ";")
	for i := range o {
		o[i] = strings.TrimSpace(o[i])
	}
	return o
}
