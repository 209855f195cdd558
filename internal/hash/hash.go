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
along with geotess.  If not, see <http://www.gnu.org/licenses/>.*/

// Package hash computes content keys for models and profiles.
package hash

import (
	"fmt"
	"hash/fnv"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// BinaryWriter is implemented by objects that can write their content
// in a stable binary encoding.
type BinaryWriter interface {
	WriteBinary(w io.Writer) error
}

// Hash returns a hash key for the specified object. Objects implementing
// BinaryWriter are hashed over their binary encoding, so two objects
// with identical content share a key even if they were built
// differently. Other objects are hashed over a spew dump.
func Hash(object interface{}) string {
	h := fnv.New128a()
	if w, ok := object.(BinaryWriter); ok {
		if err := w.WriteBinary(h); err == nil {
			return fmt.Sprintf("%x", h.Sum(nil))
		}
		h.Reset()
	}
	printer := spew.ConfigState{
		Indent:                  " ",
		SortKeys:                true,
		DisableMethods:          true,
		SpewKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	printer.Fprintf(h, "%#v", object)
	return fmt.Sprintf("%x", h.Sum(nil))
}
