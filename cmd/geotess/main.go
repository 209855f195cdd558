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

// Command geotess is a command-line interface for geotess earth models.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/geotess/geotessutil"
)

func main() {
	if err := geotessutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
