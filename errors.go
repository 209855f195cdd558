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
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an attribute, node or radius
	// index is outside of the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupported is returned by operations that the receiving
	// profile shape cannot perform, such as replacing data in an
	// empty profile.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrRadiusOutOfRange is returned by radial interpolation when the
	// requested radius lies outside of the profile and out-of-range
	// queries have not been allowed.
	ErrRadiusOutOfRange = errors.New("radius out of range")

	// ErrInvalidProfile is returned when a profile cannot be constructed
	// from the supplied radii and data.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInconsistentData is returned when data supplied to a profile or
	// model disagree in type or size with the data already present.
	ErrInconsistentData = errors.New("inconsistent data")

	// ErrFormat is returned when an ascii or binary record is malformed,
	// truncated, or carries an unknown tag.
	ErrFormat = errors.New("format error")
)

func indexError(what string, i, n int) error {
	return fmt.Errorf("geotess: %s index %d not in [0, %d): %w", what, i, n, ErrIndexOutOfRange)
}

func formatError(format string, args ...interface{}) error {
	return fmt.Errorf("geotess: %s: %w", fmt.Sprintf(format, args...), ErrFormat)
}
