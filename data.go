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
	"io"
	"strings"
)

// DataType specifies the primitive numeric representation used to
// store attribute values.
type DataType int

// These are the supported data types. The order matches the persisted
// type names and must not change.
const (
	TypeDouble DataType = iota
	TypeFloat
	TypeLong
	TypeInt
	TypeShort
	TypeByte
)

var dataTypeNames = []string{"DOUBLE", "FLOAT", "LONG", "INT", "SHORTINT", "BYTE"}

func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeNames) {
		return fmt.Sprintf("DataType(%d)", int(t))
	}
	return dataTypeNames[t]
}

// Size returns the number of bytes used to store one value of type t
// in the binary format.
func (t DataType) Size() int {
	switch t {
	case TypeDouble, TypeLong:
		return 8
	case TypeFloat, TypeInt:
		return 4
	case TypeShort:
		return 2
	case TypeByte:
		return 1
	default:
		return 0
	}
}

// ParseDataType returns the DataType with the given name. Matching is
// case-insensitive and SHORT is accepted as an alias for SHORTINT.
func ParseDataType(s string) (DataType, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	if u == "SHORT" {
		return TypeShort, nil
	}
	for i, n := range dataTypeNames {
		if n == u {
			return DataType(i), nil
		}
	}
	return 0, formatError("unknown data type %q", s)
}

// Data holds the attribute values associated with one node of a
// Profile. Every implementation stores its values in a single primitive
// type; accessors and setters convert to the requested type. Narrowing
// integer conversions wrap. Float to integer conversions truncate
// toward zero and saturate: NaN becomes 0, and values beyond the int32
// range (int64 for long) become its nearest bound before any further
// narrowing to short or byte.
//
// A one-element array is persisted exactly like a single value, so
// reading it back yields the single value kind with the same value.
//
// Index arguments must be in [0, Size()); otherwise an error wrapping
// ErrIndexOutOfRange is returned and nothing is modified.
type Data interface {
	// Type returns the type that backs the values.
	Type() DataType

	// Size returns the number of attribute values.
	Size() int

	// IsArray reports whether this is an array kind (as opposed to a
	// single value kind, which always has Size() == 1).
	IsArray() bool

	Double(attribute int) (float64, error)
	Float(attribute int) (float32, error)
	Long(attribute int) (int64, error)
	Int(attribute int) (int32, error)
	Short(attribute int) (int16, error)
	Byte(attribute int) (int8, error)

	SetDouble(attribute int, v float64) error
	SetFloat(attribute int, v float32) error
	SetLong(attribute int, v int64) error
	SetInt(attribute int, v int32) error
	SetShort(attribute int, v int16) error
	SetByte(attribute int, v int8) error

	// Fill sets every value to v converted to the backing type.
	Fill(v float64)

	// FillLong is like Fill but avoids the float64 round trip, so
	// long-backed values keep all 64 bits.
	FillLong(v int64)

	// IsNaN reports whether the value at attribute is NaN. Integer
	// backed values are never NaN. An invalid index reports true.
	IsNaN(attribute int) bool

	// Copy returns a deep copy.
	Copy() Data

	// Equal reports whether other has the same kind, the same size and
	// identical values.
	Equal(other Data) bool

	// String returns the values separated by single spaces.
	String() string

	// AttributeString returns the textual form of a single value.
	AttributeString(attribute int) (string, error)

	// WriteBinary writes every value in its fixed width big-endian
	// encoding, with no length prefix.
	WriteBinary(w io.Writer) error

	// WriteASCII writes String() to w.
	WriteASCII(w io.Writer) error
}

// NewData returns a zero-filled Data of type t holding n attribute
// values. A single value kind is returned when n is 1.
func NewData(t DataType, n int) (Data, error) {
	if n < 1 {
		return nil, fmt.Errorf("geotess: creating %s data with %d attributes: %w", t, n, ErrIndexOutOfRange)
	}
	switch t {
	case TypeDouble:
		return zeroValues[float64](n), nil
	case TypeFloat:
		return zeroValues[float32](n), nil
	case TypeLong:
		return zeroValues[int64](n), nil
	case TypeInt:
		return zeroValues[int32](n), nil
	case TypeShort:
		return zeroValues[int16](n), nil
	case TypeByte:
		return zeroValues[int8](n), nil
	default:
		return nil, formatError("unknown data type %d", int(t))
	}
}

// ReadDataASCII reads n whitespace separated values of type t from s.
func ReadDataASCII(s *Scanner, t DataType, n int) (Data, error) {
	switch t {
	case TypeDouble:
		return readValuesASCII[float64](s, n)
	case TypeFloat:
		return readValuesASCII[float32](s, n)
	case TypeLong:
		return readValuesASCII[int64](s, n)
	case TypeInt:
		return readValuesASCII[int32](s, n)
	case TypeShort:
		return readValuesASCII[int16](s, n)
	case TypeByte:
		return readValuesASCII[int8](s, n)
	default:
		return nil, formatError("unknown data type %d", int(t))
	}
}

// ReadDataBinary reads n big-endian values of type t from r.
func ReadDataBinary(r io.Reader, t DataType, n int) (Data, error) {
	switch t {
	case TypeDouble:
		return readValuesBinary[float64](r, n)
	case TypeFloat:
		return readValuesBinary[float32](r, n)
	case TypeLong:
		return readValuesBinary[int64](r, n)
	case TypeInt:
		return readValuesBinary[int32](r, n)
	case TypeShort:
		return readValuesBinary[int16](r, n)
	case TypeByte:
		return readValuesBinary[int8](r, n)
	default:
		return nil, formatError("unknown data type %d", int(t))
	}
}

// NewDataDouble returns a single double value.
func NewDataDouble(v float64) Data { return &dataValues[float64]{values: []float64{v}} }

// NewDataFloat returns a single float value.
func NewDataFloat(v float32) Data { return &dataValues[float32]{values: []float32{v}} }

// NewDataLong returns a single long value.
func NewDataLong(v int64) Data { return &dataValues[int64]{values: []int64{v}} }

// NewDataInt returns a single int value.
func NewDataInt(v int32) Data { return &dataValues[int32]{values: []int32{v}} }

// NewDataShort returns a single short value.
func NewDataShort(v int16) Data { return &dataValues[int16]{values: []int16{v}} }

// NewDataByte returns a single byte value.
func NewDataByte(v int8) Data { return &dataValues[int8]{values: []int8{v}} }

// NewDataArrayOfDoubles returns an array of doubles holding a copy of v.
// It panics if v is empty. An array of one value is read back from a
// file as a single value.
func NewDataArrayOfDoubles(v ...float64) Data { return newArray(v) }

// NewDataArrayOfFloats returns an array of floats holding a copy of v.
// It panics if v is empty.
func NewDataArrayOfFloats(v ...float32) Data { return newArray(v) }

// NewDataArrayOfLongs returns an array of longs holding a copy of v.
// It panics if v is empty.
func NewDataArrayOfLongs(v ...int64) Data { return newArray(v) }

// NewDataArrayOfInts returns an array of ints holding a copy of v.
// It panics if v is empty.
func NewDataArrayOfInts(v ...int32) Data { return newArray(v) }

// NewDataArrayOfShorts returns an array of shorts holding a copy of v.
// It panics if v is empty.
func NewDataArrayOfShorts(v ...int16) Data { return newArray(v) }

// NewDataArrayOfBytes returns an array of bytes holding a copy of v.
// It panics if v is empty.
func NewDataArrayOfBytes(v ...int8) Data { return newArray(v) }

// sameShape reports whether a and b can be stored in the same profile:
// same type, same arity and same number of attributes.
func sameShape(a, b Data) bool {
	return a.Type() == b.Type() && a.IsArray() == b.IsArray() && a.Size() == b.Size()
}

// checkData returns an error unless every element of data is non-nil
// and has the same shape as the first.
func checkData(data ...Data) error {
	for i, d := range data {
		if d == nil {
			return fmt.Errorf("geotess: data for node %d is nil: %w", i, ErrInconsistentData)
		}
		if !sameShape(data[0], d) {
			return fmt.Errorf("geotess: data for node %d is %s[%d], want %s[%d]: %w",
				i, d.Type(), d.Size(), data[0].Type(), data[0].Size(), ErrInconsistentData)
		}
	}
	return nil
}

func copyData(data []Data) []Data {
	o := make([]Data, len(data))
	for i, d := range data {
		o[i] = d.Copy()
	}
	return o
}

func equalData(a, b []Data) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
