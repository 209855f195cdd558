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
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// number is the set of primitive types that can back a Data.
type number interface {
	int8 | int16 | int32 | int64 | float32 | float64
}

// dataValues implements Data for every backing type. Single value kinds
// have array == false and exactly one element.
type dataValues[T number] struct {
	values []T
	array  bool
}

func zeroValues[T number](n int) *dataValues[T] {
	return &dataValues[T]{values: make([]T, n), array: n > 1}
}

func newArray[T number](v []T) *dataValues[T] {
	if len(v) == 0 {
		panic("geotess: array data must hold at least one value")
	}
	values := make([]T, len(v))
	copy(values, v)
	return &dataValues[T]{values: values, array: true}
}

// convert converts v to T. Float to integer conversions saturate at the
// int32 bounds (int64 for T int64) and map NaN to 0; shorter integer
// types then wrap. Every other conversion follows Go rules.
func convert[T, S number](v S) T {
	switch f := any(v).(type) {
	case float64:
		return fromFloat[T](f)
	case float32:
		return fromFloat[T](float64(f))
	}
	return T(v)
}

func fromFloat[T number](f float64) T {
	var z T
	switch any(z).(type) {
	case int64:
		return any(saturate64(f)).(T)
	case int32:
		return any(saturate32(f)).(T)
	case int16:
		return any(int16(saturate32(f))).(T)
	case int8:
		return any(int8(saturate32(f))).(T)
	}
	return T(f)
}

func saturate32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

func saturate64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func typeOf[T number]() DataType {
	var z T
	switch any(z).(type) {
	case float64:
		return TypeDouble
	case float32:
		return TypeFloat
	case int64:
		return TypeLong
	case int32:
		return TypeInt
	case int16:
		return TypeShort
	default:
		return TypeByte
	}
}

func (d *dataValues[T]) Type() DataType { return typeOf[T]() }
func (d *dataValues[T]) Size() int      { return len(d.values) }
func (d *dataValues[T]) IsArray() bool  { return d.array }

func (d *dataValues[T]) check(i int) error {
	if i < 0 || i >= len(d.values) {
		return indexError("attribute", i, len(d.values))
	}
	return nil
}

func (d *dataValues[T]) Double(i int) (float64, error) {
	if err := d.check(i); err != nil {
		return math.NaN(), err
	}
	return float64(d.values[i]), nil
}

func (d *dataValues[T]) Float(i int) (float32, error) {
	if err := d.check(i); err != nil {
		return float32(math.NaN()), err
	}
	return float32(d.values[i]), nil
}

func (d *dataValues[T]) Long(i int) (int64, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}
	return convert[int64](d.values[i]), nil
}

func (d *dataValues[T]) Int(i int) (int32, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}
	return convert[int32](d.values[i]), nil
}

func (d *dataValues[T]) Short(i int) (int16, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}
	return convert[int16](d.values[i]), nil
}

func (d *dataValues[T]) Byte(i int) (int8, error) {
	if err := d.check(i); err != nil {
		return 0, err
	}
	return convert[int8](d.values[i]), nil
}

func (d *dataValues[T]) SetDouble(i int, v float64) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.values[i] = convert[T](v)
	return nil
}

func (d *dataValues[T]) SetFloat(i int, v float32) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.values[i] = convert[T](v)
	return nil
}

func (d *dataValues[T]) SetLong(i int, v int64) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.values[i] = T(v)
	return nil
}

func (d *dataValues[T]) SetInt(i int, v int32) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.values[i] = T(v)
	return nil
}

func (d *dataValues[T]) SetShort(i int, v int16) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.values[i] = T(v)
	return nil
}

func (d *dataValues[T]) SetByte(i int, v int8) error {
	if err := d.check(i); err != nil {
		return err
	}
	d.values[i] = T(v)
	return nil
}

func (d *dataValues[T]) Fill(v float64) {
	x := convert[T](v)
	for i := range d.values {
		d.values[i] = x
	}
}

func (d *dataValues[T]) FillLong(v int64) {
	for i := range d.values {
		d.values[i] = T(v)
	}
}

func (d *dataValues[T]) IsNaN(i int) bool {
	if d.check(i) != nil {
		return true
	}
	return math.IsNaN(float64(d.values[i]))
}

func (d *dataValues[T]) Copy() Data {
	values := make([]T, len(d.values))
	copy(values, d.values)
	return &dataValues[T]{values: values, array: d.array}
}

func (d *dataValues[T]) Equal(other Data) bool {
	o, ok := other.(*dataValues[T])
	if !ok || o == nil || o.array != d.array || len(o.values) != len(d.values) {
		return false
	}
	for i, v := range d.values {
		// Compare bit patterns for floats so that identical NaNs match,
		// as they do after a round trip through a file.
		if !sameBits(v, o.values[i]) {
			return false
		}
	}
	return true
}

func (d *dataValues[T]) String() string {
	s := make([]string, len(d.values))
	for i, v := range d.values {
		s[i] = formatValue(v)
	}
	return strings.Join(s, " ")
}

func (d *dataValues[T]) AttributeString(i int) (string, error) {
	if err := d.check(i); err != nil {
		return "", err
	}
	return formatValue(d.values[i]), nil
}

func (d *dataValues[T]) WriteBinary(w io.Writer) error {
	if err := binary.Write(w, binary.BigEndian, d.values); err != nil {
		return fmt.Errorf("geotess: writing %s data: %v", d.Type(), err)
	}
	return nil
}

func (d *dataValues[T]) WriteASCII(w io.Writer) error {
	if _, err := io.WriteString(w, d.String()); err != nil {
		return fmt.Errorf("geotess: writing %s data: %v", d.Type(), err)
	}
	return nil
}

func sameBits[T number](a, b T) bool {
	switch x := any(a).(type) {
	case float64:
		return math.Float64bits(x) == math.Float64bits(any(b).(float64))
	case float32:
		return math.Float32bits(x) == math.Float32bits(any(b).(float32))
	default:
		return a == b
	}
}

// formatValue renders v in base 10 for integers and in the shortest
// form that parses back to the same bits for floats.
func formatValue[T number](v T) string {
	switch x := any(v).(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	default:
		return strconv.FormatInt(int64(v), 10)
	}
}

func parseValue[T number](tok string) (T, error) {
	var z T
	switch any(z).(type) {
	case float64:
		f, err := strconv.ParseFloat(tok, 64)
		return T(f), err
	case float32:
		f, err := strconv.ParseFloat(tok, 32)
		return T(f), err
	case int64:
		n, err := strconv.ParseInt(tok, 10, 64)
		return T(n), err
	case int32:
		n, err := strconv.ParseInt(tok, 10, 32)
		return T(n), err
	case int16:
		n, err := strconv.ParseInt(tok, 10, 16)
		return T(n), err
	default:
		n, err := strconv.ParseInt(tok, 10, 8)
		return T(n), err
	}
}

func readValuesASCII[T number](s *Scanner, n int) (Data, error) {
	if n < 1 {
		return nil, fmt.Errorf("geotess: reading data with %d attributes: %w", n, ErrIndexOutOfRange)
	}
	d := zeroValues[T](n)
	for i := range d.values {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		v, err := parseValue[T](tok)
		if err != nil {
			return nil, formatError("parsing %s value %q", d.Type(), tok)
		}
		d.values[i] = v
	}
	return d, nil
}

func readValuesBinary[T number](r io.Reader, n int) (Data, error) {
	if n < 1 {
		return nil, fmt.Errorf("geotess: reading data with %d attributes: %w", n, ErrIndexOutOfRange)
	}
	d := zeroValues[T](n)
	if err := readBinary(r, d.values); err != nil {
		return nil, err
	}
	return d, nil
}
