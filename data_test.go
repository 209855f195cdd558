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
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDataConversion(t *testing.T) {
	d := NewDataInt(300)
	b, err := d.Byte(0)
	if err != nil {
		t.Fatal(err)
	}
	if b != 44 {
		t.Errorf("byte: have %d, want 44", b)
	}
	s, _ := d.Short(0)
	if s != 300 {
		t.Errorf("short: have %d, want 300", s)
	}

	f := NewDataDouble(-3.9)
	i, _ := f.Int(0)
	if i != -3 {
		t.Errorf("int from double: have %d, want -3", i)
	}
	l, _ := NewDataFloat(2.75).Long(0)
	if l != 2 {
		t.Errorf("long from float: have %d, want 2", l)
	}
	v, _ := NewDataByte(-5).Double(0)
	if v != -5 {
		t.Errorf("double from byte: have %g, want -5", v)
	}
}

func TestDataSaturatingConversion(t *testing.T) {
	d := NewDataInt(7)
	d.Fill(1e12)
	if v, _ := d.Int(0); v != math.MaxInt32 {
		t.Errorf("int fill 1e12: have %d, want %d", v, math.MaxInt32)
	}
	d.Fill(-1e12)
	if v, _ := d.Int(0); v != math.MinInt32 {
		t.Errorf("int fill -1e12: have %d, want %d", v, math.MinInt32)
	}
	d.Fill(math.NaN())
	if v, _ := d.Int(0); v != 0 {
		t.Errorf("int fill NaN: have %d, want 0", v)
	}

	l := NewDataLong(0)
	if err := l.SetDouble(0, 1e20); err != nil {
		t.Fatal(err)
	}
	if v, _ := l.Long(0); v != math.MaxInt64 {
		t.Errorf("long set 1e20: have %d, want %d", v, int64(math.MaxInt64))
	}

	s := NewDataShort(0)
	if err := s.SetFloat(0, 1e12); err != nil {
		t.Fatal(err)
	}
	// Saturates to the int32 bound, then wraps to 16 bits.
	if v, _ := s.Short(0); v != -1 {
		t.Errorf("short set 1e12: have %d, want -1", v)
	}

	f := NewDataDouble(1e12)
	if v, _ := f.Int(0); v != math.MaxInt32 {
		t.Errorf("int from 1e12: have %d, want %d", v, math.MaxInt32)
	}
	if v, _ := f.Byte(0); v != -1 {
		t.Errorf("byte from 1e12: have %d, want -1", v)
	}
	if v, _ := NewDataFloat(float32(math.NaN())).Long(0); v != 0 {
		t.Errorf("long from NaN: have %d, want 0", v)
	}
	if v, _ := NewDataDouble(-2.5).Short(0); v != -2 {
		t.Errorf("short from -2.5: have %d, want -2", v)
	}
}

func TestDataIndexErrors(t *testing.T) {
	d := NewDataArrayOfFloats(1, 2, 3)
	for _, i := range []int{-1, 3, 100} {
		if _, err := d.Double(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Double(%d): have %v, want ErrIndexOutOfRange", i, err)
		}
		if err := d.SetInt(i, 7); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetInt(%d): have %v, want ErrIndexOutOfRange", i, err)
		}
		if !d.IsNaN(i) {
			t.Errorf("IsNaN(%d) should be true for an invalid index", i)
		}
	}
	if d.String() != "1 2 3" {
		t.Errorf("failed write leaves values unchanged: have %q", d.String())
	}
	if _, err := NewDataLong(1).Long(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("scalar Long(1): have %v, want ErrIndexOutOfRange", err)
	}
}

func TestDataSetAndFill(t *testing.T) {
	d := NewDataArrayOfShorts(1, 2, 3)
	if err := d.SetDouble(1, 9.8); err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Short(1); v != 9 {
		t.Errorf("have %d, want 9", v)
	}
	d.Fill(4)
	if d.String() != "4 4 4" {
		t.Errorf("fill: have %q", d.String())
	}

	l := NewDataLong(0)
	const big = int64(1)<<62 + 1
	l.FillLong(big)
	if v, _ := l.Long(0); v != big {
		t.Errorf("FillLong: have %d, want %d", v, big)
	}

	n := NewDataArrayOfDoubles(1, math.NaN())
	if n.IsNaN(0) || !n.IsNaN(1) {
		t.Errorf("IsNaN: have %v %v, want false true", n.IsNaN(0), n.IsNaN(1))
	}
	if NewDataInt(0).IsNaN(0) {
		t.Error("integers are never NaN")
	}
}

func TestNewData(t *testing.T) {
	for _, dt := range []DataType{TypeDouble, TypeFloat, TypeLong, TypeInt, TypeShort, TypeByte} {
		d, err := NewData(dt, 1)
		if err != nil {
			t.Fatal(err)
		}
		if d.Type() != dt || d.IsArray() || d.Size() != 1 {
			t.Errorf("%s scalar: type %s array %v size %d", dt, d.Type(), d.IsArray(), d.Size())
		}
		a, err := NewData(dt, 4)
		if err != nil {
			t.Fatal(err)
		}
		if a.Type() != dt || !a.IsArray() || a.Size() != 4 {
			t.Errorf("%s array: type %s array %v size %d", dt, a.Type(), a.IsArray(), a.Size())
		}
		if v, _ := a.Double(3); v != 0 {
			t.Errorf("%s array is not zero filled", dt)
		}
	}
	if _, err := NewData(TypeFloat, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("zero size: have %v", err)
	}
}

func TestNewDataArrayPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	NewDataArrayOfInts()
}

func TestDataEqualAndCopy(t *testing.T) {
	a := NewDataArrayOfDoubles(1, math.NaN(), 3)
	b := a.Copy()
	if !a.Equal(b) {
		t.Error("copy should equal the original")
	}
	if err := b.SetDouble(0, 5); err != nil {
		t.Fatal(err)
	}
	if v, _ := a.Double(0); v != 1 {
		t.Errorf("copy is not independent: original changed to %g", v)
	}
	if a.Equal(b) {
		t.Error("modified copy should not equal the original")
	}

	if NewDataDouble(1).Equal(NewDataArrayOfDoubles(1)) {
		t.Error("a scalar and a length 1 array are different kinds")
	}
	if NewDataDouble(1).Equal(NewDataFloat(1)) {
		t.Error("different types should not be equal")
	}
	if NewDataArrayOfInts(1, 2).Equal(NewDataArrayOfInts(1, 2, 3)) {
		t.Error("different sizes should not be equal")
	}
}

func TestDataTypeNames(t *testing.T) {
	want := []string{"DOUBLE", "FLOAT", "LONG", "INT", "SHORTINT", "BYTE"}
	for i, n := range want {
		if DataType(i).String() != n {
			t.Errorf("have %s, want %s", DataType(i), n)
		}
		dt, err := ParseDataType(strings.ToLower(n))
		if err != nil || dt != DataType(i) {
			t.Errorf("ParseDataType(%s) = %s, %v", n, dt, err)
		}
	}
	if dt, _ := ParseDataType("SHORT"); dt != TypeShort {
		t.Errorf("SHORT alias: have %s", dt)
	}
	if _, err := ParseDataType("COMPLEX"); !errors.Is(err, ErrFormat) {
		t.Errorf("unknown type: have %v", err)
	}
	sizes := map[DataType]int{TypeDouble: 8, TypeFloat: 4, TypeLong: 8, TypeInt: 4, TypeShort: 2, TypeByte: 1}
	for dt, n := range sizes {
		if dt.Size() != n {
			t.Errorf("%s size: have %d, want %d", dt, dt.Size(), n)
		}
	}
}

func TestDataRoundTrip(t *testing.T) {
	tests := []Data{
		NewDataDouble(math.Pi),
		NewDataFloat(0.1),
		NewDataLong(-1 << 60),
		NewDataInt(123456),
		NewDataShort(-32768),
		NewDataByte(127),
		NewDataArrayOfDoubles(1e-300, -2.5, math.NaN()),
		NewDataArrayOfFloats(1.1, float32(math.Inf(1)), 3),
		NewDataArrayOfLongs(1, 2),
		NewDataArrayOfInts(-1, 0, 1),
		NewDataArrayOfShorts(7, 8, 9, 10),
		NewDataArrayOfBytes(-128, 0),
	}
	for _, d := range tests {
		t.Run(d.Type().String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := d.WriteBinary(&buf); err != nil {
				t.Fatal(err)
			}
			if buf.Len() != d.Size()*d.Type().Size() {
				t.Errorf("binary length: have %d, want %d", buf.Len(), d.Size()*d.Type().Size())
			}
			b, err := ReadDataBinary(&buf, d.Type(), d.Size())
			if err != nil {
				t.Fatal(err)
			}
			if !b.Equal(d) {
				t.Errorf("binary: have %v, want %v", b, d)
			}

			buf.Reset()
			if err := d.WriteASCII(&buf); err != nil {
				t.Fatal(err)
			}
			a, err := ReadDataASCII(NewScanner(&buf), d.Type(), d.Size())
			if err != nil {
				t.Fatal(err)
			}
			if !a.Equal(d) {
				t.Errorf("ascii: have %v, want %v", a, d)
			}
		})
	}
}

func TestDataSingleElementArrayRoundTrip(t *testing.T) {
	d := NewDataArrayOfDoubles(5)
	var buf bytes.Buffer
	if err := d.WriteBinary(&buf); err != nil {
		t.Fatal(err)
	}
	b, err := ReadDataBinary(&buf, TypeDouble, 1)
	if err != nil {
		t.Fatal(err)
	}
	if b.IsArray() {
		t.Error("a one-element array should read back as a single value")
	}
	if !b.Equal(NewDataDouble(5)) {
		t.Errorf("have %v, want 5", b)
	}
	if b.Equal(d) {
		t.Error("a single value should not equal a one-element array")
	}
}

func TestReadDataErrors(t *testing.T) {
	if _, err := ReadDataASCII(NewScanner(strings.NewReader("1 x")), TypeInt, 2); !errors.Is(err, ErrFormat) {
		t.Errorf("bad token: have %v", err)
	}
	if _, err := ReadDataASCII(NewScanner(strings.NewReader("300")), TypeByte, 1); !errors.Is(err, ErrFormat) {
		t.Errorf("byte overflow: have %v", err)
	}
	if _, err := ReadDataBinary(bytes.NewReader([]byte{0, 0, 0}), TypeInt, 1); !errors.Is(err, ErrFormat) {
		t.Errorf("truncated: have %v", err)
	}
}

func TestAttributeString(t *testing.T) {
	d := NewDataArrayOfFloats(0.5, 2)
	s, err := d.AttributeString(0)
	if err != nil {
		t.Fatal(err)
	}
	if s != "0.5" {
		t.Errorf("have %q, want 0.5", s)
	}
	if _, err := d.AttributeString(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("have %v", err)
	}
}
