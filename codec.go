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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scanner reads whitespace separated tokens from an ascii stream. It is
// the ascii counterpart of the big-endian binary readers: every parser
// consumes tokens in a fixed order with no keys.
type Scanner struct {
	r *bufio.Reader
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	if br, ok := r.(*bufio.Reader); ok {
		return &Scanner{r: br}
	}
	return &Scanner{r: bufio.NewReader(r)}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Next returns the next token. The whitespace that terminates the token
// is left unread.
func (s *Scanner) Next() (string, error) {
	var b []byte
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				if len(b) > 0 {
					return string(b), nil
				}
				return "", formatError("unexpected end of input")
			}
			return "", fmt.Errorf("geotess: reading token: %v", err)
		}
		if isSpace(c) {
			if len(b) > 0 {
				s.r.UnreadByte()
				return string(b), nil
			}
			continue
		}
		b = append(b, c)
	}
}

// NextLine returns the remainder of the current line with surrounding
// whitespace removed. Blank lines are skipped.
func (s *Scanner) NextLine() (string, error) {
	for {
		line, err := s.r.ReadString('\n')
		if t := strings.TrimSpace(line); t != "" {
			return t, nil
		}
		if err != nil {
			if err == io.EOF {
				return "", formatError("unexpected end of input")
			}
			return "", fmt.Errorf("geotess: reading line: %v", err)
		}
	}
}

// NextInt returns the next token as an int.
func (s *Scanner) NextInt() (int, error) {
	tok, err := s.Next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, formatError("parsing integer %q", tok)
	}
	return v, nil
}

// NextFloat32 returns the next token as a float32.
func (s *Scanner) NextFloat32() (float32, error) {
	tok, err := s.Next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, formatError("parsing float %q", tok)
	}
	return float32(v), nil
}

// NextFloat64 returns the next token as a float64.
func (s *Scanner) NextFloat64() (float64, error) {
	tok, err := s.Next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, formatError("parsing float %q", tok)
	}
	return v, nil
}

// readBinary reads a big-endian value into v, reporting truncated
// input as a format error.
func readBinary(r io.Reader, v interface{}) error {
	if err := binary.Read(r, binary.BigEndian, v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return formatError("truncated binary input")
		}
		return fmt.Errorf("geotess: reading binary input: %v", err)
	}
	return nil
}

func writeBinary(w io.Writer, v interface{}) error {
	if err := binary.Write(w, binary.BigEndian, v); err != nil {
		return fmt.Errorf("geotess: writing binary output: %v", err)
	}
	return nil
}

func formatFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// ReadProfileASCII reads the leading type tag from s and then the rest
// of the profile record. nAttributes and t describe the Data held by
// each node and are supplied by the owning model.
func ReadProfileASCII(s *Scanner, t DataType, nAttributes int) (Profile, error) {
	tag, err := s.NextInt()
	if err != nil {
		return nil, err
	}
	switch ProfileType(tag) {
	case Empty:
		return readEmptyASCII(s)
	case Thin:
		return readThinASCII(s, t, nAttributes)
	case Constant:
		return readConstantASCII(s, t, nAttributes)
	case NPoint:
		return readNPointASCII(s, t, nAttributes)
	case Surface:
		return readSurfaceASCII(s, t, nAttributes)
	case SurfaceEmpty:
		return NewProfileSurfaceEmpty(), nil
	default:
		return nil, formatError("unknown profile type tag %d", tag)
	}
}

// ReadProfileBinary reads the leading type tag byte from r and then the
// rest of the profile record.
func ReadProfileBinary(r io.Reader, t DataType, nAttributes int) (Profile, error) {
	var tag int8
	if err := readBinary(r, &tag); err != nil {
		return nil, err
	}
	switch ProfileType(tag) {
	case Empty:
		return readEmptyBinary(r)
	case Thin:
		return readThinBinary(r, t, nAttributes)
	case Constant:
		return readConstantBinary(r, t, nAttributes)
	case NPoint:
		return readNPointBinary(r, t, nAttributes)
	case Surface:
		return readSurfaceBinary(r, t, nAttributes)
	case SurfaceEmpty:
		return NewProfileSurfaceEmpty(), nil
	default:
		return nil, formatError("unknown profile type tag %d", tag)
	}
}
