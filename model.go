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

// Package geotess holds earth models made of radial profiles. Each
// vertex of a tessellation owns one Profile per layer, and each Profile
// holds Data objects storing the attribute values of its nodes.
package geotess

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geotess/internal/hash"
	"gonum.org/v1/gonum/mat"
)

// Version gives the version number.
const Version = "1.0.0"

const (
	asciiMagic    = "GEOTESSMODEL_ASCII"
	binaryMagic   = "GEOTESSMODEL_BIN"
	formatVersion = 1
)

// Model is a set of profiles indexed by vertex and layer, together with
// the metadata that describe their contents.
type Model struct {
	MetaData *MetaData

	// Log receives messages about model construction and input.
	Log logrus.FieldLogger

	profiles [][]Profile
	pointMap *PointMap
}

// NewModel returns a model with nVertices vertices whose profiles are
// all unset.
func NewModel(md *MetaData, nVertices int) (*Model, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	if nVertices < 0 {
		return nil, fmt.Errorf("geotess: negative vertex count %d", nVertices)
	}
	m := &Model{
		MetaData: md,
		Log:      logrus.StandardLogger(),
		profiles: make([][]Profile, nVertices),
	}
	for v := range m.profiles {
		m.profiles[v] = make([]Profile, md.NLayers())
	}
	return m, nil
}

// NVertices returns the number of vertices.
func (m *Model) NVertices() int { return len(m.profiles) }

// NLayers returns the number of layers.
func (m *Model) NLayers() int { return m.MetaData.NLayers() }

func (m *Model) checkIndex(vertex, layer int) error {
	if vertex < 0 || vertex >= len(m.profiles) {
		return indexError("vertex", vertex, len(m.profiles))
	}
	if layer < 0 || layer >= m.NLayers() {
		return indexError("layer", layer, m.NLayers())
	}
	return nil
}

// SetProfile stores p at vertex and layer. The data held by p must
// match the type and attribute count of the metadata. Any existing point
// map is discarded.
func (m *Model) SetProfile(vertex, layer int, p Profile) error {
	if err := m.checkIndex(vertex, layer); err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("geotess: nil profile at vertex %d layer %d: %w", vertex, layer, ErrInvalidProfile)
	}
	if err := m.MetaData.checkProfile(p); err != nil {
		return fmt.Errorf("geotess: vertex %d layer %d: %w", vertex, layer, err)
	}
	m.profiles[vertex][layer] = p
	m.pointMap = nil
	return nil
}

// Profile returns the profile at vertex and layer.
func (m *Model) Profile(vertex, layer int) (Profile, error) {
	if err := m.checkIndex(vertex, layer); err != nil {
		return nil, err
	}
	return m.profiles[vertex][layer], nil
}

// Profiles returns the profiles indexed by vertex and then layer. The
// returned slices belong to the model and must not be modified.
func (m *Model) Profiles() [][]Profile { return m.profiles }

// complete returns an error if any profile is unset.
func (m *Model) complete() error {
	for v, layers := range m.profiles {
		for l, p := range layers {
			if p == nil {
				return fmt.Errorf("geotess: vertex %d layer %d has no profile: %w", v, l, ErrInvalidProfile)
			}
		}
	}
	return nil
}

// PointMap returns the point map of the model, numbering the points
// first if the profiles have changed since the last call.
func (m *Model) PointMap() *PointMap {
	if m.pointMap == nil {
		m.pointMap = AssignPointIndices(m.profiles)
		m.Log.WithFields(logrus.Fields{
			"vertices": m.NVertices(),
			"layers":   m.NLayers(),
			"points":   m.pointMap.Size(),
		}).Debug("geotess: assigned point indices")
	}
	return m.pointMap
}

// NPoints returns the number of points in the model.
func (m *Model) NPoints() int { return m.PointMap().Size() }

// ValueAtRadius interpolates attribute within the profile at vertex and
// layer.
func (m *Model) ValueAtRadius(vertex, layer int, interp InterpolatorType, attribute int, radius float64, allowOutOfRange bool) (float64, error) {
	p, err := m.Profile(vertex, layer)
	if err != nil {
		return math.NaN(), err
	}
	if p == nil {
		return math.NaN(), fmt.Errorf("geotess: vertex %d layer %d has no profile: %w", vertex, layer, ErrInvalidProfile)
	}
	return p.ValueAtRadius(interp, attribute, radius, allowOutOfRange)
}

// Weights returns the interpolation weights, keyed by point index, of
// the profile at vertex and layer evaluated at radius.
func (m *Model) Weights(vertex, layer int, interp InterpolatorType, radius float64) (map[int]float64, error) {
	p, err := m.Profile(vertex, layer)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("geotess: vertex %d layer %d has no profile: %w", vertex, layer, ErrInvalidProfile)
	}
	m.PointMap()
	w := make(map[int]float64)
	if err := p.Weights(w, 0, radius, 1, interp); err != nil {
		return nil, err
	}
	return w, nil
}

// PointValues returns the value of attribute at every point, ordered by
// point index.
func (m *Model) PointValues(attribute int) (*mat.VecDense, error) {
	if attribute < 0 || attribute >= m.MetaData.NAttributes() {
		return nil, indexError("attribute", attribute, m.MetaData.NAttributes())
	}
	pm := m.PointMap()
	if pm.Size() == 0 {
		return nil, fmt.Errorf("geotess: model has no points")
	}
	values := make([]float64, pm.Size())
	for i := range values {
		v, l, n, err := pm.Point(i)
		if err != nil {
			return nil, err
		}
		if values[i], err = m.profiles[v][l].Value(attribute, n); err != nil {
			return nil, err
		}
	}
	return mat.NewVecDense(len(values), values), nil
}

// WeightVector converts weights keyed by point index into a sparse
// vector over the points of the model.
func (m *Model) WeightVector(weights map[int]float64) (*sparse.SparseArray, error) {
	n := m.NPoints()
	s := sparse.ZerosSparse(n)
	for i, w := range weights {
		if i < 0 || i >= n {
			return nil, indexError("point", i, n)
		}
		s.AddVal(w, i)
	}
	return s, nil
}

// Hash returns a key identifying the contents of the model.
func (m *Model) Hash() string { return hash.Hash(m) }

// Equal reports whether m and o hold the same metadata and profiles.
func (m *Model) Equal(o *Model) bool {
	if !m.MetaData.Equal(o.MetaData) || len(m.profiles) != len(o.profiles) {
		return false
	}
	for v, layers := range m.profiles {
		for l, p := range layers {
			q := o.profiles[v][l]
			if (p == nil) != (q == nil) || (p != nil && !p.Equal(q)) {
				return false
			}
		}
	}
	return true
}

// WriteASCII writes the model in ascii format.
func (m *Model) WriteASCII(w io.Writer) error {
	if err := m.complete(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	md := m.MetaData
	fmt.Fprintf(bw, "%s\n", asciiMagic)
	fmt.Fprintf(bw, "version %d\n", formatVersion)
	fmt.Fprintf(bw, "software %s\n", strconv.Quote(md.Software))
	fmt.Fprintf(bw, "description %s\n", strconv.Quote(md.Description))
	fmt.Fprintf(bw, "attributes %s\n", joinNames(md.AttributeNames))
	fmt.Fprintf(bw, "units %s\n", joinNames(md.AttributeUnits))
	fmt.Fprintf(bw, "dataType %s\n", md.DataType)
	fmt.Fprintf(bw, "layers %s\n", joinNames(md.LayerNames))
	fmt.Fprintf(bw, "vertices %d\n", len(m.profiles))
	for _, layers := range m.profiles {
		for _, p := range layers {
			if err := p.WriteASCII(bw); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteBinary writes the model in big-endian binary format.
func (m *Model) WriteBinary(w io.Writer) error {
	if err := m.complete(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	md := m.MetaData
	if _, err := io.WriteString(bw, binaryMagic); err != nil {
		return err
	}
	if err := writeBinary(bw, int32(formatVersion)); err != nil {
		return err
	}
	for _, s := range []string{md.Software, md.Description, joinNames(md.AttributeNames),
		joinNames(md.AttributeUnits), md.DataType.String(), joinNames(md.LayerNames)} {
		if err := writeString(bw, s); err != nil {
			return err
		}
	}
	if err := writeBinary(bw, int32(len(m.profiles))); err != nil {
		return err
	}
	for _, layers := range m.profiles {
		for _, p := range layers {
			if err := p.WriteBinary(bw); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func writeString(w io.Writer, s string) error {
	if err := writeBinary(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n int32
	if err := readBinary(r, &n); err != nil {
		return "", err
	}
	if n < 0 {
		return "", formatError("string with length %d", n)
	}
	var b bytes.Buffer
	if _, err := io.CopyN(&b, r, int64(n)); err != nil {
		return "", formatError("truncated string of length %d", n)
	}
	return b.String(), nil
}

// ReadModel reads a model written by WriteASCII or WriteBinary,
// detecting the format from the leading magic string.
func ReadModel(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(binaryMagic))
	if err != nil {
		return nil, formatError("reading model header: %v", err)
	}
	switch {
	case bytes.Equal(magic, []byte(binaryMagic)):
		return readModelBinary(br)
	case bytes.Equal(magic, []byte(asciiMagic[:len(binaryMagic)])):
		return readModelASCII(br)
	default:
		return nil, formatError("unrecognized model header %q", magic)
	}
}

// headerField reads a line of the form "key value" and returns value.
func headerField(s *Scanner, key string) (string, error) {
	line, err := s.NextLine()
	if err != nil {
		return "", err
	}
	k, v, _ := strings.Cut(line, " ")
	if k != key {
		return "", formatError("expected header field %q, got %q", key, k)
	}
	return strings.TrimSpace(v), nil
}

func readModelASCII(r *bufio.Reader) (*Model, error) {
	s := NewScanner(r)
	line, err := s.NextLine()
	if err != nil {
		return nil, err
	}
	if line != asciiMagic {
		return nil, formatError("unrecognized model header %q", line)
	}
	fields := make(map[string]string)
	for _, key := range []string{"version", "software", "description", "attributes", "units", "dataType", "layers", "vertices"} {
		if fields[key], err = headerField(s, key); err != nil {
			return nil, err
		}
	}
	if fields["version"] != strconv.Itoa(formatVersion) {
		return nil, formatError("unsupported model version %s", fields["version"])
	}
	md := &MetaData{
		AttributeNames: splitNames(fields["attributes"]),
		AttributeUnits: splitNames(fields["units"]),
		LayerNames:     splitNames(fields["layers"]),
	}
	if md.Software, err = strconv.Unquote(fields["software"]); err != nil {
		return nil, formatError("parsing software %s", fields["software"])
	}
	if md.Description, err = strconv.Unquote(fields["description"]); err != nil {
		return nil, formatError("parsing description %s", fields["description"])
	}
	if md.DataType, err = ParseDataType(fields["dataType"]); err != nil {
		return nil, err
	}
	nVertices, err := strconv.Atoi(fields["vertices"])
	if err != nil {
		return nil, formatError("parsing vertex count %q", fields["vertices"])
	}
	return readProfiles(md, nVertices, func() (Profile, error) {
		return ReadProfileASCII(s, md.DataType, md.NAttributes())
	})
}

func readModelBinary(r *bufio.Reader) (*Model, error) {
	if _, err := r.Discard(len(binaryMagic)); err != nil {
		return nil, formatError("truncated model header")
	}
	var version int32
	if err := readBinary(r, &version); err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, formatError("unsupported model version %d", version)
	}
	var fields [6]string
	for i := range fields {
		var err error
		if fields[i], err = readString(r); err != nil {
			return nil, err
		}
	}
	md := &MetaData{
		Software:       fields[0],
		Description:    fields[1],
		AttributeNames: splitNames(fields[2]),
		AttributeUnits: splitNames(fields[3]),
		LayerNames:     splitNames(fields[5]),
	}
	var err error
	if md.DataType, err = ParseDataType(fields[4]); err != nil {
		return nil, err
	}
	var nVertices int32
	if err := readBinary(r, &nVertices); err != nil {
		return nil, err
	}
	return readProfiles(md, int(nVertices), func() (Profile, error) {
		return ReadProfileBinary(r, md.DataType, md.NAttributes())
	})
}

// readProfiles builds a model from md and fills it with profiles
// returned by next, in vertex and then layer order.
func readProfiles(md *MetaData, nVertices int, next func() (Profile, error)) (*Model, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	if nVertices < 0 {
		return nil, formatError("negative vertex count %d", nVertices)
	}
	// nVertices is untrusted; grow with the input.
	var profiles [][]Profile
	for v := 0; v < nVertices; v++ {
		layers := make([]Profile, md.NLayers())
		for l := range layers {
			p, err := next()
			if err != nil {
				return nil, fmt.Errorf("geotess: reading vertex %d layer %d: %w", v, l, err)
			}
			if err := md.checkProfile(p); err != nil {
				return nil, fmt.Errorf("geotess: vertex %d layer %d: %w", v, l, err)
			}
			layers[l] = p
		}
		profiles = append(profiles, layers)
	}
	m, err := NewModel(md, len(profiles))
	if err != nil {
		return nil, err
	}
	copy(m.profiles, profiles)
	m.PointMap()
	return m, nil
}

// isASCIIPath reports whether path, stripped of any compression suffix,
// names an ascii model file.
func isASCIIPath(path string) bool {
	path = strings.TrimSuffix(path, ".zst")
	return strings.HasSuffix(path, ".ascii") || strings.HasSuffix(path, ".txt")
}

// Save writes the model to path. Paths ending in ".ascii" or ".txt" are
// written in ascii format and all others in binary format. A trailing
// ".zst" compresses the output with zstd.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("geotess: saving model: %v", err)
	}
	var w io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		if enc, err = zstd.NewWriter(f); err != nil {
			f.Close()
			return fmt.Errorf("geotess: saving model: %v", err)
		}
		w = enc
	}
	if isASCIIPath(path) {
		err = m.WriteASCII(w)
	} else {
		err = m.WriteBinary(w)
	}
	if err != nil {
		f.Close()
		return err
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			f.Close()
			return fmt.Errorf("geotess: saving model: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("geotess: saving model: %v", err)
	}
	m.Log.WithFields(logrus.Fields{
		"path":     path,
		"vertices": m.NVertices(),
	}).Info("geotess: saved model")
	return nil
}

// Load reads a model from path. The format is detected from the file
// contents; a ".zst" suffix indicates zstd compression.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geotess: loading model: %v", err)
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("geotess: loading model: %v", err)
		}
		defer dec.Close()
		r = dec
	}
	m, err := ReadModel(r)
	if err != nil {
		return nil, fmt.Errorf("geotess: loading %s: %w", path, err)
	}
	m.Log.WithFields(logrus.Fields{
		"path":     path,
		"vertices": m.NVertices(),
		"points":   m.NPoints(),
	}).Info("geotess: loaded model")
	return m, nil
}
