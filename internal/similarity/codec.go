// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/artifact"
)

// Binary layout (little-endian):
//
//	offset 0  [4]byte  magic "RMSM"
//	offset 4  uint8    version (1)
//	offset 5  uint8    element width in bytes (4 = float32, 8 = float64)
//	offset 6  uint16   reserved
//	offset 8  uint32   N
//	offset 12 N*N elements, row-major
const (
	binaryMagic   = "RMSM"
	binaryVersion = 1
	headerSize    = 12

	// maxBinaryN bounds the header-declared size.
	maxBinaryN = 1 << 16

	// initialCapacity is the element count reserved before any row is read.
	initialCapacity = 1 << 16
)

const artifactName = "similarity"

// Format identifies a matrix serialization.
type Format string

const (
	FormatBinary Format = "binary"
	FormatJSON   Format = "json"
)

// FormatFromPath returns FormatJSON for .json files and FormatBinary
// otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatBinary
}

// Decode reads a matrix from r. Failures are *artifact.LoadError values.
func Decode(r io.Reader, format Format) (*Matrix, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(512)
	if artifact.LooksLikeHTML(head) {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonHTML,
			errors.New("similarity content is an HTML page"))
	}

	var (
		m   *Matrix
		err error
	)
	switch format {
	case FormatJSON:
		m, err = decodeJSON(br)
	case FormatBinary, "":
		m, err = decodeBinary(br)
	default:
		err = fmt.Errorf("unsupported similarity format %q", format)
	}
	if err != nil {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode, err)
	}
	return m, nil
}

// decodeJSON rejects anything after the top-level array, so a matrix with
// an error page appended does not load.
func decodeJSON(r io.Reader) (*Matrix, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return FromRows(rows)
}

func decodeBinary(r io.Reader) (*Matrix, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr[0:4]) != binaryMagic {
		return nil, fmt.Errorf("bad magic %q", hdr[0:4])
	}
	if hdr[4] != binaryVersion {
		return nil, fmt.Errorf("unsupported version %d", hdr[4])
	}
	width := int(hdr[5])
	if width != 4 && width != 8 {
		return nil, fmt.Errorf("unsupported element width %d", width)
	}
	n := int(binary.LittleEndian.Uint32(hdr[8:12]))
	if n == 0 {
		return nil, ErrEmpty
	}
	if n > maxBinaryN {
		return nil, fmt.Errorf("declared size %d exceeds limit %d", n, maxBinaryN)
	}

	// The header is not trusted for allocation: storage grows only as rows
	// are actually read, so a short file fails with a decode error.
	data := make([]float64, 0, min(n*n, initialCapacity))
	buf := make([]byte, n*width)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read row %d of %d: %w", i, n, err)
		}
		data = slices.Grow(data, n)[:len(data)+n]
		row := data[i*n : (i+1)*n]
		for j := range row {
			if width == 4 {
				row[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[j*4:])))
			} else {
				row[j] = math.Float64frombits(binary.LittleEndian.Uint64(buf[j*8:]))
			}
		}
	}

	var extra [1]byte
	if k, _ := r.Read(extra[:]); k > 0 {
		return nil, errors.New("trailing data after matrix")
	}

	return New(n, data)
}

// WriteBinary encodes m in the binary layout. float32 selects 4-byte
// elements.
func WriteBinary(w io.Writer, m *Matrix, float32Elems bool) error {
	width := 8
	if float32Elems {
		width = 4
	}

	var hdr [headerSize]byte
	copy(hdr[0:4], binaryMagic)
	hdr[4] = binaryVersion
	hdr[5] = byte(width)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(m.n)) //nolint:gosec // n is bounded by maxBinaryN on read
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, width)
	for _, v := range m.data {
		if float32Elems {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
		} else {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeBinary returns the binary encoding of m.
func EncodeBinary(m *Matrix, float32Elems bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, m, float32Elems); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadFile reads the matrix stored at path, picking the format from the
// extension.
func LoadFile(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		reason := artifact.ReasonDecode
		if errors.Is(err, os.ErrNotExist) {
			reason = artifact.ReasonMissing
		}
		return nil, artifact.NewLoadError(artifactName, path, reason, err)
	}
	defer f.Close()

	m, err := Decode(f, FormatFromPath(path))
	if err != nil {
		var le *artifact.LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return m, nil
}
