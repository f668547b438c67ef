package tsc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ============================================================
// TSCB (binary) parser
// ============================================================
//
// All integers are little-endian int32; complex values are IEEE-754
// double-precision real/imaginary pairs (16 bytes per value).

// ParseBinary parses the TSCB binary representation from a byte buffer.
func ParseBinary(data []byte) (*Table, error) {
	return ReadBinary(bytes.NewReader(data))
}

// ReadBinary parses the TSCB binary representation from a reader. It
// consumes exactly the byte counts implied by the header fields; a
// stream that ends early fails with a TruncatedError rather than
// yielding partially populated records.
func ReadBinary(r io.Reader) (*Table, error) {
	additionalHeaderSize, err := readInt32(r, "header sizes")
	if err != nil {
		return nil, err
	}
	nBytesLabels, err := readInt32(r, "header sizes")
	if err != nil {
		return nil, err
	}
	if additionalHeaderSize < 0 {
		return nil, fmt.Errorf("negative additional header size %d", additionalHeaderSize)
	}
	if nBytesLabels < 0 {
		return nil, fmt.Errorf("negative scatterer label size %d", nBytesLabels)
	}

	t := NewTable()

	if additionalHeaderSize > 0 {
		raw, err := readSection(r, int(additionalHeaderSize), "additional header")
		if err != nil {
			return nil, err
		}
		entries, err := parseHeaderBlock(string(raw))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Key == KeyScatterers {
				// SCATTERERS travels in its own section.
				continue
			}
			t.SetHeader(e.Key, e.Value)
		}
	}

	labels, err := readSection(r, int(nBytesLabels), "scatterer labels")
	if err != nil {
		return nil, err
	}
	t.SetHeader(KeyScatterers, string(labels))

	nRefln, err := readInt32(r, "reflection count")
	if err != nil {
		return nil, err
	}
	if nRefln < 0 {
		return nil, fmt.Errorf("negative reflection count %d", nRefln)
	}

	nAtoms := len(t.Scatterers())
	record := make([]byte, 12+16*nAtoms)
	for i := int32(0); i < nRefln; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, &TruncatedError{
				Section: fmt.Sprintf("reflection %d of %d", i+1, nRefln),
			}
		}
		hkl := HKL{
			H: int32(binary.LittleEndian.Uint32(record[0:4])),
			K: int32(binary.LittleEndian.Uint32(record[4:8])),
			L: int32(binary.LittleEndian.Uint32(record[8:12])),
		}
		vals := make([]complex128, nAtoms)
		for j := 0; j < nAtoms; j++ {
			off := 12 + 16*j
			re := math.Float64frombits(binary.LittleEndian.Uint64(record[off : off+8]))
			im := math.Float64frombits(binary.LittleEndian.Uint64(record[off+8 : off+16]))
			vals[j] = complex(re, im)
		}
		t.Set(hkl, vals)
	}
	return t, nil
}

// readInt32 reads one little-endian int32.
func readInt32(r io.Reader, section string) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, &TruncatedError{Section: section}
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// readSection reads exactly n bytes. The buffer grows with the stream
// rather than being preallocated, so a corrupt size field on a short
// stream fails cheaply instead of allocating the claimed size.
func readSection(r io.Reader, n int, section string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		return nil, &TruncatedError{Section: section}
	}
	return buf.Bytes(), nil
}
