package tsc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ============================================================
// TSCB (binary) emitter
// ============================================================

// Structural keys carried outside the additional header block.
// SCATTERERS has its own length-prefixed section; TITLE and SYMM are
// dropped entirely. Their loss on a TSCB round trip is a documented
// property of the format, not a defect.
var binaryOmittedKeys = map[string]bool{
	KeyScatterers: true,
	KeyTitle:      true,
	KeySymm:       true,
}

// EmitBinary serializes a table to TSCB bytes.
func EmitBinary(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBinary(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteBinary writes the TSCB binary representation. Every reflection
// must carry exactly one value per scatterer; header text and labels
// must be ASCII, since the format is consumed by ASCII-only external
// tools.
func WriteBinary(w io.Writer, t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	extra := formatHeaderBlock(t.HeaderEntries(), binaryOmittedKeys)
	if err := checkASCII("additional header", extra); err != nil {
		return err
	}
	labels, _ := t.Header(KeyScatterers)
	if err := checkASCII("scatterer labels", labels); err != nil {
		return err
	}

	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:4], uint32(int32(len(extra))))
	binary.LittleEndian.PutUint32(sizes[4:8], uint32(int32(len(labels))))
	if _, err := w.Write(sizes[:]); err != nil {
		return fmt.Errorf("write header sizes: %w", err)
	}
	if _, err := io.WriteString(w, extra); err != nil {
		return fmt.Errorf("write additional header: %w", err)
	}
	if _, err := io.WriteString(w, labels); err != nil {
		return fmt.Errorf("write scatterer labels: %w", err)
	}

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(int32(t.Len())))
	if _, err := w.Write(count[:]); err != nil {
		return fmt.Errorf("write reflection count: %w", err)
	}

	nAtoms := len(t.Scatterers())
	record := make([]byte, 12+16*nAtoms)
	for _, r := range t.Reflections() {
		binary.LittleEndian.PutUint32(record[0:4], uint32(r.HKL.H))
		binary.LittleEndian.PutUint32(record[4:8], uint32(r.HKL.K))
		binary.LittleEndian.PutUint32(record[8:12], uint32(r.HKL.L))
		for j, v := range r.Values {
			off := 12 + 16*j
			binary.LittleEndian.PutUint64(record[off:off+8], math.Float64bits(real(v)))
			binary.LittleEndian.PutUint64(record[off+8:off+16], math.Float64bits(imag(v)))
		}
		if _, err := w.Write(record); err != nil {
			return fmt.Errorf("write reflection %s: %w", r.HKL, err)
		}
	}
	return nil
}

// checkASCII rejects text that cannot travel in a TSCB byte section.
func checkASCII(section, s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return fmt.Errorf("%s: non-ASCII byte 0x%02x at offset %d", section, s[i], i)
		}
	}
	return nil
}
