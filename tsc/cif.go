package tsc

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// CIF block importer
// ============================================================
//
// Tables exported to CIF carry the form-factor loop under the
// _aspheric_ff prefix. The importer only needs named fields and
// columnar loops, so it works against narrow capability interfaces
// rather than any concrete CIF parser.

// CIF entry names read by the importer.
const (
	cifFieldSource       = "_aspheric_ffs.source"
	cifFieldPartName     = "_aspheric_ffs_partitioning.name"
	cifFieldPartSoftware = "_aspheric_ffs_partitioning.software"
	cifFieldLabels       = "_wfn_moiety.asu_atom_site_label"

	cifLoopName = "_aspheric_ff"
	cifColH     = "_aspheric_ff.index_h"
	cifColK     = "_aspheric_ff.index_k"
	cifColL     = "_aspheric_ff.index_l"
	cifColReal  = "_aspheric_ff.form_factor_real"
	cifColImag  = "_aspheric_ff.form_factor_imag"
)

// Block is the capability the importer needs from a parsed CIF block:
// named scalar fields and named loop (columnar) tables.
type Block interface {
	// Field returns the text value of a named data item.
	Field(name string) (string, bool)
	// Loop returns a named loop table.
	Loop(name string) (Loop, bool)
}

// Loop is a parallel-column table inside a CIF block.
type Loop interface {
	// Column returns the values of a named column, one per loop row.
	Column(name string) ([]string, bool)
}

// FromCIFBlock builds a table from a parsed CIF block produced by the
// table-to-CIF export convention. The import is all-or-nothing: any
// missing entry or count mismatch fails without a partial result.
//
// Form-factor columns hold one bracket-delimited vector per loop row,
// e.g. "[1.2 3.4 0.9]", with one value per scatterer.
func FromCIFBlock(b Block) (*Table, error) {
	var missing []string
	for _, name := range []string{cifFieldSource, cifFieldPartName, cifFieldPartSoftware} {
		if _, ok := b.Field(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	labelsText, ok := b.Field(cifFieldLabels)
	if !ok {
		return nil, &MissingFieldsError{Fields: []string{cifFieldLabels}}
	}
	t := NewTable()
	t.SetScatterers(strings.Fields(labelsText))
	nAtoms := len(t.Scatterers())

	loop, ok := b.Loop(cifLoopName)
	if !ok {
		return nil, &MissingFieldsError{Fields: []string{cifLoopName}}
	}
	cols := make(map[string][]string, 5)
	for _, name := range []string{cifColH, cifColK, cifColL, cifColReal, cifColImag} {
		col, ok := loop.Column(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = col
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	hCol, kCol, lCol := cols[cifColH], cols[cifColK], cols[cifColL]
	if len(kCol) != len(hCol) || len(lCol) != len(hCol) {
		return nil, &CountMismatchError{What: "Miller index column lengths", Got: len(kCol), Want: len(hCol)}
	}

	reVals, err := parseBracketColumn(cols[cifColReal])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cifColReal, err)
	}
	imVals, err := parseBracketColumn(cols[cifColImag])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cifColImag, err)
	}
	if len(imVals) != len(reVals) {
		return nil, &CountMismatchError{What: "imaginary form-factor values", Got: len(imVals), Want: len(reVals)}
	}
	if nAtoms == 0 {
		return nil, fmt.Errorf("no scatterers declared in %s", cifFieldLabels)
	}
	if len(reVals)%nAtoms != 0 {
		return nil, &CountMismatchError{
			What: fmt.Sprintf("form-factor values (not a multiple of %d scatterers)", nAtoms),
			Got:  len(reVals),
			Want: len(hCol) * nAtoms,
		}
	}
	if len(reVals)/nAtoms != len(hCol) {
		return nil, &CountMismatchError{What: "reflections in form-factor columns", Got: len(reVals) / nAtoms, Want: len(hCol)}
	}

	for i := range hCol {
		hkl, err := parseMillerRow(hCol[i], kCol[i], lCol[i])
		if err != nil {
			return nil, err
		}
		vals := make([]complex128, nAtoms)
		for j := 0; j < nAtoms; j++ {
			vals[j] = complex(reVals[i*nAtoms+j], imVals[i*nAtoms+j])
		}
		t.Set(hkl, vals)
	}
	return t, nil
}

// parseBracketColumn flattens a column of bracket-delimited vectors
// ("[1.2 3.4]") into one float sequence in row-major order.
func parseBracketColumn(col []string) ([]float64, error) {
	var out []float64
	for _, row := range col {
		for _, tok := range strings.Fields(strings.Trim(strings.TrimSpace(row), "[]")) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("bad form-factor value %q", tok)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func parseMillerRow(h, k, l string) (HKL, error) {
	var hkl HKL
	for i, pair := range []struct {
		s   string
		dst *int32
	}{{h, &hkl.H}, {k, &hkl.K}, {l, &hkl.L}} {
		n, err := strconv.ParseInt(strings.TrimSpace(pair.s), 10, 32)
		if err != nil {
			return HKL{}, fmt.Errorf("bad Miller index %q in column %d: %w", pair.s, i, err)
		}
		*pair.dst = int32(n)
	}
	return hkl, nil
}
