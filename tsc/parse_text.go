package tsc

import (
	"errors"
	"strconv"
	"strings"
)

// ============================================================
// TSC (text) parser
// ============================================================
//
// Layout:
//   <header block>     KEY: value lines, continuation lines allowed
//   DATA:              separator, not stored as a header entry
//   <data lines>       h k l re,im re,im ...

var errNoData = errors.New("missing DATA: separator line")

// ParseText parses the TSC text representation.
func ParseText(data []byte) (*Table, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	sep := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "DATA:" {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, errNoData
	}

	entries, err := parseHeaderBlock(strings.Join(lines[:sep], "\n"))
	if err != nil {
		return nil, err
	}

	t := NewTable()
	for _, e := range entries {
		t.SetHeader(e.Key, e.Value)
	}
	nAtoms := len(t.Scatterers())

	for _, line := range lines[sep+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hkl, vals, err := parseDataLine(line, nAtoms)
		if err != nil {
			return nil, err
		}
		t.Set(hkl, vals)
	}
	return t, nil
}

// parseDataLine parses one reflection line. The number of complex
// tokens must equal the declared scatterer count.
func parseDataLine(line string, nAtoms int) (HKL, []complex128, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return HKL{}, nil, &DataLineError{Line: line, Reason: "expected h k l and form factors"}
	}

	var hkl HKL
	for i, dst := range []*int32{&hkl.H, &hkl.K, &hkl.L} {
		n, err := strconv.ParseInt(fields[i], 10, 32)
		if err != nil {
			return HKL{}, nil, &DataLineError{Line: line, Reason: "bad Miller index " + fields[i]}
		}
		*dst = int32(n)
	}

	tokens := fields[3:]
	if len(tokens) != nAtoms {
		return HKL{}, nil, &CountMismatchError{
			What: "form factors on data line " + strconv.Quote(line),
			Got:  len(tokens),
			Want: nAtoms,
		}
	}

	vals := make([]complex128, len(tokens))
	for i, tok := range tokens {
		reStr, imStr, ok := strings.Cut(tok, ",")
		if !ok {
			return HKL{}, nil, &DataLineError{Line: line, Reason: "form factor " + tok + " is not a re,im pair"}
		}
		re, err := strconv.ParseFloat(reStr, 64)
		if err != nil {
			return HKL{}, nil, &DataLineError{Line: line, Reason: "bad real part " + reStr}
		}
		im, err := strconv.ParseFloat(imStr, 64)
		if err != nil {
			return HKL{}, nil, &DataLineError{Line: line, Reason: "bad imaginary part " + imStr}
		}
		vals[i] = complex(re, im)
	}
	return hkl, vals, nil
}
