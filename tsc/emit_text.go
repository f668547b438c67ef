package tsc

import (
	"strconv"
	"strings"
)

// ============================================================
// TSC (text) emitter
// ============================================================

// EmitText serializes a table to TSC text. All header entries are
// written; floats use the shortest representation that reparses to the
// same bits, so parse(EmitText(t)) reproduces t exactly.
func EmitText(t *Table) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(formatHeaderBlock(t.HeaderEntries(), nil))
	b.WriteString("\nDATA:\n")

	for _, r := range t.Reflections() {
		b.WriteString(r.HKL.String())
		for _, v := range r.Values {
			b.WriteByte(' ')
			b.WriteString(formatComplex(v))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// formatComplex renders a complex value as "re,im" with round-trip-safe
// float formatting.
func formatComplex(v complex128) string {
	return strconv.FormatFloat(real(v), 'g', -1, 64) + "," +
		strconv.FormatFloat(imag(v), 'g', -1, 64)
}
