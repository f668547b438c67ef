package tsc

import (
	"fmt"
	"strings"
)

// Header keys that every table carries. SCATTERERS is structural: it is
// the authoritative, space-joined form of the scatterer label list.
const (
	KeyTitle      = "TITLE"
	KeySymm       = "SYMM"
	KeyScatterers = "SCATTERERS"
)

// HKL identifies a reflection by its Miller indices.
type HKL struct {
	H, K, L int32
}

// String returns the indices as "h k l".
func (h HKL) String() string {
	return fmt.Sprintf("%d %d %d", h.H, h.K, h.L)
}

// HeaderEntry is one "KEY: value" header pair.
type HeaderEntry struct {
	Key   string
	Value string
}

// Reflection pairs a Miller index with one complex form factor per
// scatterer, in scatterer label order.
type Reflection struct {
	HKL    HKL
	Values []complex128
}

// Table is the in-memory form-factor table shared by the TSC and TSCB
// codecs.
//
// The header is an ordered key/value list; reflections keep file
// (insertion) order. Complex values are plain complex128: whatever bit
// patterns a file carries (including NaN payloads) pass through
// unsanitized.
type Table struct {
	header []HeaderEntry
	refl   []Reflection
	index  map[HKL]int
}

// NewTable returns an empty table with the default header entries
// (TITLE "generic_tsc", SYMM "expanded", empty SCATTERERS).
func NewTable() *Table {
	return &Table{
		header: []HeaderEntry{
			{Key: KeyTitle, Value: "generic_tsc"},
			{Key: KeySymm, Value: "expanded"},
			{Key: KeyScatterers, Value: ""},
		},
		index: make(map[HKL]int),
	}
}

// Header returns the value for a header key.
func (t *Table) Header(key string) (string, bool) {
	for _, e := range t.header {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// SetHeader sets a header value, keeping entry order stable. A new key
// is appended after the existing entries.
func (t *Table) SetHeader(key, value string) {
	for i := range t.header {
		if t.header[i].Key == key {
			t.header[i].Value = value
			return
		}
	}
	t.header = append(t.header, HeaderEntry{Key: key, Value: value})
}

// HeaderEntries returns a copy of the header in order.
func (t *Table) HeaderEntries() []HeaderEntry {
	out := make([]HeaderEntry, len(t.header))
	copy(out, t.header)
	return out
}

// Scatterers returns the scatterer labels parsed from the SCATTERERS
// header entry (whitespace-separated). Order is significant: it is the
// value order inside every reflection record.
func (t *Table) Scatterers() []string {
	v, _ := t.Header(KeyScatterers)
	return strings.Fields(v)
}

// SetScatterers replaces the scatterer list, rejoining the labels into
// the SCATTERERS header entry. This is the only supported mutation path
// for that entry.
func (t *Table) SetScatterers(labels []string) {
	t.SetHeader(KeyScatterers, strings.Join(labels, " "))
}

// Len returns the number of reflections.
func (t *Table) Len() int {
	return len(t.refl)
}

// Get returns the form-factor vector stored for hkl.
func (t *Table) Get(hkl HKL) ([]complex128, bool) {
	i, ok := t.index[hkl]
	if !ok {
		return nil, false
	}
	return t.refl[i].Values, true
}

// Set stores a form-factor vector for hkl. Setting an existing key
// overwrites its values in place: last write wins, and the reflection
// keeps its original position in iteration order.
func (t *Table) Set(hkl HKL, values []complex128) {
	if i, ok := t.index[hkl]; ok {
		t.refl[i].Values = values
		return
	}
	t.index[hkl] = len(t.refl)
	t.refl = append(t.refl, Reflection{HKL: hkl, Values: values})
}

// Reflections returns the reflections in insertion (file) order. The
// returned slice is the table's backing storage and must not be
// reordered or resized by the caller.
func (t *Table) Reflections() []Reflection {
	return t.refl
}

// Validate checks that every reflection carries exactly one value per
// scatterer.
func (t *Table) Validate() error {
	n := len(t.Scatterers())
	for _, r := range t.refl {
		if len(r.Values) != n {
			return &CountMismatchError{
				What: fmt.Sprintf("form factors for reflection %s", r.HKL),
				Got:  len(r.Values),
				Want: n,
			}
		}
	}
	return nil
}

// LookupOne returns the form factor of a single scatterer for every
// reflection in the table. An unknown label fails with an
// UnknownLabelError naming it.
func (t *Table) LookupOne(label string) (map[HKL]complex128, error) {
	pos, err := t.resolve([]string{label})
	if err != nil {
		return nil, err
	}
	i := pos[0]
	out := make(map[HKL]complex128, len(t.refl))
	for _, r := range t.refl {
		if i >= len(r.Values) {
			return nil, &CountMismatchError{
				What: fmt.Sprintf("form factors for reflection %s", r.HKL),
				Got:  len(r.Values),
				Want: len(t.Scatterers()),
			}
		}
		out[r.HKL] = r.Values[i]
	}
	return out, nil
}

// LookupMany returns, for every reflection, the form factors of the
// requested scatterers in request order. Duplicate labels produce
// duplicate positions in the output vectors. If any label is unknown,
// the call fails with an UnknownLabelError naming all unresolved
// labels; there is no partial result.
func (t *Table) LookupMany(labels []string) (map[HKL][]complex128, error) {
	pos, err := t.resolve(labels)
	if err != nil {
		return nil, err
	}
	n := len(t.Scatterers())
	out := make(map[HKL][]complex128, len(t.refl))
	for _, r := range t.refl {
		if len(r.Values) < n {
			return nil, &CountMismatchError{
				What: fmt.Sprintf("form factors for reflection %s", r.HKL),
				Got:  len(r.Values),
				Want: n,
			}
		}
		vals := make([]complex128, len(pos))
		for j, i := range pos {
			vals[j] = r.Values[i]
		}
		out[r.HKL] = vals
	}
	return out, nil
}

// resolve maps labels to positions in the scatterer list, collecting
// every label that does not resolve.
func (t *Table) resolve(labels []string) ([]int, error) {
	scatterers := t.Scatterers()
	byLabel := make(map[string]int, len(scatterers))
	for i, s := range scatterers {
		if _, seen := byLabel[s]; !seen {
			byLabel[s] = i
		}
	}

	pos := make([]int, len(labels))
	var unknown []string
	for j, label := range labels {
		i, ok := byLabel[label]
		if !ok {
			unknown = append(unknown, label)
			continue
		}
		pos[j] = i
	}
	if len(unknown) > 0 {
		return nil, &UnknownLabelError{Labels: unknown}
	}
	return pos, nil
}
