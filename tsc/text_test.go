package tsc

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTextBasic(t *testing.T) {
	input := `TITLE: my structure
SYMM: expanded
SCATTERERS: C1 C2
DATA:
1 2 3 10.5,0.0 0.0234,-1.1
0 0 2 1.25,0.5 2,0
`
	tbl, err := ParseText([]byte(input))
	if err != nil {
		t.Fatalf("ParseText error: %v", err)
	}

	if title, _ := tbl.Header(KeyTitle); title != "my structure" {
		t.Errorf("TITLE = %q, want %q", title, "my structure")
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	vals, ok := tbl.Get(HKL{1, 2, 3})
	if !ok {
		t.Fatal("reflection (1,2,3) missing")
	}
	if vals[0] != 10.5+0i {
		t.Errorf("value[0] = %v, want (10.5+0i)", vals[0])
	}
	if vals[1] != complex(0.0234, -1.1) {
		t.Errorf("value[1] = %v, want (0.0234-1.1i)", vals[1])
	}
}

func TestParseTextHeaderContinuation(t *testing.T) {
	input := "TITLE: foo\nbar\nSCATTERERS: C1\nDATA:\n"
	tbl, err := ParseText([]byte(input))
	if err != nil {
		t.Fatalf("ParseText error: %v", err)
	}
	if title, _ := tbl.Header(KeyTitle); title != "foo\nbar" {
		t.Errorf("TITLE = %q, want %q", title, "foo\nbar")
	}
}

func TestParseTextMalformedHeader(t *testing.T) {
	// A continuation line with no entry in progress.
	input := "orphan continuation\nTITLE: x\nSCATTERERS: C1\nDATA:\n"
	_, err := ParseText([]byte(input))
	var he *HeaderError
	if !errors.As(err, &he) {
		t.Fatalf("error = %v, want *HeaderError", err)
	}

	// More than one colon on a line.
	input = "TITLE: a:b\nSCATTERERS: C1\nDATA:\n"
	if _, err := ParseText([]byte(input)); !errors.As(err, &he) {
		t.Fatalf("two-colon line: error = %v, want *HeaderError", err)
	}
}

func TestParseTextMissingData(t *testing.T) {
	_, err := ParseText([]byte("TITLE: x\nSCATTERERS: C1\n"))
	if err == nil {
		t.Fatal("expected error for missing DATA: line")
	}
}

func TestParseTextMalformedDataLine(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bad miller index", "x 0 0 1,0"},
		{"missing comma", "1 0 0 1.0"},
		{"bad real part", "1 0 0 abc,0"},
		{"bad imaginary part", "1 0 0 0,abc"},
		{"too few fields", "1 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := "SCATTERERS: C1\nDATA:\n" + tc.line + "\n"
			_, err := ParseText([]byte(input))
			var de *DataLineError
			if !errors.As(err, &de) {
				t.Fatalf("error = %v, want *DataLineError", err)
			}
			if !strings.Contains(de.Line, strings.TrimSpace(tc.line)) && de.Line != tc.line {
				t.Errorf("error line = %q, want it to carry %q", de.Line, tc.line)
			}
		})
	}
}

func TestParseTextCountMismatch(t *testing.T) {
	input := "SCATTERERS: C1 C2 C3\nDATA:\n1 0 0 1,0 2,0\n"
	_, err := ParseText([]byte(input))
	var cm *CountMismatchError
	if !errors.As(err, &cm) {
		t.Fatalf("error = %v, want *CountMismatchError", err)
	}
	if cm.Got != 2 || cm.Want != 3 {
		t.Errorf("mismatch got/want = %d/%d, want 2/3", cm.Got, cm.Want)
	}
}

func TestTextRoundTrip(t *testing.T) {
	want := makeTestTable()
	want.SetHeader("ANHARM", "line one\nline two")

	text, err := EmitText(want)
	if err != nil {
		t.Fatalf("EmitText error: %v", err)
	}
	got, err := ParseText([]byte(text))
	if err != nil {
		t.Fatalf("reparse error: %v\ntext:\n%s", err, text)
	}
	assertTablesEqual(t, got, want)
}

func TestTextRoundTripPreservesFloatBits(t *testing.T) {
	want := NewTable()
	want.SetScatterers([]string{"C1"})
	// Values chosen to expose lossy formatting.
	want.Set(HKL{1, 0, 0}, []complex128{complex(1.0/3.0, -2.0/7.0)})
	want.Set(HKL{0, 1, 0}, []complex128{complex(1e-300, 1e300)})

	text, err := EmitText(want)
	if err != nil {
		t.Fatalf("EmitText error: %v", err)
	}
	got, err := ParseText([]byte(text))
	if err != nil {
		t.Fatalf("reparse error: %v", err)
	}
	assertTablesEqual(t, got, want)
}

func TestEmitTextRejectsRaggedTable(t *testing.T) {
	tbl := NewTable()
	tbl.SetScatterers([]string{"C1", "C2"})
	tbl.Set(HKL{1, 0, 0}, []complex128{1 + 1i})

	if _, err := EmitText(tbl); err == nil {
		t.Fatal("expected count mismatch error")
	}
}

func TestEmitTextEmptyTable(t *testing.T) {
	tbl := NewTable()
	text, err := EmitText(tbl)
	if err != nil {
		t.Fatalf("EmitText error: %v", err)
	}
	got, err := ParseText([]byte(text))
	if err != nil {
		t.Fatalf("reparse error: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}
