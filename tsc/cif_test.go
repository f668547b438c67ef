package tsc

import (
	"errors"
	"testing"
)

// fakeBlock is a minimal in-memory Block for importer tests.
type fakeBlock struct {
	fields map[string]string
	loops  map[string]fakeLoop
}

type fakeLoop map[string][]string

func (b *fakeBlock) Field(name string) (string, bool) {
	v, ok := b.fields[name]
	return v, ok
}

func (b *fakeBlock) Loop(name string) (Loop, bool) {
	l, ok := b.loops[name]
	return l, ok
}

func (l fakeLoop) Column(name string) ([]string, bool) {
	col, ok := l[name]
	return col, ok
}

func makeTestBlock() *fakeBlock {
	return &fakeBlock{
		fields: map[string]string{
			cifFieldSource:       "wavefunction.wfn",
			cifFieldPartName:     "Hirshfeld",
			cifFieldPartSoftware: "NoSpherA2",
			cifFieldLabels:       "C1 O1",
		},
		loops: map[string]fakeLoop{
			cifLoopName: {
				cifColH:    {"1", "0"},
				cifColK:    {"0", "1"},
				cifColL:    {"0", "-2"},
				cifColReal: {"[1.5 2.5]", "[1.1 2.1]"},
				cifColImag: {"[0.1 -0.2]", "[0 0.01]"},
			},
		},
	}
}

func TestFromCIFBlock(t *testing.T) {
	tbl, err := FromCIFBlock(makeTestBlock())
	if err != nil {
		t.Fatalf("FromCIFBlock error: %v", err)
	}

	got := tbl.Scatterers()
	if len(got) != 2 || got[0] != "C1" || got[1] != "O1" {
		t.Fatalf("scatterers = %v, want [C1 O1]", got)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}

	vals, ok := tbl.Get(HKL{1, 0, 0})
	if !ok {
		t.Fatal("reflection (1,0,0) missing")
	}
	if vals[0] != 1.5+0.1i || vals[1] != 2.5-0.2i {
		t.Errorf("values at (1,0,0) = %v, want [(1.5+0.1i) (2.5-0.2i)]", vals)
	}
	vals, _ = tbl.Get(HKL{0, 1, -2})
	if vals[1] != 2.1+0.01i {
		t.Errorf("value[1] at (0,1,-2) = %v, want (2.1+0.01i)", vals[1])
	}
}

func TestFromCIFBlockMissingFields(t *testing.T) {
	b := makeTestBlock()
	delete(b.fields, cifFieldSource)
	delete(b.fields, cifFieldPartSoftware)

	_, err := FromCIFBlock(b)
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("error = %v, want *MissingFieldsError", err)
	}
	if len(mf.Fields) != 2 {
		t.Errorf("missing fields = %v, want both absent entries named", mf.Fields)
	}
}

func TestFromCIFBlockMissingLoop(t *testing.T) {
	b := makeTestBlock()
	delete(b.loops, cifLoopName)

	_, err := FromCIFBlock(b)
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("error = %v, want *MissingFieldsError", err)
	}
}

func TestFromCIFBlockMissingColumn(t *testing.T) {
	b := makeTestBlock()
	delete(b.loops[cifLoopName], cifColImag)

	_, err := FromCIFBlock(b)
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("error = %v, want *MissingFieldsError", err)
	}
	if len(mf.Fields) != 1 || mf.Fields[0] != cifColImag {
		t.Errorf("missing fields = %v, want [%s]", mf.Fields, cifColImag)
	}
}

func TestFromCIFBlockNotMultipleOfScatterers(t *testing.T) {
	b := makeTestBlock()
	b.loops[cifLoopName][cifColReal] = []string{"[1.5 2.5 9.9]", "[1.1 2.1]"}
	b.loops[cifLoopName][cifColImag] = []string{"[0.1 -0.2 9.9]", "[0 0.01]"}

	_, err := FromCIFBlock(b)
	var cm *CountMismatchError
	if !errors.As(err, &cm) {
		t.Fatalf("error = %v, want *CountMismatchError", err)
	}
}

func TestFromCIFBlockReflectionCountMismatch(t *testing.T) {
	b := makeTestBlock()
	// Two values per row keeps the multiple-of-scatterers property but
	// drops a whole reflection relative to the Miller columns.
	b.loops[cifLoopName][cifColReal] = []string{"[1.5 2.5]"}
	b.loops[cifLoopName][cifColImag] = []string{"[0.1 -0.2]"}

	_, err := FromCIFBlock(b)
	var cm *CountMismatchError
	if !errors.As(err, &cm) {
		t.Fatalf("error = %v, want *CountMismatchError", err)
	}
	if cm.Got != 1 || cm.Want != 2 {
		t.Errorf("mismatch got/want = %d/%d, want 1/2", cm.Got, cm.Want)
	}
}

func TestFromCIFBlockRealImagCountMismatch(t *testing.T) {
	b := makeTestBlock()
	b.loops[cifLoopName][cifColImag] = []string{"[0.1 -0.2]", "[0]"}

	_, err := FromCIFBlock(b)
	var cm *CountMismatchError
	if !errors.As(err, &cm) {
		t.Fatalf("error = %v, want *CountMismatchError", err)
	}
}
