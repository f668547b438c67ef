package tsc

import (
	"fmt"
	"strings"
)

// HeaderError reports a header line that is neither a "KEY: value" pair
// nor a continuation of a previous key.
type HeaderError struct {
	Line string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("malformed header line: %q", e.Line)
}

// DataLineError reports a TSC data line that could not be parsed.
type DataLineError struct {
	Line   string
	Reason string
}

func (e *DataLineError) Error() string {
	return fmt.Sprintf("malformed data line (%s): %q", e.Reason, e.Line)
}

// TruncatedError reports a TSCB stream that ended before the byte count
// implied by its header fields.
type TruncatedError struct {
	Section string
}

func (e *TruncatedError) Error() string {
	return "unexpected end of binary data reading " + e.Section
}

// CountMismatchError reports a structural count that does not match the
// value implied by the rest of the table.
type CountMismatchError struct {
	What string
	Got  int
	Want int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%s: got %d, want %d", e.What, e.Got, e.Want)
}

// UnknownLabelError names every requested scatterer label that is not
// present in the table.
type UnknownLabelError struct {
	Labels []string
}

func (e *UnknownLabelError) Error() string {
	return "unknown atom label(s) used for lookup: " + strings.Join(e.Labels, " ")
}

// MissingFieldsError names every required CIF entry that is absent from
// an imported block.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "CIF block does not contain required entries: " + strings.Join(e.Fields, " ")
}
