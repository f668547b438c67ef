package tsc

import "strings"

// ============================================================
// Header grammar (shared by the TSC and TSCB codecs)
// ============================================================
//
// Header lines:
//   KEY: value        - starts a new entry (exactly one colon)
//   bare text         - continues the previous entry, joined by "\n"
//
// A bare line with no entry in progress, or a line with more than one
// colon, is malformed.

// parseHeaderBlock parses a block of header text into ordered entries.
// An empty or all-whitespace block yields no entries.
func parseHeaderBlock(s string) ([]HeaderEntry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var entries []HeaderEntry
	cur := -1
	for _, line := range strings.Split(s, "\n") {
		parts := strings.Split(line, ":")
		switch {
		case len(parts) == 2:
			entries = append(entries, HeaderEntry{
				Key:   parts[0],
				Value: strings.TrimPrefix(parts[1], " "),
			})
			cur = len(entries) - 1
		case len(parts) == 1 && cur >= 0:
			entries[cur].Value += "\n" + parts[0]
		default:
			return nil, &HeaderError{Line: line}
		}
	}
	return entries, nil
}

// formatHeaderBlock renders entries as "KEY: value" lines, one per
// entry, with embedded newlines in values emitted as continuation
// lines. Keys listed in omit are skipped. The result has no trailing
// newline.
func formatHeaderBlock(entries []HeaderEntry, omit map[string]bool) string {
	var b strings.Builder
	first := true
	for _, e := range entries {
		if omit[e.Key] {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(e.Value)
	}
	return b.String()
}
