// Package tsc implements the TSC/TSCB form-factor table formats used to
// exchange per-reflection, per-atom complex scattering factors between
// crystallographic refinement tools.
//
// # Dual Encoding
//
// The logical table has two equivalent physical encodings:
//   - TSC (text): line-oriented, human-readable
//   - TSCB (binary): packed little-endian records
//
// Both share the same data model and are interchangeable, with one
// documented exception: TSCB does not carry the TITLE and SYMM header
// entries, so they do not survive a round trip through the binary form.
//
// # Data Model
//
// A Table holds an ordered header (TITLE, SYMM, SCATTERERS plus any
// extra keys), an ordered list of scatterer labels derived from the
// SCATTERERS header entry, and one complex128 vector per Miller index
// (h, k, l), with one value per scatterer in label order.
//
// # TSC Text Layout
//
//	TITLE: my structure
//	SYMM: expanded
//	SCATTERERS: C1 N1 O1
//	DATA:
//	0 0 2 1.23,0.04 0.98,-0.01 2.5,0
//	1 0 0 1.19,0.03 1.01,0.02 2.44,0.01
//
// Header values may continue onto following lines that contain no
// colon; continuations are joined with a newline.
//
// # TSCB Binary Layout
//
//	int32  additional header size  (bytes of "KEY: value" text)
//	int32  scatterer label bytes
//	...    additional header text  (excludes TITLE, SYMM, SCATTERERS)
//	...    scatterer labels        (whitespace-separated)
//	int32  reflection count
//	per reflection: 3×int32 (h k l) then one complex128 per scatterer
//
// All integers and floats are little-endian; complex values are IEEE-754
// double-precision real/imaginary pairs. The layout is a wire format
// consumed by external crystallographic software and must not drift.
//
// # Reading Files
//
// ReadFile selects a codec by file extension and falls back to the
// other encoding when the first fails, because extensions are not
// authoritative in this ecosystem. Gzip-compressed files are detected
// by magic bytes and decompressed transparently.
package tsc
