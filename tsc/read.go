package tsc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// ============================================================
// Format front door
// ============================================================
//
// File extensions are not authoritative in this ecosystem: tools
// regularly hand a .tsc path to a binary table and vice versa. The
// front door therefore tries the extension-appropriate codec first and
// falls back to the other before giving up.

// Codec is one physical encoding of the form-factor table.
type Codec interface {
	// Parse decodes a complete buffer into a table.
	Parse(data []byte) (*Table, error)
	// Serialize encodes a table into a complete buffer.
	Serialize(t *Table) ([]byte, error)
}

// TextCodec implements Codec for the TSC text format.
type TextCodec struct{}

// Name returns "tsc".
func (TextCodec) Name() string { return "tsc" }

func (TextCodec) Parse(data []byte) (*Table, error) { return ParseText(data) }

func (TextCodec) Serialize(t *Table) ([]byte, error) {
	s, err := EmitText(t)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// BinaryCodec implements Codec for the TSCB binary format.
type BinaryCodec struct{}

// Name returns "tscb".
func (BinaryCodec) Name() string { return "tscb" }

func (BinaryCodec) Parse(data []byte) (*Table, error) { return ParseBinary(data) }

func (BinaryCodec) Serialize(t *Table) ([]byte, error) { return EmitBinary(t) }

// ReadFile reads a form-factor table from path. The codec is chosen by
// extension (.tsc text, .tscb binary; a .gz suffix is stripped first);
// if it fails, the other codec is tried before the combined error is
// returned. Gzip-compressed content is detected by magic bytes and
// decompressed transparently regardless of suffix.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = maybeGunzip(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	primary, fallback := codecsForPath(path)
	t, perr := primary.Parse(data)
	if perr == nil {
		return t, nil
	}
	if t, ferr := fallback.Parse(data); ferr == nil {
		return t, nil
	}
	return nil, fmt.Errorf("cannot read %s as either TSC or TSCB: %w", path, perr)
}

// Parse decodes an in-memory buffer, trying both encodings. Buffers
// that are not valid UTF-8 are tried binary-first.
func Parse(data []byte) (*Table, error) {
	primary, fallback := Codec(TextCodec{}), Codec(BinaryCodec{})
	if !utf8.Valid(data) {
		primary, fallback = fallback, primary
	}
	t, perr := primary.Parse(data)
	if perr == nil {
		return t, nil
	}
	if t, ferr := fallback.Parse(data); ferr == nil {
		return t, nil
	}
	return nil, fmt.Errorf("cannot parse buffer as either TSC or TSCB: %w", perr)
}

// WriteFile serializes a table to path, choosing the codec by
// extension (.tscb binary, anything else text). A .gz suffix
// gzip-compresses the output.
func WriteFile(path string, t *Table) error {
	compress := strings.HasSuffix(path, ".gz")
	codec, _ := codecsForPath(path)
	data, err := codec.Serialize(t)
	if err != nil {
		return err
	}
	if compress {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
		data = buf.Bytes()
	}
	return os.WriteFile(path, data, 0o644)
}

// codecsForPath returns the extension-preferred codec and its fallback.
func codecsForPath(path string) (primary, fallback Codec) {
	name := strings.TrimSuffix(path, ".gz")
	if filepath.Ext(name) == ".tscb" {
		return BinaryCodec{}, TextCodec{}
	}
	return TextCodec{}, BinaryCodec{}
}

// maybeGunzip decompresses data if it starts with the gzip magic bytes.
func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	return out, nil
}
