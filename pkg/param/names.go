package param

import (
	"bytes"
	"fmt"

	"github.com/ashenlab/paramforge/pkg/codec"
)

// Two byte sequences appear as entry names in LIGHT_BANK of shipped data
// and are not valid shift-jis. They pass through as opaque bytes on both
// read and write instead of raising an encoding error.
var junkEntryNames = [][]byte{
	{0x80, 0x1e},
	{0xfe, 0x1e},
}

func isJunkName(raw []byte) bool {
	for _, junk := range junkEntryNames {
		if bytes.Equal(raw, junk) {
			return true
		}
	}
	return false
}

// readName reads the null-terminated name string at an absolute offset in
// the table blob.
func readName(data []byte, off int, table string) (string, error) {
	if off < 0 || off >= len(data) {
		return "", &codec.StructuralError{Table: table,
			Msg: fmt.Sprintf("name offset %d outside a %d-byte blob", off, len(data))}
	}
	nul := bytes.IndexByte(data[off:], 0)
	if nul < 0 {
		return "", &codec.StructuralError{Table: table,
			Msg: fmt.Sprintf("name string at offset %d is not null-terminated", off)}
	}
	raw := data[off : off+nul]
	if isJunkName(raw) {
		return string(raw), nil
	}
	return codec.DecodeText(raw)
}

// encodeName produces the null-terminated name bytes for the name blob.
// The known junk sequences are written verbatim, never re-encoded.
func encodeName(name string) ([]byte, error) {
	if isJunkName([]byte(name)) {
		return append([]byte(name), 0), nil
	}
	enc, err := codec.EncodeText(name)
	if err != nil {
		return nil, fmt.Errorf("encode entry name %q: %w", name, err)
	}
	return append(enc, 0), nil
}
