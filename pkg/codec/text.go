package codec

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
)

// DecodeText decodes shift-jis bytes to a UTF-8 string. Invalid sequences
// decode to the Unicode replacement character rather than failing; callers
// that must not decode certain byte sequences (the junk entry names) filter
// them out before calling.
func DecodeText(b []byte) (string, error) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeText encodes a UTF-8 string as shift-jis. Unsupported runes are an
// error.
func EncodeText(s string) ([]byte, error) {
	return japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
}

// TrimFixed strips the trailing null padding from a fixed-width string
// field.
func TrimFixed(b []byte) []byte {
	return bytes.TrimRight(b, "\x00")
}
