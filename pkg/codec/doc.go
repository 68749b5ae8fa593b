// Package codec implements the schema-driven entry codec for param tables.
//
// An entry is a fixed-layout row whose field order, widths, and types come
// from an externally supplied paramdef schema. The codec walks the schema
// in order and, per field:
//
//   - bit width 1-7: packed/unpacked through a bitio.Cursor,
//     least-significant-bit first, sharing bytes with adjacent bitfields
//   - dummy8: reserved space, must be all zero on disk, never surfaced as
//     a value
//   - anything else: a little-endian scalar (or fixed-width shift-jis
//     string) whose tag resolves through the enums registry
//
// Encoding is format-stable: an entry decoded from well-formed bytes
// re-encodes to exactly those bytes. On encode every scalar is validated
// against its value type's native kind and inclusive [min, max] range.
//
// Two fields are tolerated as corrupt in shipped vanilla data and decode
// to 1.0 on structural failure instead of erroring; see Decode.
package codec
