// Package bitio packs and unpacks sequences of sub-byte-width unsigned
// values into a byte stream, least-significant-bit first within each byte.
//
// A Cursor carries the partially filled byte between adjacent bitfields so
// that consecutive fields share bytes. Callers must flush the cursor (Pad
// on write, Clear on read) before touching any byte-aligned field; the
// cursor never holds eight or more pending bits.
package bitio

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
)

// ErrOverflow is returned by Pack when a value does not fit its bit width.
var ErrOverflow = errors.New("value exceeds bit width")

// Cursor is a stateful bit accumulator. The zero value is ready to use.
type Cursor struct {
	// read side
	cur    byte
	offset int
	loaded bool

	// write side
	pending uint16
	nBits   int
}

// Unpack reads bitWidth bits (1-7) from the stream. When no bits are
// buffered it consumes exactly one byte from r; subsequent calls extract
// further bits from that byte until all eight are used.
func (c *Cursor) Unpack(r io.ByteReader, bitWidth int) (uint8, error) {
	if bitWidth < 1 || bitWidth > 7 {
		return 0, fmt.Errorf("bitio: unpack width %d out of range [1,7]", bitWidth)
	}
	if !c.loaded {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		c.cur = b
		c.offset = 0
		c.loaded = true
	}
	v := (c.cur >> c.offset) & byte(1<<bitWidth-1)
	c.offset += bitWidth
	if c.offset >= 8 {
		// Any bits past the byte boundary are not retained; schemas pack
		// bitfield groups to exact byte multiples.
		c.cur = 0
		c.offset = 0
		c.loaded = false
	}
	return v, nil
}

// Pack appends value as bitWidth bits (1-7) to the pending buffer. When the
// buffer reaches a full byte that byte is returned with done=true and any
// excess bits stay pending for the next call.
func (c *Cursor) Pack(value uint8, bitWidth int) (b byte, done bool, err error) {
	if bitWidth < 1 || bitWidth > 7 {
		return 0, false, fmt.Errorf("bitio: pack width %d out of range [1,7]", bitWidth)
	}
	if bits.Len8(value) > bitWidth {
		return 0, false, fmt.Errorf("bitio: pack %d (%db) into %d bits: %w",
			value, bits.Len8(value), bitWidth, ErrOverflow)
	}
	c.pending |= uint16(value) << c.nBits
	c.nBits += bitWidth
	if c.nBits >= 8 {
		b = byte(c.pending)
		c.pending >>= 8
		c.nBits -= 8
		return b, true, nil
	}
	return 0, false, nil
}

// Pad zero-fills any pending write bits to a whole byte and returns it.
// With nothing pending it is a no-op and done is false.
func (c *Cursor) Pad() (b byte, done bool) {
	if c.nBits == 0 {
		return 0, false
	}
	b = byte(c.pending)
	c.pending = 0
	c.nBits = 0
	return b, true
}

// Clear discards all pending read and write state without emitting.
func (c *Cursor) Clear() {
	c.cur = 0
	c.offset = 0
	c.loaded = false
	c.pending = 0
	c.nBits = 0
}

// Pending reports the number of buffered write bits.
func (c *Cursor) Pending() int {
	return c.nBits
}
