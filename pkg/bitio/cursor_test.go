package bitio

import (
	"bytes"
	"errors"
	"testing"
)

func TestCursor_PackUnpackRoundTrip(t *testing.T) {
	// Every representable value at every width survives a pack/unpack
	// cycle. Widths are paired with a filler field so each group totals
	// eight bits, matching how schemas lay bitfields out.
	for width := 1; width <= 7; width++ {
		for value := 0; value < 1<<width; value++ {
			var pack Cursor
			var out bytes.Buffer

			b, done, err := pack.Pack(uint8(value), width)
			if err != nil {
				t.Fatalf("Pack(%d, %d) failed: %v", value, width, err)
			}
			if done {
				out.WriteByte(b)
			}
			if b, done := pack.Pad(); done {
				out.WriteByte(b)
			}
			if out.Len() != 1 {
				t.Fatalf("Pack(%d, %d): emitted %d bytes, want 1", value, width, out.Len())
			}

			var unpack Cursor
			got, err := unpack.Unpack(bytes.NewReader(out.Bytes()), width)
			if err != nil {
				t.Fatalf("Unpack failed: %v", err)
			}
			if got != uint8(value) {
				t.Errorf("round trip width %d: got %d, want %d", width, got, value)
			}
		}
	}
}

func TestCursor_AdjacentFieldsShareByte(t *testing.T) {
	// Three fields (3+2+3 bits) pack into one byte and unpack in order.
	var c Cursor
	var out bytes.Buffer

	fields := []struct {
		value uint8
		width int
	}{
		{0b101, 3},
		{0b10, 2},
		{0b011, 3},
	}
	for _, f := range fields {
		b, done, err := c.Pack(f.value, f.width)
		if err != nil {
			t.Fatalf("Pack(%d, %d) failed: %v", f.value, f.width, err)
		}
		if done {
			out.WriteByte(b)
		}
	}
	if _, done := c.Pad(); done {
		t.Fatal("Pad emitted a byte after a complete group")
	}
	if out.Len() != 1 {
		t.Fatalf("emitted %d bytes, want 1", out.Len())
	}

	r := bytes.NewReader(out.Bytes())
	var d Cursor
	for i, f := range fields {
		got, err := d.Unpack(r, f.width)
		if err != nil {
			t.Fatalf("Unpack field %d failed: %v", i, err)
		}
		if got != f.value {
			t.Errorf("field %d: got %#b, want %#b", i, got, f.value)
		}
	}
}

func TestCursor_PackOverflow(t *testing.T) {
	var c Cursor
	_, _, err := c.Pack(0b100, 2)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("Pack(4, 2) error = %v, want ErrOverflow", err)
	}
}

func TestCursor_PadEmptyIsNoOp(t *testing.T) {
	var c Cursor
	if _, done := c.Pad(); done {
		t.Fatal("Pad on empty cursor emitted a byte")
	}
}

func TestCursor_PadZeroFills(t *testing.T) {
	var c Cursor
	if _, done, err := c.Pack(0b11, 2); err != nil || done {
		t.Fatalf("Pack failed: done=%v err=%v", done, err)
	}
	b, done := c.Pad()
	if !done {
		t.Fatal("Pad did not emit with pending bits")
	}
	if b != 0b11 {
		t.Errorf("padded byte = %#b, want %#b", b, 0b11)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d after Pad, want 0", c.Pending())
	}
}

func TestCursor_ClearDiscardsReadState(t *testing.T) {
	r := bytes.NewReader([]byte{0xFF, 0x01})
	var c Cursor
	if _, err := c.Unpack(r, 3); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	c.Clear()
	// After Clear the next Unpack consumes a fresh byte.
	got, err := c.Unpack(r, 1)
	if err != nil {
		t.Fatalf("Unpack after Clear failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Unpack after Clear = %d, want 1 (from second byte)", got)
	}
}

func TestCursor_UnpackWidthValidation(t *testing.T) {
	var c Cursor
	for _, w := range []int{0, 8, -1} {
		if _, err := c.Unpack(bytes.NewReader([]byte{0}), w); err == nil {
			t.Errorf("Unpack width %d: expected error", w)
		}
	}
}
