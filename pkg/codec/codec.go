package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ashenlab/paramforge/pkg/bitio"
	"github.com/ashenlab/paramforge/pkg/enums"
	"github.com/ashenlab/paramforge/pkg/paramdef"
)

// Codec translates between raw entry bytes and Entry field values for one
// table schema. Fields are processed strictly in schema order on both
// paths; the bit cursor is flushed at every transition into a byte-aligned
// field and at the end of the record.
type Codec struct {
	def *paramdef.ParamDef
	reg *enums.Registry
}

func New(def *paramdef.ParamDef, reg *enums.Registry) *Codec {
	return &Codec{def: def, reg: reg}
}

// Fields `inverseToneMapMul` and `sfxMultiplier` ship corrupt in vanilla
// data (m99 and the default ToneMapBank); a structurally failed decode
// there yields 1.0 instead of an error. This list must not grow.
func corruptVanillaField(f paramdef.FieldDef) bool {
	name := f.DebugName
	if name == "" {
		name = f.Name
	}
	return name == "inverseToneMapMul" || name == "sfxMultiplier"
}

// Decode unpacks one entry's raw bytes into an Entry with the given
// display name. Padding fields are consumed and zero-checked but not
// retained as values.
func (c *Codec) Decode(data []byte, name string) (*Entry, error) {
	r := bytes.NewReader(data)
	var cur bitio.Cursor
	table := c.def.ParamName

	e := emptyEntry(c.def)
	e.Name = name

	for _, f := range c.def.Fields {
		switch {
		case f.BitSize > 0:
			v, err := cur.Unpack(r, f.BitSize)
			if err != nil {
				return nil, &StructuralError{Table: table, Entry: name, Field: f.Name,
					Msg: "entry data ends inside a bitfield"}
			}
			e.append(f.Name, IntValue(int64(v)))

		case f.InternalType == enums.TagDummy8:
			cur.Clear()
			pad := make([]byte, f.Size)
			if _, err := io.ReadFull(r, pad); err != nil {
				return nil, &StructuralError{Table: table, Entry: name, Field: f.Name,
					Msg: fmt.Sprintf("entry data ends inside padding (%v)", err)}
			}
			if !bytes.Equal(pad, make([]byte, f.Size)) {
				return nil, &StructuralError{Table: table, Entry: name, Field: f.Name,
					Msg: fmt.Sprintf("padding is not null: % x", pad)}
			}

		default:
			cur.Clear()
			desc, ok := c.reg.ResolveField(f.InternalType, f.Name)
			if !ok {
				return nil, &SchemaError{Table: table, Field: f.Name, Tag: f.InternalType}
			}
			size := desc.Size
			if size == 0 {
				size = f.Size
			}
			buf := make([]byte, size)
			if _, err := io.ReadFull(r, buf); err != nil {
				if corruptVanillaField(f) {
					e.append(f.Name, FloatValue(1.0))
					continue
				}
				return nil, &StructuralError{Table: table, Entry: name, Field: f.Name,
					Msg: fmt.Sprintf("entry data ends inside field (%v)", err)}
			}
			v, err := decodeScalar(desc, buf)
			if err != nil {
				return nil, &StructuralError{Table: table, Entry: name, Field: f.Name, Msg: err.Error()}
			}
			e.append(f.Name, v)
		}
	}
	return e, nil
}

func decodeScalar(desc enums.Descriptor, buf []byte) (Value, error) {
	switch desc.Kind {
	case enums.KindInt:
		var u uint64
		for i, b := range buf {
			u |= uint64(b) << (8 * i)
		}
		if desc.Signed {
			shift := 64 - 8*len(buf)
			return IntValue(int64(u<<shift) >> shift), nil
		}
		return IntValue(int64(u)), nil
	case enums.KindFloat:
		return FloatValue(float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))), nil
	case enums.KindString:
		s, err := DecodeText(TrimFixed(buf))
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	default:
		return Value{}, fmt.Errorf("cannot decode value of kind %s", desc.Kind)
	}
}

// Encode packs an entry back into its exact byte layout, in schema field
// order, validating every scalar's kind and numeric range against its
// value type. id is carried for error reporting only.
func (c *Codec) Encode(e *Entry, id int32) ([]byte, error) {
	var out bytes.Buffer
	var cur bitio.Cursor
	table := c.def.ParamName

	for _, f := range c.def.Fields {
		if f.BitSize > 0 {
			v, err := e.Get(f.Name)
			if err != nil {
				return nil, err
			}
			if v.Kind() != KindInt {
				return nil, &RangeError{Table: table, EntryID: id, Field: f.Name, Value: v,
					Mismatch: true, Want: "int"}
			}
			maxBits := int64(1)<<f.BitSize - 1
			if v.Int() < 0 || v.Int() > maxBits {
				return nil, &RangeError{Table: table, EntryID: id, Field: f.Name, Value: v,
					Min: 0, Max: float64(maxBits)}
			}
			if b, done, err := cur.Pack(uint8(v.Int()), f.BitSize); err != nil {
				return nil, err
			} else if done {
				out.WriteByte(b)
			}
			continue
		}

		if b, done := cur.Pad(); done {
			out.WriteByte(b)
		}

		if f.InternalType == enums.TagDummy8 {
			out.Write(make([]byte, f.Size))
			continue
		}

		desc, ok := c.reg.ResolveField(f.InternalType, f.Name)
		if !ok {
			return nil, &SchemaError{Table: table, Field: f.Name, Tag: f.InternalType}
		}
		v, err := e.Get(f.Name)
		if err != nil {
			return nil, err
		}
		if err := encodeScalar(&out, desc, f, v, table, id); err != nil {
			return nil, err
		}
	}

	if b, done := cur.Pad(); done {
		out.WriteByte(b)
	}
	return out.Bytes(), nil
}

func encodeScalar(out *bytes.Buffer, desc enums.Descriptor, f paramdef.FieldDef, v Value, table string, id int32) error {
	switch desc.Kind {
	case enums.KindInt:
		if v.Kind() != KindInt {
			return &RangeError{Table: table, EntryID: id, Field: f.Name, Value: v,
				Mismatch: true, Want: "int"}
		}
		n := float64(v.Int())
		if n < desc.Min || n > desc.Max {
			return &RangeError{Table: table, EntryID: id, Field: f.Name, Value: v,
				Min: desc.Min, Max: desc.Max}
		}
		u := uint64(v.Int())
		for i := 0; i < desc.Size; i++ {
			out.WriteByte(byte(u >> (8 * i)))
		}

	case enums.KindFloat:
		if v.Kind() != KindFloat {
			return &RangeError{Table: table, EntryID: id, Field: f.Name, Value: v,
				Mismatch: true, Want: "float"}
		}
		if v.Float() < desc.Min || v.Float() > desc.Max {
			return &RangeError{Table: table, EntryID: id, Field: f.Name, Value: v,
				Min: desc.Min, Max: desc.Max}
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v.Float())))
		out.Write(b[:])

	case enums.KindString:
		if v.Kind() != KindString {
			return &RangeError{Table: table, EntryID: id, Field: f.Name, Value: v,
				Mismatch: true, Want: "string"}
		}
		enc, err := EncodeText(v.Text())
		if err != nil {
			return fmt.Errorf("param %s entry %d field %s: %w", table, id, f.Name, err)
		}
		if len(enc) > f.Size {
			return fmt.Errorf("param %s entry %d field %s: encoded string is %d bytes, fixed width is %d",
				table, id, f.Name, len(enc), f.Size)
		}
		out.Write(enc)
		out.Write(make([]byte, f.Size-len(enc)))

	default:
		return fmt.Errorf("param %s entry %d field %s: cannot encode kind %s",
			table, id, f.Name, desc.Kind)
	}
	return nil
}
