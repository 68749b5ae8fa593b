package codec

import (
	"fmt"

	"github.com/ashenlab/paramforge/pkg/enums"
	"github.com/ashenlab/paramforge/pkg/paramdef"
)

// Entry is one decoded row: a display name plus schema-ordered field
// values. The key set is fixed at construction from the schema (padding
// fields excluded); Set replaces values but can never introduce new fields.
//
// Both by-name and by-position access read the same ordered backing slice.
type Entry struct {
	Name string

	def    *paramdef.ParamDef
	names  []string
	values []Value
	index  map[string]int
}

// NewEntry builds an entry with zero values for every non-padding field of
// the schema.
func NewEntry(def *paramdef.ParamDef, reg *enums.Registry) *Entry {
	e := emptyEntry(def)
	for _, f := range def.Fields {
		if f.InternalType == enums.TagDummy8 && f.BitSize == 0 {
			continue
		}
		var v Value
		if f.BitSize == 0 {
			if d, ok := reg.ResolveField(f.InternalType, f.Name); ok {
				switch d.Kind {
				case enums.KindFloat:
					v = FloatValue(0)
				case enums.KindString:
					v = StringValue("")
				default:
					v = IntValue(0)
				}
			} else {
				v = IntValue(0)
			}
		} else {
			v = IntValue(0)
		}
		e.append(f.Name, v)
	}
	return e
}

func emptyEntry(def *paramdef.ParamDef) *Entry {
	return &Entry{
		def:   def,
		index: make(map[string]int),
	}
}

func (e *Entry) append(name string, v Value) {
	e.index[name] = len(e.names)
	e.names = append(e.names, name)
	e.values = append(e.values, v)
}

// Def returns the owning schema.
func (e *Entry) Def() *paramdef.ParamDef {
	return e.def
}

// Len reports the number of user-visible fields.
func (e *Entry) Len() int {
	return len(e.names)
}

// FieldNames returns the field names in schema order.
func (e *Entry) FieldNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Get returns the value of the named field.
func (e *Entry) Get(name string) (Value, error) {
	i, ok := e.index[name]
	if !ok {
		return Value{}, fmt.Errorf("no field %q in entry %q", name, e.Name)
	}
	return e.values[i], nil
}

// At returns the field name and value at a schema position.
func (e *Entry) At(i int) (string, Value, error) {
	if i < 0 || i >= len(e.names) {
		return "", Value{}, fmt.Errorf("no field with index %d in entry %q", i, e.Name)
	}
	return e.names[i], e.values[i], nil
}

// Set replaces the value of an existing field. New fields cannot be
// created.
func (e *Entry) Set(name string, v Value) error {
	i, ok := e.index[name]
	if !ok {
		return fmt.Errorf("field %q does not exist in entry %q (new fields cannot be created)", name, e.Name)
	}
	e.values[i] = v
	return nil
}

// SetAt replaces the value at a schema position.
func (e *Entry) SetAt(i int, v Value) error {
	if i < 0 || i >= len(e.names) {
		return fmt.Errorf("no field with index %d in entry %q", i, e.Name)
	}
	e.values[i] = v
	return nil
}

// Clone returns a deep copy sharing the (read-only) schema.
func (e *Entry) Clone() *Entry {
	c := &Entry{
		Name:   e.Name,
		def:    e.def,
		names:  make([]string, len(e.names)),
		values: make([]Value, len(e.values)),
		index:  make(map[string]int, len(e.index)),
	}
	copy(c.names, e.names)
	copy(c.values, e.values)
	for k, v := range e.index {
		c.index[k] = v
	}
	return c
}
