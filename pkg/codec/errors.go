package codec

import "fmt"

// StructuralError reports malformed binary structure: bad header or pointer
// data, short entry data, a name string with no null terminator, or
// non-zero bytes inside a padding field. It is fatal for the table being
// parsed.
type StructuralError struct {
	Table string
	Entry string
	Field string
	Msg   string
}

func (e *StructuralError) Error() string {
	s := "param " + e.Table
	if e.Entry != "" {
		s += " entry " + e.Entry
	}
	if e.Field != "" {
		s += " field " + e.Field
	}
	return s + ": " + e.Msg
}

// SchemaError reports an unknown table name or an unresolvable field type
// tag.
type SchemaError struct {
	Table string
	Field string
	Tag   string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("param %s field %s: unknown internal type %q", e.Table, e.Field, e.Tag)
	}
	if e.Err != nil {
		return fmt.Sprintf("param %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("param %s: schema lookup failed", e.Table)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// RangeError reports an encode-time field value whose native kind does not
// match its value type, or whose numeric value falls outside the type's
// declared range.
type RangeError struct {
	Table   string
	EntryID int32
	Field   string
	Value   Value
	// Mismatch is true for a kind mismatch; otherwise the value is out of
	// the [Min, Max] range below.
	Mismatch bool
	Want     string
	Min, Max float64
}

func (e *RangeError) Error() string {
	if e.Mismatch {
		return fmt.Sprintf("param %s entry %d field %s: value %s has kind %s, want %s",
			e.Table, e.EntryID, e.Field, e.Value, e.Value.Kind(), e.Want)
	}
	return fmt.Sprintf("param %s entry %d field %s: value %s out of range [%v, %v]",
		e.Table, e.EntryID, e.Field, e.Value, e.Min, e.Max)
}
