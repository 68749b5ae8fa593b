package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind classifies a native field value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is one native field value: a tagged int64 / float64 / string.
// Values are immutable; field edits replace the whole value.
type Value struct {
	kind Kind
	num  int64
	real float64
	text string
}

func IntValue(v int64) Value {
	return Value{kind: KindInt, num: v}
}

func FloatValue(v float64) Value {
	return Value{kind: KindFloat, real: v}
}

func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer payload; zero for non-int values.
func (v Value) Int() int64 {
	return v.num
}

// Float returns the float payload; zero for non-float values.
func (v Value) Float() float64 {
	return v.real
}

// Text returns the string payload; empty for non-string values.
func (v Value) Text() string {
	return v.text
}

// Numeric returns the value as a float64 for range checks. ok is false for
// string values.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.num), true
	case KindFloat:
		return v.real, true
	default:
		return 0, false
	}
}

func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindString:
		return v.text
	default:
		return fmt.Sprintf("<invalid kind %d>", v.kind)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return json.Marshal(v.num)
	case KindFloat:
		return json.Marshal(v.real)
	case KindString:
		return json.Marshal(v.text)
	default:
		return nil, fmt.Errorf("codec: marshal value of invalid kind %d", v.kind)
	}
}
