// Package enums holds the value-type registry: the mapping from a field's
// encoded type tag to its byte width, binary layout, and valid numeric
// range. The registry is built once and shared read-only across codecs.
package enums

import "math"

// Kind classifies the native representation of a value type.
type Kind uint8

const (
	// KindInt covers all signed and unsigned integer layouts.
	KindInt Kind = iota
	// KindFloat covers IEEE-754 single-precision layouts.
	KindFloat
	// KindString covers fixed-width shift-jis string fields.
	KindString
	// KindPad covers reserved zero-filled space ("dummy8").
	KindPad
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindPad:
		return "pad"
	default:
		return "unknown"
	}
}

// Built-in type tags.
const (
	TagU8     = "u8"
	TagS8     = "s8"
	TagU16    = "u16"
	TagS16    = "s16"
	TagU32    = "u32"
	TagS32    = "s32"
	TagF32    = "f32"
	TagDummy8 = "dummy8"
	TagFixStr = "fixstr"
)

// Descriptor describes the binary layout and numeric domain of one encoded
// value type. All layouts are little-endian. Size 0 means the field's own
// declared byte width applies (fixstr, dummy8).
type Descriptor struct {
	Tag    string
	Size   int
	Kind   Kind
	Signed bool
	Min    float64
	Max    float64
}

// Registry maps encoded type tags to descriptors, plus the explicit
// per-field fallback entries for tags that known shipped schemas leave
// unresolvable.
type Registry struct {
	types     map[string]Descriptor
	fallbacks map[string]Descriptor
}

// NewRegistry builds the registry with the built-in type set and the one
// named field fallback (sfxMultiplier resolves to f32 when its tag is
// unknown).
func NewRegistry() *Registry {
	r := &Registry{
		types:     make(map[string]Descriptor),
		fallbacks: make(map[string]Descriptor),
	}
	for _, d := range []Descriptor{
		{Tag: TagU8, Size: 1, Kind: KindInt, Min: 0, Max: math.MaxUint8},
		{Tag: TagS8, Size: 1, Kind: KindInt, Signed: true, Min: math.MinInt8, Max: math.MaxInt8},
		{Tag: TagU16, Size: 2, Kind: KindInt, Min: 0, Max: math.MaxUint16},
		{Tag: TagS16, Size: 2, Kind: KindInt, Signed: true, Min: math.MinInt16, Max: math.MaxInt16},
		{Tag: TagU32, Size: 4, Kind: KindInt, Min: 0, Max: math.MaxUint32},
		{Tag: TagS32, Size: 4, Kind: KindInt, Signed: true, Min: math.MinInt32, Max: math.MaxInt32},
		{Tag: TagF32, Size: 4, Kind: KindFloat, Signed: true, Min: -math.MaxFloat32, Max: math.MaxFloat32},
		{Tag: TagDummy8, Size: 0, Kind: KindPad},
		{Tag: TagFixStr, Size: 0, Kind: KindString},
	} {
		r.types[d.Tag] = d
	}
	r.fallbacks["sfxMultiplier"] = r.types[TagF32]
	return r
}

// Lookup resolves a type tag.
func (r *Registry) Lookup(tag string) (Descriptor, bool) {
	d, ok := r.types[tag]
	return d, ok
}

// ResolveField resolves a type tag in the context of a named field,
// applying the field fallback entries when the tag itself is unknown.
func (r *Registry) ResolveField(tag, fieldName string) (Descriptor, bool) {
	if d, ok := r.types[tag]; ok {
		return d, true
	}
	d, ok := r.fallbacks[fieldName]
	return d, ok
}
