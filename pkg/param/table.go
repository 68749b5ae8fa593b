package param

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/ashenlab/paramforge/pkg/codec"
	"github.com/ashenlab/paramforge/pkg/enums"
	"github.com/ashenlab/paramforge/pkg/paramdef"
)

const (
	headerSize       = 48
	entryPointerSize = 12
	tableNameSize    = 32
)

// LEVELSYNC_PARAM_ST ships with a single entry and a wrong name-blob
// offset in its header; its record size is hard-coded instead of inferred.
const (
	levelSyncTableName = "LEVELSYNC_PARAM_ST"
	levelSyncStride    = 220
)

type entryPointer struct {
	ID         int32
	DataOffset int32
	NameOffset int32
}

// Table is one parsed param table: an id-keyed set of entries sharing a
// schema, plus the opaque header values that must survive a
// read-modify-write cycle verbatim.
type Table struct {
	// Name is the table's internal name (e.g. "WEAPON_PARAM_ST"), used to
	// resolve its schema.
	Name string

	entries map[int32]*codec.Entry
	order   []int32 // insertion order, for unsorted repacks
	magic   [3]uint16
	unknown byte
	def     *paramdef.ParamDef
	reg     *enums.Registry
}

// New builds an empty table for a schema. Magic values start zeroed; parsed
// tables carry theirs over from the file.
func New(def *paramdef.ParamDef, reg *enums.Registry) *Table {
	return &Table{
		Name:    def.ParamName,
		entries: make(map[int32]*codec.Entry),
		def:     def,
		reg:     reg,
	}
}

// Parse reads a whole param table blob: header, entry-pointer array,
// entry data, and name blob. The schema is resolved through defs by the
// table's internal name.
func Parse(data []byte, defs *paramdef.Cache, reg *enums.Registry) (*Table, error) {
	if len(data) < headerSize {
		return nil, &codec.StructuralError{
			Msg: fmt.Sprintf("table blob is %d bytes, shorter than the %d-byte header", len(data), headerSize),
		}
	}

	le := binary.LittleEndian
	nameDataOffset := le.Uint32(data[0:4])
	// data[4:6] is the 16-bit entry-data offset hint; unreliable, unused.
	magic0 := le.Uint16(data[6:8])
	magic1 := le.Uint16(data[8:10])
	entryCount := int(le.Uint16(data[10:12]))

	name, err := codec.DecodeText(codec.TrimFixed(data[12 : 12+tableNameSize]))
	if err != nil {
		return nil, &codec.StructuralError{Msg: fmt.Sprintf("undecodable table name: %v", err)}
	}
	if data[44] != 0 {
		return nil, &codec.StructuralError{Table: name, Msg: "big-endian param tables are not supported"}
	}
	magic2 := le.Uint16(data[45:47])
	unknown := data[47]

	def, err := defs.Get(name)
	if err != nil {
		return nil, &codec.SchemaError{Table: name, Err: err}
	}

	pointerEnd := headerSize + entryCount*entryPointerSize
	if pointerEnd > len(data) {
		return nil, &codec.StructuralError{Table: name,
			Msg: fmt.Sprintf("entry count %d overruns a %d-byte blob", entryCount, len(data))}
	}
	pointers := make([]entryPointer, entryCount)
	for i := range pointers {
		off := headerSize + i*entryPointerSize
		pointers[i] = entryPointer{
			ID:         int32(le.Uint32(data[off : off+4])),
			DataOffset: int32(le.Uint32(data[off+4 : off+8])),
			NameOffset: int32(le.Uint32(data[off+8 : off+12])),
		}
	}

	t := &Table{
		Name:    name,
		entries: make(map[int32]*codec.Entry, entryCount),
		magic:   [3]uint16{magic0, magic1, magic2},
		unknown: unknown,
		def:     def,
		reg:     reg,
	}
	if entryCount == 0 {
		return t, nil
	}

	stride, err := inferStride(name, nameDataOffset, pointers)
	if err != nil {
		return nil, err
	}

	ec := codec.New(def, reg)
	for _, p := range pointers {
		off := int(p.DataOffset)
		if off < 0 || off+stride > len(data) {
			return nil, &codec.StructuralError{Table: name,
				Msg: fmt.Sprintf("entry %d data offset %d overruns a %d-byte blob (stride %d)",
					p.ID, off, len(data), stride)}
		}
		var entryName string
		if p.NameOffset != 0 {
			entryName, err = readName(data, int(p.NameOffset), name)
			if err != nil {
				return nil, err
			}
		}
		e, err := ec.Decode(data[off:off+stride], entryName)
		if err != nil {
			return nil, err
		}
		// Duplicate ids overwrite silently; last pointer wins.
		if _, exists := t.entries[p.ID]; !exists {
			t.order = append(t.order, p.ID)
		}
		t.entries[p.ID] = e
	}
	return t, nil
}

// inferStride determines the uniform per-entry byte span. Declared offsets
// in the header cannot be trusted, so the stride comes from pointer
// spacing, with the one hard-coded single-entry exception.
func inferStride(name string, nameDataOffset uint32, pointers []entryPointer) (int, error) {
	var stride int
	switch {
	case len(pointers) == 1:
		if name == levelSyncTableName {
			stride = levelSyncStride
		} else {
			stride = int(nameDataOffset) - int(pointers[0].DataOffset)
		}
	default:
		stride = int(pointers[1].DataOffset) - int(pointers[0].DataOffset)
	}
	if stride <= 0 {
		return 0, &codec.StructuralError{Table: name,
			Msg: fmt.Sprintf("cannot infer entry stride (got %d)", stride)}
	}
	return stride, nil
}

// Get returns the entry with the given id.
func (t *Table) Get(id int32) (*codec.Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// Put inserts or replaces an entry. The entry must share the table's
// schema.
func (t *Table) Put(id int32, e *codec.Entry) error {
	if e.Def() != t.def {
		return fmt.Errorf("param %s: entry schema is %s, want %s",
			t.Name, e.Def().ParamName, t.def.ParamName)
	}
	if _, exists := t.entries[id]; !exists {
		t.order = append(t.order, id)
	}
	t.entries[id] = e
	return nil
}

// Pop removes and returns the entry with the given id.
func (t *Table) Pop(id int32) (*codec.Entry, bool) {
	e, ok := t.entries[id]
	if !ok {
		return nil, false
	}
	delete(t.entries, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return e, true
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// IDs returns all entry ids in ascending order.
func (t *Table) IDs() []int32 {
	ids := make([]int32, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Range returns up to count (id, entry) pairs starting at position start of
// the ascending id order.
func (t *Table) Range(start, count int) []IDEntry {
	ids := t.IDs()
	if start >= len(ids) {
		return nil
	}
	end := start + count
	if end > len(ids) {
		end = len(ids)
	}
	out := make([]IDEntry, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, IDEntry{ID: id, Entry: t.entries[id]})
	}
	return out
}

// IDEntry pairs an entry with its id.
type IDEntry struct {
	ID    int32
	Entry *codec.Entry
}

// NamedEntries returns the entries with a non-empty name that does not
// start with "0" (and, when ignorePolyG is set, not with "PolyG" either,
// which is cutscene-specific lighting).
func (t *Table) NamedEntries(ignorePolyG bool) map[int32]*codec.Entry {
	out := make(map[int32]*codec.Entry)
	for id, e := range t.entries {
		if e.Name == "" || strings.HasPrefix(e.Name, "0") {
			continue
		}
		if ignorePolyG && strings.HasPrefix(strings.ToLower(e.Name), "polyg") {
			continue
		}
		out[id] = e
	}
	return out
}

// Def returns the table's schema.
func (t *Table) Def() *paramdef.ParamDef {
	return t.def
}

// Magic returns the three opaque header discriminants, preserved verbatim
// from parse to pack.
func (t *Table) Magic() [3]uint16 {
	return t.magic
}

// Unknown returns the opaque trailing header byte.
func (t *Table) Unknown() byte {
	return t.unknown
}

// Pack serializes the table with entries sorted by ascending id.
func (t *Table) Pack() ([]byte, error) {
	return t.pack(true)
}

// PackUnsorted serializes the table preserving the current entry order
// (parse order plus later insertions).
func (t *Table) PackUnsorted() ([]byte, error) {
	return t.pack(false)
}

func (t *Table) pack(sortByID bool) ([]byte, error) {
	ids := make([]int32, len(t.order))
	copy(ids, t.order)
	if sortByID {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	var packedData, packedNames bytes.Buffer
	dataOffsets := make([]int, 0, len(ids))
	nameOffsets := make([]int, 0, len(ids))

	ec := codec.New(t.def, t.reg)
	for _, id := range ids {
		e := t.entries[id]

		nz, err := encodeName(e.Name)
		if err != nil {
			return nil, fmt.Errorf("param %s entry %d: %w", t.Name, id, err)
		}
		nameOffsets = append(nameOffsets, packedNames.Len())
		packedNames.Write(nz)

		raw, err := ec.Encode(e, id)
		if err != nil {
			return nil, err
		}
		dataOffsets = append(dataOffsets, packedData.Len())
		packedData.Write(raw)
	}

	entryDataOffset := headerSize + entryPointerSize*len(ids)
	nameDataOffset := entryDataOffset + packedData.Len()

	nameField, err := codec.EncodeText(t.Name)
	if err != nil {
		return nil, fmt.Errorf("param %s: encode table name: %w", t.Name, err)
	}
	if len(nameField) > tableNameSize {
		return nil, fmt.Errorf("param %s: table name exceeds %d bytes", t.Name, tableNameSize)
	}

	le := binary.LittleEndian
	out := bytes.NewBuffer(make([]byte, 0, nameDataOffset+packedNames.Len()))

	var header [headerSize]byte
	le.PutUint32(header[0:4], uint32(nameDataOffset))
	// The 16-bit data-offset hint is not used by readers; clamp it.
	hint := entryDataOffset
	if hint > 0xFFFF {
		hint = 0xFFFF
	}
	le.PutUint16(header[4:6], uint16(hint))
	le.PutUint16(header[6:8], t.magic[0])
	le.PutUint16(header[8:10], t.magic[1])
	le.PutUint16(header[10:12], uint16(len(ids)))
	copy(header[12:12+tableNameSize], nameField)
	header[44] = 0
	le.PutUint16(header[45:47], t.magic[2])
	header[47] = t.unknown
	out.Write(header[:])

	for i, id := range ids {
		var p [entryPointerSize]byte
		le.PutUint32(p[0:4], uint32(id))
		le.PutUint32(p[4:8], uint32(entryDataOffset+dataOffsets[i]))
		le.PutUint32(p[8:12], uint32(nameDataOffset+nameOffsets[i]))
		out.Write(p[:])
	}

	out.Write(packedData.Bytes())
	out.Write(packedNames.Bytes())
	return out.Bytes(), nil
}
