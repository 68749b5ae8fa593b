// Package param implements the whole-file param table codec.
//
// # File layout
//
// A table blob is four contiguous regions, all offsets absolute from the
// start of the blob and all multi-byte values little-endian:
//
//	[Header(48)][EntryPointers(12×n)][EntryData][NameBlob]
//
// Header:
//
//	name-blob offset  u32   historically off by +12 in vanilla files;
//	                        never used to size entries (multi-entry case)
//	data-offset hint  u16   unused by readers, clamped to 16 bits on write
//	magic0, magic1    u16   opaque, preserved verbatim
//	entry count       u16
//	table name        32B   shift-jis, null-padded
//	big-endian flag   u8    must be zero
//	magic2            u16   opaque, preserved verbatim
//	unknown           u8    opaque, preserved verbatim
//
// Each entry pointer is (id, data offset, name offset), all int32; a zero
// name offset means the entry has no name. The per-entry byte span
// (stride) is inferred from pointer spacing because declared offsets
// cannot be trusted; see Parse.
//
// Packing rebuilds all three trailing regions with freshly computed
// offsets, by default with entries sorted by ascending id.
package param
