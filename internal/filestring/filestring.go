// Package filestring implements the canonical length-prefixed packing used
// wherever an ordered sequence of byte strings must round-trip through a
// single opaque blob: disk-node child tuples, kv_engine chunk records, and
// signable canonical fingerprints all pack through Pack/Unpack.
//
// Wire format: a 4-byte little-endian element count, followed by each
// element as a 4-byte little-endian length and its raw bytes. Empty elements
// are represented by a zero length and require no escaping.
//
// © 2025 arclet authors. MIT License.
package filestring

import (
	"encoding/binary"

	"github.com/arclet/arclet/pkg/arcerr"
)

// Pack serializes items into the canonical file-string framing.
func Pack(items [][]byte) []byte {
	size := 4
	for _, it := range items {
		size += 4 + len(it)
	}
	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(items)))
	for _, it := range items {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(it)))
		buf = append(buf, it...)
	}
	return buf
}

// Unpack reverses Pack, returning arcerr.Corruption if the blob is truncated
// or its declared lengths overrun the buffer.
func Unpack(blob []byte) ([][]byte, error) {
	if len(blob) < 4 {
		return nil, arcerr.New(arcerr.Corruption, "filestring: truncated count header")
	}
	count := binary.LittleEndian.Uint32(blob[:4])
	off := 4
	items := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		if off+4 > len(blob) {
			return nil, arcerr.New(arcerr.Corruption, "filestring: truncated length header")
		}
		n := binary.LittleEndian.Uint32(blob[off : off+4])
		off += 4
		end := off + int(n)
		if end < off || end > len(blob) {
			return nil, arcerr.New(arcerr.Corruption, "filestring: element length overruns buffer")
		}
		item := make([]byte, n)
		copy(item, blob[off:end])
		items = append(items, item)
		off = end
	}
	return items, nil
}
