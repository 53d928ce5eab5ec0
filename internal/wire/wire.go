// Package wire implements the open-element-stack serialization shared by
// the html, htmlx, and svelte scanners. The driver hands each scanner a
// fixed-size byte buffer on Serialize and the same bytes back on
// Deserialize for incremental reparsing; the format tolerates a buffer too
// small to hold the full stack by recording two counts instead of one.
package wire

import (
	"encoding/binary"

	"github.com/dpotapov/go-htmlx-scanner/tagtable"
)

// MaxCustomNameLen bounds how much of a custom tag's name is preserved
// across a serialize/deserialize round trip. A name longer than this is
// truncated; since CanContain and end-tag matching only ever compare
// CustomTag entries by exact string equality, a truncated name simply
// stops matching its original open tag, which merely degrades recovery
// for a corner case, it doesn't corrupt the stack shape.
const MaxCustomNameLen = 255

// EncodeStack writes stack into buf starting at offset off: a two-byte
// serialized count, a two-byte declared (true) count, then one entry per
// serialized tag (a name byte, plus a length-prefixed name for CustomTag
// entries). It stops writing entries once buf is full, but the declared
// count it stamps always reflects the real depth of stack, not how much
// fit. It returns the offset just past the last byte written.
func EncodeStack(buf []byte, off int, stack []tagtable.Tag) int {
	const headerLen = 4
	if off+headerLen > len(buf) {
		return off
	}
	countOff := off
	off += headerLen

	declared := len(stack)
	serialized := 0
	for _, t := range stack {
		nameLen := 0
		entryLen := 1
		if t.Name == tagtable.CustomTag {
			nameLen = len(t.CustomName)
			if nameLen > MaxCustomNameLen {
				nameLen = MaxCustomNameLen
			}
			entryLen += 1 + nameLen
		}
		if off+entryLen > len(buf) {
			break
		}
		buf[off] = byte(t.Name)
		off++
		if t.Name == tagtable.CustomTag {
			buf[off] = byte(nameLen)
			off++
			copy(buf[off:off+nameLen], t.CustomName[:nameLen])
			off += nameLen
		}
		serialized++
	}

	binary.LittleEndian.PutUint16(buf[countOff:], uint16(serialized))
	binary.LittleEndian.PutUint16(buf[countOff+2:], uint16(declared))
	return off
}

// DecodeStack is the inverse of EncodeStack. When the buffer held fewer
// entries than the declared count (because a previous Serialize call
// truncated them), the missing levels are padded with empty tags so the
// stack's logical depth survives the round trip even though their
// identities are lost. A scanner that later pops into padding simply treats
// it like an unmatched implicit close — it never panics on it.
func DecodeStack(buf []byte, off int) (stack []tagtable.Tag, newOff int) {
	if off+4 > len(buf) {
		return nil, len(buf)
	}
	serialized := int(binary.LittleEndian.Uint16(buf[off:]))
	declared := int(binary.LittleEndian.Uint16(buf[off+2:]))
	off += 4

	stack = make([]tagtable.Tag, 0, declared)
	for i := 0; i < serialized && off < len(buf); i++ {
		name := tagtable.Name(buf[off])
		off++
		tag := tagtable.Tag{Name: name}
		if name == tagtable.CustomTag {
			if off >= len(buf) {
				break
			}
			nameLen := int(buf[off])
			off++
			if off+nameLen > len(buf) {
				nameLen = len(buf) - off
			}
			tag.CustomName = string(buf[off : off+nameLen])
			off += nameLen
		}
		stack = append(stack, tag)
	}
	for len(stack) < declared {
		stack = append(stack, tagtable.Tag{})
	}
	return stack, off
}
