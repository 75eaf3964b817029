// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage

import (
	"debug/elf"
	"encoding/binary"
)

// progHeaderEntrySize is the size of one ELF64 program header entry.
const progHeaderEntrySize = 56

// Segment is one decoded program header entry of the executable.
//
// Vaddr and Paddr are the only fields affected by [Image.Rebase]. Data
// aliases the mapped file bytes and is never shifted or copied.
type Segment struct {
	Type     elf.ProgType
	Flags    elf.ProgFlag
	Offset   uint64
	Vaddr    uint64
	Paddr    uint64
	Filesize uint64
	Memsize  uint64
	Align    uint64

	// Data is a view into the mapped file at [Offset, Offset+Filesize).
	// The remaining Memsize-Filesize bytes are zero filled by the loader
	// when the segment is placed in guest memory.
	Data []byte
}

func decodeSegment(file []byte, off uint64) Segment {
	b := file[off : off+progHeaderEntrySize]
	le := binary.LittleEndian

	segment := Segment{
		Type:     elf.ProgType(le.Uint32(b[0:])),
		Flags:    elf.ProgFlag(le.Uint32(b[4:])),
		Offset:   le.Uint64(b[8:]),
		Vaddr:    le.Uint64(b[16:]),
		Paddr:    le.Uint64(b[24:]),
		Filesize: le.Uint64(b[32:]),
		Memsize:  le.Uint64(b[40:]),
		Align:    le.Uint64(b[48:]),
	}
	segment.Data = file[segment.Offset : segment.Offset+segment.Filesize]

	return segment
}
