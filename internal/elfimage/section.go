// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage

import (
	"debug/elf"
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// sectionHeaderEntrySize is the size of one ELF64 section header entry.
const sectionHeaderEntrySize = 64

// Section is one decoded section header entry with its name resolved
// against the section name string table.
//
// The meaning of Link depends on Type. For symbol table sections it is the
// index of the companion string table section.
type Section struct {
	Name      string
	Type      elf.SectionType
	Flags     elf.SectionFlag
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	Addralign uint64
	Entsize   uint64

	// Data is a view into the mapped file at [Offset, Offset+Size).
	Data []byte
}

func decodeSection(file []byte, off uint64, shstrtab []byte) Section {
	b := file[off : off+sectionHeaderEntrySize]
	le := binary.LittleEndian

	section := Section{
		Type:      elf.SectionType(le.Uint32(b[4:])),
		Flags:     elf.SectionFlag(le.Uint64(b[8:])),
		Addr:      le.Uint64(b[16:]),
		Offset:    le.Uint64(b[24:]),
		Size:      le.Uint64(b[32:]),
		Link:      le.Uint32(b[40:]),
		Info:      le.Uint32(b[44:]),
		Addralign: le.Uint64(b[48:]),
		Entsize:   le.Uint64(b[56:]),
	}
	section.Name = tableString(shstrtab, le.Uint32(b[0:]))

	// SHT_NOBITS sections occupy no file bytes, their Offset is only
	// conceptual.
	if section.Type != elf.SHT_NOBITS {
		section.Data = file[section.Offset : section.Offset+section.Size]
	}

	return section
}

// tableString resolves a NUL terminated string at the given offset into a
// string table.
func tableString(strtab []byte, off uint32) string {
	if uint64(off) >= uint64(len(strtab)) {
		return ""
	}

	return unix.ByteSliceToString(strtab[off:])
}
