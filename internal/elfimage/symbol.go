// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage

import (
	"debug/elf"
	"encoding/binary"
)

// symbolEntrySize is the size of one ELF64 symbol table entry.
const symbolEntrySize = 24

// Packed sub-fields of st_info and st_other. Decoded with explicit masks
// and shifts so the layout does not depend on any struct packing rules.
const (
	symInfoTypeMask  = 0x0f
	symInfoBindShift = 4
	symOtherVisMask  = 0x03
)

// Symbol is one decoded symbol table entry. Its name is resolved against
// the string table section referenced by the owning symbol table section's
// link field.
type Symbol struct {
	Name       string
	Type       elf.SymType
	Binding    elf.SymBind
	Visibility elf.SymVis
	Shndx      elf.SectionIndex
	Value      uint64
	Size       uint64
}

func decodeSymbol(b []byte, strtab []byte) Symbol {
	le := binary.LittleEndian

	info := b[4]
	other := b[5]

	return Symbol{
		Name:       tableString(strtab, le.Uint32(b[0:])),
		Type:       elf.SymType(info & symInfoTypeMask),
		Binding:    elf.SymBind(info >> symInfoBindShift),
		Visibility: elf.SymVis(other & symOtherVisMask),
		Shndx:      elf.SectionIndex(le.Uint16(b[6:])),
		Value:      le.Uint64(b[8:]),
		Size:       le.Uint64(b[16:]),
	}
}
