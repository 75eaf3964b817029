// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
	"slices"

	"golang.org/x/sys/unix"
)

// Guest binaries must match the hypervisor build target.
const (
	targetClass   = elf.ELFCLASS64
	targetMachine = elf.EM_X86_64
)

const (
	fileHeaderSize = 64
	pageSize       = 4096
)

// ProgHeaderInfo describes the location of the program header table within
// the file. The guest runtime needs it to self-describe via the auxiliary
// vector.
type ProgHeaderInfo struct {
	Off     uint64
	Entsize uint16
	Num     uint16
}

// Image is a fully decoded guest executable.
//
// It owns the underlying [BinaryImage] and the segment, section and symbol
// tables built from it. Construction is all or nothing: a partially
// decoded Image is never returned.
//
// An Image has no internal locking. Constructing independent Images from
// multiple goroutines is fine, but [Image.Rebase] must not race with any
// other access to the same Image.
type Image struct {
	bin *BinaryImage

	phinfo      ProgHeaderInfo
	typ         elf.Type
	entry       uint64
	base        uint64
	loadAddr    uint64
	initialBrk  uint64
	interpreter string

	segments []Segment
	sections []Section
	symbols  []Symbol
}

// New maps the file at the given path and decodes its header tables.
//
// It fails if the file cannot be mapped or if its class, machine or type
// fields do not match the hypervisor build target. Such a binary can never
// be loaded safely, so there is no degraded result; the error names the
// offending path and the failing step.
func New(path string) (*Image, error) {
	bin, err := OpenBinary(path)
	if err != nil {
		return nil, err
	}

	img := &Image{bin: bin}

	err = img.parse()
	if err != nil {
		_ = bin.Close()
		return nil, err
	}

	return img, nil
}

func (img *Image) parse() error {
	data := img.bin.Data()
	path := img.bin.Path()
	le := binary.LittleEndian

	if len(data) < fileHeaderSize {
		return fmt.Errorf("elf %s: %w: shorter than file header", path, ErrNotELFFile)
	}

	if string(data[:len(elf.ELFMAG)]) != elf.ELFMAG {
		return fmt.Errorf("elf %s: %w", path, ErrNotELFFile)
	}

	if class := elf.Class(data[elf.EI_CLASS]); class != targetClass {
		return fmt.Errorf("elf %s: %w: %s, expected %s",
			path, ErrClassNotSupported, class, targetClass)
	}

	if machine := elf.Machine(le.Uint16(data[18:])); machine != targetMachine {
		return fmt.Errorf("elf %s: %w: %s, expected %s",
			path, ErrMachineNotSupported, machine, targetMachine)
	}

	typ := elf.Type(le.Uint16(data[16:]))
	if typ != elf.ET_EXEC && typ != elf.ET_DYN {
		return fmt.Errorf("elf %s: %w: %s, expected executable or shared object",
			path, ErrTypeNotSupported, typ)
	}

	img.typ = typ
	img.entry = le.Uint64(data[24:])
	img.phinfo = ProgHeaderInfo{
		Off:     le.Uint64(data[32:]),
		Entsize: le.Uint16(data[54:]),
		Num:     le.Uint16(data[56:]),
	}

	shoff := le.Uint64(data[40:])
	shentsize := le.Uint16(data[58:])
	shnum := le.Uint16(data[60:])
	shstrndx := le.Uint16(data[62:])

	fileSize := uint64(len(data))

	phend := img.phinfo.Off + uint64(img.phinfo.Entsize)*uint64(img.phinfo.Num)
	if phend > fileSize {
		return fmt.Errorf("elf %s: %w: program header table out of bounds",
			path, ErrMalformed)
	}

	shend := shoff + uint64(shentsize)*uint64(shnum)
	if shend > fileSize {
		return fmt.Errorf("elf %s: %w: section header table out of bounds",
			path, ErrMalformed)
	}

	img.parseSegments()
	img.parseSections(shoff, shentsize, shnum, shstrndx)
	// Symbol name resolution indexes into already decoded section data, so
	// sections must be complete first.
	img.parseSymbols()

	return nil
}

// parseSegments decodes the program header table. While scanning it tracks
// the load address as the lowest vaddr of any loadable segment and the
// initial break as the page rounded upper bound of loadable memory, and
// captures the interpreter path if one is present.
func (img *Image) parseSegments() {
	data := img.bin.Data()

	img.loadAddr = ^uint64(0)
	img.segments = make([]Segment, 0, img.phinfo.Num)

	for i := uint64(0); i < uint64(img.phinfo.Num); i++ {
		off := img.phinfo.Off + i*uint64(img.phinfo.Entsize)
		segment := decodeSegment(data, off)

		switch segment.Type {
		case elf.PT_LOAD:
			end := (segment.Vaddr + segment.Memsize + pageSize - 1) &^ (pageSize - 1)
			img.loadAddr = min(img.loadAddr, segment.Vaddr)
			img.initialBrk = max(img.initialBrk, end)
		case elf.PT_INTERP:
			img.interpreter = unix.ByteSliceToString(segment.Data)
		}

		img.segments = append(img.segments, segment)
	}
}

func (img *Image) parseSections(shoff uint64, entsize, num, shstrndx uint16) {
	data := img.bin.Data()

	// The name string table section must be decoded first, every other
	// section name is an offset into its data.
	var shstrtab []byte
	if shstrndx < num {
		strSection := decodeSection(data, shoff+uint64(shstrndx)*uint64(entsize), nil)
		shstrtab = strSection.Data
	}

	img.sections = make([]Section, 0, num)
	for i := uint64(0); i < uint64(num); i++ {
		section := decodeSection(data, shoff+i*uint64(entsize), shstrtab)
		img.sections = append(img.sections, section)
	}
}

// parseSymbols decodes all entries of the static and dynamic symbol
// tables. Each table's companion string table is the section referenced by
// its link field, never any other string table.
func (img *Image) parseSymbols() {
	for _, section := range img.sections {
		if section.Type != elf.SHT_SYMTAB && section.Type != elf.SHT_DYNSYM {
			continue
		}

		if uint64(section.Link) >= uint64(len(img.sections)) {
			continue
		}

		strtab := img.sections[section.Link].Data
		numSyms := section.Size / symbolEntrySize

		for i := uint64(0); i < numSyms; i++ {
			entry := section.Data[i*symbolEntrySize : (i+1)*symbolEntrySize]
			img.symbols = append(img.symbols, decodeSymbol(entry, strtab))
		}
	}
}

// Rebase moves the image to the given base address.
//
// Every derived virtual address, the entry point, the load address and all
// segment, section and symbol addresses, is shifted by the delta between
// the new and the current base in one step. File offsets and the mapped
// bytes are not touched. Calls are cumulative: each shifts relative to the
// previous base, so the final state depends only on the last base given.
func (img *Image) Rebase(base uint64) {
	delta := base - img.base
	img.base = base

	img.entry += delta
	img.loadAddr += delta

	for i := range img.segments {
		img.segments[i].Vaddr += delta
		img.segments[i].Paddr += delta
	}

	for i := range img.sections {
		img.sections[i].Addr += delta
	}

	for i := range img.symbols {
		img.symbols[i].Value += delta
	}
}

// Data returns the raw mapped file bytes.
func (img *Image) Data() []byte {
	return img.bin.Data()
}

// Base returns the current base address. It is zero until the first
// [Image.Rebase] call.
func (img *Image) Base() uint64 {
	return img.base
}

// InitialBrk returns the page aligned address just above the highest byte
// any loadable segment occupies in memory, the guest's initial heap
// boundary.
func (img *Image) InitialBrk() uint64 {
	return img.initialBrk
}

// ProgHeader returns the location of the program header table within the
// file.
func (img *Image) ProgHeader() ProgHeaderInfo {
	return img.phinfo
}

// Type returns the ELF file type, executable or shared object.
func (img *Image) Type() elf.Type {
	return img.typ
}

// Entry returns the entry point address.
func (img *Image) Entry() uint64 {
	return img.entry
}

// LoadAddr returns the lowest virtual address of any loadable segment.
func (img *Image) LoadAddr() uint64 {
	return img.loadAddr
}

// Path returns the file path the image was created from.
func (img *Image) Path() string {
	return img.bin.Path()
}

// Interpreter returns the program interpreter path, or the empty string
// for binaries without a PT_INTERP segment.
func (img *Image) Interpreter() string {
	return img.interpreter
}

// Segments returns a copy of the segment table. Callers may mutate the
// returned slice freely, later queries still see the image's own state.
func (img *Image) Segments() []Segment {
	return slices.Clone(img.segments)
}

// Sections returns a copy of the section table.
func (img *Image) Sections() []Section {
	return slices.Clone(img.sections)
}

// Symbols returns a copy of the symbol table.
func (img *Image) Symbols() []Symbol {
	return slices.Clone(img.symbols)
}

// ResolveAddr finds the function symbol covering the given address. It is
// used to symbolize guest stack traces. Returns false if no function
// symbol covers the address.
func (img *Image) ResolveAddr(addr uint64) (Symbol, bool) {
	for _, symbol := range img.symbols {
		if symbol.Type != elf.STT_FUNC {
			continue
		}

		if addr >= symbol.Value && addr < symbol.Value+symbol.Size {
			return symbol, true
		}
	}

	return Symbol{}, false
}

// Close releases the underlying file mapping.
func (img *Image) Close() error {
	return img.bin.Close()
}
