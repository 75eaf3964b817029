// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage_test

import (
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testELF assembles a minimal ELF64 file image for tests. Zero values fall
// back to the hypervisor build target so only the field under test needs
// to be set.
type testELF struct {
	class   elf.Class
	machine elf.Machine
	typ     elf.Type
	entry   uint64

	segments []testSegment
	sections []testSection
}

type testSegment struct {
	typ     elf.ProgType
	flags   elf.ProgFlag
	vaddr   uint64
	memsize uint64
	align   uint64
	data    []byte
}

type testSection struct {
	name    string
	typ     elf.SectionType
	addr    uint64
	link    uint32
	entsize uint64
	data    []byte
}

const (
	testEhdrSize = 64
	testPhdrSize = 56
	testShdrSize = 64
)

// bytes lays the file out as header, program header table, section header
// table, segment data, section data, section name table.
func (e *testELF) bytes(t *testing.T) []byte {
	t.Helper()

	le := binary.LittleEndian

	class := e.class
	if class == elf.ELFCLASSNONE {
		class = elf.ELFCLASS64
	}

	machine := e.machine
	if machine == elf.EM_NONE {
		machine = elf.EM_X86_64
	}

	typ := e.typ
	if typ == elf.ET_NONE {
		typ = elf.ET_EXEC
	}

	// All sections, with the leading null entry and the trailing name
	// string table.
	sections := make([]testSection, 0, len(e.sections)+2)
	sections = append(sections, testSection{})
	sections = append(sections, e.sections...)
	sections = append(sections, testSection{
		name: ".shstrtab",
		typ:  elf.SHT_STRTAB,
	})

	shstrndx := len(sections) - 1

	names := []byte{0}
	nameOffs := make([]uint32, len(sections))

	for idx, section := range sections {
		if section.name == "" {
			continue
		}

		nameOffs[idx] = uint32(len(names))
		names = append(names, section.name...)
		names = append(names, 0)
	}

	sections[shstrndx].data = names

	phoff := uint64(testEhdrSize)
	shoff := phoff + testPhdrSize*uint64(len(e.segments))
	dataOff := shoff + testShdrSize*uint64(len(sections))

	segOffs := make([]uint64, len(e.segments))
	cur := dataOff

	for idx, segment := range e.segments {
		segOffs[idx] = cur
		cur += uint64(len(segment.data))
	}

	secOffs := make([]uint64, len(sections))

	for idx, section := range sections {
		secOffs[idx] = cur
		cur += uint64(len(section.data))
	}

	file := make([]byte, cur)

	// File header.
	copy(file, elf.ELFMAG)
	file[elf.EI_CLASS] = byte(class)
	file[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	file[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	le.PutUint16(file[16:], uint16(typ))
	le.PutUint16(file[18:], uint16(machine))
	le.PutUint32(file[20:], uint32(elf.EV_CURRENT))
	le.PutUint64(file[24:], e.entry)
	le.PutUint64(file[32:], phoff)
	le.PutUint64(file[40:], shoff)
	le.PutUint16(file[52:], testEhdrSize)
	le.PutUint16(file[54:], testPhdrSize)
	le.PutUint16(file[56:], uint16(len(e.segments)))
	le.PutUint16(file[58:], testShdrSize)
	le.PutUint16(file[60:], uint16(len(sections)))
	le.PutUint16(file[62:], uint16(shstrndx))

	// Program header table and segment data.
	for idx, segment := range e.segments {
		b := file[phoff+testPhdrSize*uint64(idx):]
		le.PutUint32(b[0:], uint32(segment.typ))
		le.PutUint32(b[4:], uint32(segment.flags))
		le.PutUint64(b[8:], segOffs[idx])
		le.PutUint64(b[16:], segment.vaddr)
		le.PutUint64(b[24:], segment.vaddr)
		le.PutUint64(b[32:], uint64(len(segment.data)))
		le.PutUint64(b[40:], segment.memsize)
		le.PutUint64(b[48:], segment.align)

		copy(file[segOffs[idx]:], segment.data)
	}

	// Section header table and section data.
	for idx, section := range sections {
		b := file[shoff+testShdrSize*uint64(idx):]
		le.PutUint32(b[0:], nameOffs[idx])
		le.PutUint32(b[4:], uint32(section.typ))
		le.PutUint64(b[16:], section.addr)
		le.PutUint64(b[24:], secOffs[idx])
		le.PutUint64(b[32:], uint64(len(section.data)))
		le.PutUint32(b[40:], section.link)
		le.PutUint64(b[56:], section.entsize)

		copy(file[secOffs[idx]:], section.data)
	}

	return file
}

// write stores the assembled file in a temporary directory and returns its
// path.
func (e *testELF) write(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "guest.elf")

	err := os.WriteFile(path, e.bytes(t), 0o644)
	require.NoError(t, err)

	return path
}

// strtab builds a string table from the given names and returns the table
// and the offset of each name.
func strtab(names ...string) ([]byte, []uint32) {
	table := []byte{0}
	offs := make([]uint32, len(names))

	for idx, name := range names {
		offs[idx] = uint32(len(table))
		table = append(table, name...)
		table = append(table, 0)
	}

	return table, offs
}

// symEntry encodes one ELF64 symbol table entry.
func symEntry(name uint32, info, other byte, shndx uint16, value, size uint64) []byte {
	le := binary.LittleEndian

	b := make([]byte, 24)
	le.PutUint32(b[0:], name)
	b[4] = info
	b[5] = other
	le.PutUint16(b[6:], shndx)
	le.PutUint64(b[8:], value)
	le.PutUint64(b[16:], size)

	return b
}
