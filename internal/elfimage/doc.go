// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

// Package elfimage decodes guest executables into typed in-memory tables.
//
// An [Image] owns a read-only mapping of one ELF file and exposes its
// segments, sections and symbols. The loader queries those tables to
// populate guest physical memory and, later, to symbolize guest stack
// traces. Position independent guests declare addresses relative to zero,
// so the image supports a single explicit [Image.Rebase] step once the
// final load address is known.
//
// Parsing is read only. Relocation entries and dynamic linker symbol
// resolution are not processed.
package elfimage
