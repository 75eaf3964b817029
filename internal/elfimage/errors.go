// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage

import "errors"

var (
	// ErrNotELFFile is returned if the file does not have an ELF magic
	// number.
	ErrNotELFFile = errors.New("is not an ELF file")

	// ErrClassNotSupported is returned if the ELF class does not match the
	// word size the hypervisor is built for.
	ErrClassNotSupported = errors.New("ELF class not supported")

	// ErrMachineNotSupported is returned if the machine type of an ELF file
	// does not match the target architecture.
	ErrMachineNotSupported = errors.New("machine type not supported")

	// ErrTypeNotSupported is returned if the ELF file is neither an
	// executable nor a shared object.
	ErrTypeNotSupported = errors.New("ELF type not supported")

	// ErrMalformed is returned if a header table lies outside the file.
	ErrMalformed = errors.New("malformed ELF file")
)
