// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package elfimage

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// BinaryImage is a read-only memory mapping of one executable file.
//
// The mapped bytes are never written to. All segment and section data
// slices handed out by [Image] alias this mapping and become invalid once
// it is closed.
type BinaryImage struct {
	path string
	data []byte
}

// OpenBinary maps the file at the given path read-only into memory.
func OpenBinary(path string) (*BinaryImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("elf %s: open: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("elf %s: stat: %w", path, err)
	}

	data, err := unix.Mmap(
		int(file.Fd()),
		0,
		int(info.Size()),
		unix.PROT_READ,
		unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("elf %s: mmap: %w", path, err)
	}

	binary := &BinaryImage{
		path: path,
		data: data,
	}

	return binary, nil
}

// Data returns the raw mapped file bytes.
func (b *BinaryImage) Data() []byte {
	return b.data
}

// Path returns the file path the mapping was created from.
func (b *BinaryImage) Path() string {
	return b.path
}

// Close releases the mapping. The data slices derived from it must not be
// used afterwards.
func (b *BinaryImage) Close() error {
	data := b.data
	b.data = nil

	if data == nil {
		return nil
	}

	err := unix.Munmap(data)
	if err != nil {
		return fmt.Errorf("elf %s: munmap: %w", b.path, err)
	}

	return nil
}
