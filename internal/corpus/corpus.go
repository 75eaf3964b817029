// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

// Package corpus holds the input files of a run. It backs the host side of
// the GetFileLen, GetFileName and SetFileBuf hypercalls.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"

	"github.com/cavaliergopher/cpio"
)

// ErrNoSuchFile is returned for file indexes outside the corpus.
var ErrNoSuchFile = errors.New("no such corpus file")

// File is one named input file.
type File struct {
	Name string
	Data []byte
}

// Corpus is an ordered, immutable list of input files. The order defines
// the file indexes the guest uses.
type Corpus struct {
	files []File
}

// New builds a corpus from the given files in the given order.
func New(files ...File) *Corpus {
	return &Corpus{files: slices.Clone(files)}
}

// LoadDir reads every regular file directly inside dir of fsys, sorted by
// name so indexes are stable across runs.
func LoadDir(fsys fs.FS, dir string) (*Corpus, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: read dir: %w", dir, err)
	}

	corpus := &Corpus{}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()

		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("corpus %s: read %s: %w", dir, name, err)
		}

		corpus.files = append(corpus.files, File{Name: name, Data: data})
	}

	return corpus, nil
}

// LoadArchive reads all regular file entries of a cpio archive in archive
// order.
func LoadArchive(r io.Reader) (*Corpus, error) {
	reader := cpio.NewReader(r)
	corpus := &Corpus{}

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("corpus archive: %w", err)
		}

		if !hdr.FileInfo().Mode().IsRegular() {
			continue
		}

		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("corpus archive: read %s: %w", hdr.Name, err)
		}

		corpus.files = append(corpus.files, File{Name: hdr.Name, Data: data})
	}

	return corpus, nil
}

// Len returns the number of input files.
func (c *Corpus) Len() int {
	return len(c.files)
}

// FileLen returns the length of input file n.
func (c *Corpus) FileLen(n int) (int, error) {
	if n < 0 || n >= len(c.files) {
		return 0, fmt.Errorf("%w: %d", ErrNoSuchFile, n)
	}

	return len(c.files[n].Data), nil
}

// FileName returns the name of input file n.
func (c *Corpus) FileName(n int) (string, error) {
	if n < 0 || n >= len(c.files) {
		return "", fmt.Errorf("%w: %d", ErrNoSuchFile, n)
	}

	return c.files[n].Name, nil
}

// FileData returns the contents of input file n. The returned slice is the
// corpus's own copy and must not be modified.
func (c *Corpus) FileData(n int) ([]byte, error) {
	if n < 0 || n >= len(c.files) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchFile, n)
	}

	return c.files[n].Data, nil
}
