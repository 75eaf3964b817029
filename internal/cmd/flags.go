// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"flag"
	"fmt"
	"io"
	"strconv"
)

type flags struct {
	// Binaries are the guest ELF files to load. The first one is the
	// guest kernel image.
	Binaries []string

	// KernelBase is the address the kernel image is rebased to. Zero
	// keeps the file declared addresses.
	KernelBase uint64

	CorpusDir     string
	CorpusArchive string

	PrintSymbols bool
	Debug        bool
}

func parseArgs(name string, args []string, output io.Writer) (*flags, error) {
	flags := &flags{}

	fsName := name + " [flags...] kernel [binary...]"
	fs := flag.NewFlagSet(fsName, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Func(
		"base",
		"`address` to rebase the kernel image to (hex accepted)",
		func(s string) error {
			base, err := strconv.ParseUint(s, 0, 64)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidBase, s)
			}

			if base%4096 != 0 {
				return fmt.Errorf("%w: %#x not page aligned", ErrInvalidBase, base)
			}

			flags.KernelBase = base

			return nil
		},
	)

	fs.StringVar(
		&flags.CorpusDir,
		"corpus",
		"",
		"`directory` with input files for the run",
	)

	fs.StringVar(
		&flags.CorpusArchive,
		"corpus-archive",
		"",
		"cpio `archive` with input files for the run",
	)

	fs.BoolVar(
		&flags.PrintSymbols,
		"symbols",
		false,
		"print function symbols of the kernel image",
	)

	fs.BoolVar(
		&flags.Debug,
		"debug",
		false,
		"enable debug output",
	)

	err := fs.Parse(args)
	if err != nil {
		return nil, &ParseArgsError{msg: "parse args", err: err}
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return nil, &ParseArgsError{msg: "validate args", err: ErrNoBinary}
	}

	flags.Binaries = fs.Args()

	return flags, nil
}
