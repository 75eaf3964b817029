// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"debug/elf"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fuzzvm/fuzzvm/internal/corpus"
	"github.com/fuzzvm/fuzzvm/internal/elfimage"
)

// IO provides input and output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run is the main entry point for the CLI command.
func Run(name string, args []string, cfg IO) int {
	flags, err := parseArgs(name, args, cfg.Stderr)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug)

	err = run(flags, cfg)
	if err != nil {
		slog.Error(err.Error())
		return 1
	}

	return 0
}

func handleParseArgsError(err error) int {
	// Help was requested, exit without an error.
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	// The flag set already prints parse errors, so just exit.
	return 1
}

func run(flags *flags, cfg IO) error {
	images, err := elfimage.LoadAll(flags.Binaries...)
	if err != nil {
		return err
	}

	defer closeImages(images)

	kernel := images[0]

	if flags.KernelBase != 0 {
		kernel.Rebase(flags.KernelBase)

		slog.Debug("Rebased kernel image",
			slog.String("path", kernel.Path()),
			slog.Uint64("base", kernel.Base()))
	}

	for _, img := range images {
		logImage(img)
		printSummary(cfg.Stdout, img)
	}

	if flags.PrintSymbols {
		printSymbols(cfg.Stdout, kernel)
	}

	inputs, err := loadCorpus(flags)
	if err != nil {
		return err
	}

	if inputs != nil {
		slog.Info("Loaded corpus",
			slog.Int("files", inputs.Len()))
	}

	return nil
}

func loadCorpus(flags *flags) (*corpus.Corpus, error) {
	switch {
	case flags.CorpusArchive != "":
		archive, err := os.Open(flags.CorpusArchive)
		if err != nil {
			return nil, fmt.Errorf("open corpus archive: %w", err)
		}
		defer archive.Close()

		return corpus.LoadArchive(archive)
	case flags.CorpusDir != "":
		return corpus.LoadDir(os.DirFS(flags.CorpusDir), ".")
	default:
		return nil, nil
	}
}

func logImage(img *elfimage.Image) {
	slog.Info("Loaded guest image",
		slog.String("path", img.Path()),
		slog.String("type", img.Type().String()),
		slog.Uint64("entry", img.Entry()),
		slog.Uint64("load", img.LoadAddr()),
		slog.Uint64("brk", img.InitialBrk()))

	for _, segment := range img.Segments() {
		slog.Debug("Segment",
			slog.String("type", segment.Type.String()),
			slog.Uint64("vaddr", segment.Vaddr),
			slog.Uint64("filesize", segment.Filesize),
			slog.Uint64("memsize", segment.Memsize))
	}
}

func printSummary(w io.Writer, img *elfimage.Image) {
	fmt.Fprintf(w, "%s: %s entry=%#x load=%#x brk=%#x\n",
		img.Path(), img.Type(), img.Entry(), img.LoadAddr(), img.InitialBrk())

	if interp := img.Interpreter(); interp != "" {
		fmt.Fprintf(w, "  interpreter: %s\n", interp)
	}
}

func printSymbols(w io.Writer, img *elfimage.Image) {
	for _, symbol := range img.Symbols() {
		if symbol.Type != elf.STT_FUNC || symbol.Name == "" {
			continue
		}

		fmt.Fprintf(w, "  %#016x %6d %s\n", symbol.Value, symbol.Size, symbol.Name)
	}
}

func closeImages(images []*elfimage.Image) {
	for _, img := range images {
		err := img.Close()
		if err != nil {
			slog.Error("Failed to close image",
				slog.Any("error", err))
		}
	}
}
