// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

// Package cmd implements the fuzzvm loader command line interface.
//
// It loads guest ELF images, optionally rebases the kernel image to its
// final load address, gathers the run's input corpus and prints a load
// summary. The VM run loop itself lives in the hypervisor, not here.
package cmd
