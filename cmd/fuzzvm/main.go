// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/fuzzvm/fuzzvm/internal/cmd"
)

func main() {
	cfg := cmd.IO{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	os.Exit(cmd.Run(os.Args[0], os.Args[1:], cfg))
}
