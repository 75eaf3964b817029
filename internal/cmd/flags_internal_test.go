// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *flags
		expectedErr error
	}{
		{
			name: "kernel only",
			args: []string{"bzImage"},
			expected: &flags{
				Binaries: []string{"bzImage"},
			},
		},
		{
			name: "all flags",
			args: []string{
				"-base", "0x7f0000000000",
				"-corpus", "inputs",
				"-symbols",
				"-debug",
				"kernel.elf", "target.elf",
			},
			expected: &flags{
				Binaries:     []string{"kernel.elf", "target.elf"},
				KernelBase:   0x7f0000000000,
				CorpusDir:    "inputs",
				PrintSymbols: true,
				Debug:        true,
			},
		},
		{
			name:        "no binary",
			args:        []string{"-debug"},
			expectedErr: ErrNoBinary,
		},
		{
			name:        "bad base",
			args:        []string{"-base", "nope", "kernel.elf"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "unaligned base",
			args:        []string{"-base", "0x400001", "kernel.elf"},
			expectedErr: &ParseArgsError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := parseArgs("fuzzvm", tt.args, io.Discard)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
