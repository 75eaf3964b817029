// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgsErrorError(t *testing.T) {
	wrapped := &ParseArgsError{msg: "validate args", err: ErrNoBinary}
	assert.Equal(t, "validate args: no guest binary given", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrNoBinary)

	bare := &ParseArgsError{msg: "validate args"}
	assert.Equal(t, "validate args", bare.Error())

	assert.ErrorIs(t, wrapped, &ParseArgsError{})
	assert.False(t, errors.Is(ErrNoBinary, &ParseArgsError{}))
}
