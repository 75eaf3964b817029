// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBinary is returned if no guest binary path is given.
	ErrNoBinary = errors.New("no guest binary given")

	// ErrInvalidBase is returned for base addresses that cannot be parsed
	// or are not page aligned.
	ErrInvalidBase = errors.New("invalid base address")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
