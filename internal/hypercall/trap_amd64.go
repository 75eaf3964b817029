// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

//go:build amd64

package hypercall

// outTrap executes the hypercall trap instruction. It returns once the
// host has fully serviced the request, with the host supplied result.
//
// Implemented in trap_amd64.s.
func outTrap(op Op, a1, a2, a3 uintptr) uintptr
