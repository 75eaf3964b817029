// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

//go:build !amd64

package hypercall

// Guest kernels are built for amd64 only. The stub keeps the package
// compilable on other host architectures, where only the host side
// dispatch interface is usable.
func outTrap(_ Op, _, _, _ uintptr) uintptr {
	panic("hypercall: trap instruction not available on this architecture")
}
