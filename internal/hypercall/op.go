// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package hypercall

import "fmt"

// Op identifies one hypercall operation. The numeric values are shared
// with the host and must stay identical on both sides.
type Op uintptr

const (
	OpTest Op = iota
	OpPrint
	OpGetMemInfo
	OpGetKernelBrk
	OpGetInfo
	OpGetFileLen
	OpGetFileName
	OpSetFileBuf
	OpFault
	OpPrintStacktrace
	OpEndRun
)

// Port is the I/O port whose OUT instruction triggers the VM exit.
const Port = 16

var opNames = [...]string{
	"Test",
	"Print",
	"GetMemInfo",
	"GetKernelBrk",
	"GetInfo",
	"GetFileLen",
	"GetFileName",
	"SetFileBuf",
	"Fault",
	"PrintStacktrace",
	"EndRun",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}

	return fmt.Sprintf("Op(%d)", uintptr(o))
}
