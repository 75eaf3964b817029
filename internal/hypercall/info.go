// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package hypercall

// VMInfo is the run metadata structure filled by the GetInfo hypercall.
// The layout is shared with the host: fixed size fields only, no Go
// pointers.
type VMInfo struct {
	// ElfPath is the NUL terminated path of the guest binary on the host.
	ElfPath [128]byte

	// Brk is the guest's initial heap boundary.
	Brk uintptr

	// NumFiles is the number of input files available to the run.
	NumFiles uintptr

	// UserEntry is the entry point of the user binary to run.
	UserEntry uintptr

	// ElfEntry and ElfLoad describe where the guest kernel image itself
	// was placed.
	ElfEntry uintptr
	ElfLoad  uintptr
}

// FaultType classifies a guest fault reported via the Fault hypercall.
type FaultType uintptr

const (
	FaultRead FaultType = iota
	FaultWrite
	FaultExec
	FaultDiv
	FaultIllegal
)

var faultNames = [...]string{
	"read",
	"write",
	"exec",
	"div",
	"illegal",
}

func (t FaultType) String() string {
	if int(t) < len(faultNames) {
		return faultNames[t]
	}

	return "unknown"
}

// FaultInfo is the fault description structure passed to the Fault
// hypercall. The layout is shared with the host.
type FaultInfo struct {
	Type FaultType

	// RIP is the instruction pointer at the time of the fault.
	RIP uintptr

	// FaultAddr is the accessed address for memory faults, zero
	// otherwise.
	FaultAddr uintptr
}
