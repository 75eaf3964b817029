// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

// Package hypercall implements the guest side of the host/guest hypercall
// ABI and the host side dispatch interface for it.
//
// A hypercall looks like an ordinary function call to guest code. The shim
// loads the operation id into AX, places the arguments in DI, SI and CX
// (DX carries the I/O port, so it is not available for arguments) and
// executes a single OUT instruction to port 16. The resulting VM exit
// hands control to the host, which services the request, places any
// result in AX and resumes the guest. The trap does not return until the
// host is done, so no concurrent hypercalls can exist on a single guest
// thread.
//
// Traps are expensive, so character output is batched in a [Console] and
// sent as one Print hypercall per line or buffer fill.
//
// The numeric operation ids are the wire contract shared with the host's
// VM exit handler. Reordering [Op] values breaks compatibility.
package hypercall
