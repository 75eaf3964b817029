// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package hypercall

import (
	"errors"
	"fmt"
)

// GuestPtr is a guest virtual address received in a hypercall argument
// register. Resolving it against guest memory is the handler's concern.
type GuestPtr uint64

// ErrUnknownOp is returned by [Dispatch] for operation ids outside the
// catalogue. The caller is expected to tear down the run.
var ErrUnknownOp = errors.New("unknown hypercall")

// Handler services hypercalls on VM exit. One method per catalogue
// operation; pointer arguments arrive as [GuestPtr] values.
type Handler interface {
	Test(arg uint64) uint64
	Print(msg GuestPtr)
	GetMemInfo(start, length GuestPtr)
	GetKernelBrk() GuestPtr
	GetInfo(info GuestPtr)
	GetFileLen(n uint64) uint64
	GetFileName(n uint64, buf GuestPtr)
	SetFileBuf(n uint64, buf GuestPtr)
	Fault(info GuestPtr)
	PrintStacktrace(sp, ip GuestPtr)
	EndRun()
}

// Dispatch maps one VM exit onto the handler and returns the value to
// place in the guest's result register before resuming.
func Dispatch(h Handler, op Op, args [3]uint64) (uint64, error) {
	switch op {
	case OpTest:
		return h.Test(args[0]), nil
	case OpPrint:
		h.Print(GuestPtr(args[0]))
	case OpGetMemInfo:
		h.GetMemInfo(GuestPtr(args[0]), GuestPtr(args[1]))
	case OpGetKernelBrk:
		return uint64(h.GetKernelBrk()), nil
	case OpGetInfo:
		h.GetInfo(GuestPtr(args[0]))
	case OpGetFileLen:
		return h.GetFileLen(args[0]), nil
	case OpGetFileName:
		h.GetFileName(args[0], GuestPtr(args[1]))
	case OpSetFileBuf:
		h.SetFileBuf(args[0], GuestPtr(args[1]))
	case OpFault:
		h.Fault(GuestPtr(args[0]))
	case OpPrintStacktrace:
		h.PrintStacktrace(GuestPtr(args[0]), GuestPtr(args[1]))
	case OpEndRun:
		h.EndRun()
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownOp, op)
	}

	return 0, nil
}
