// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package hypercall

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// TrapFunc issues one hypercall trap and returns the host supplied result.
// The real transport is the port I/O trap instruction; tests inject
// recording implementations.
type TrapFunc func(op Op, a1, a2, a3 uintptr) uintptr

// Channel issues hypercalls to the controlling host. Each method is a thin
// shim around one trap: marshal arguments, trap, interpret the result
// register.
type Channel struct {
	trap TrapFunc
}

// New returns a Channel using the given trap transport.
func New(trap TrapFunc) *Channel {
	return &Channel{trap: trap}
}

// The process-wide channel and console over the real trap instruction,
// built once at guest startup.
var (
	defaultChannel = New(outTrap)
	defaultConsole = NewConsole(defaultChannel)
)

// Default returns the process-wide channel using the trap instruction.
func Default() *Channel {
	return defaultChannel
}

// DefaultConsole returns the process-wide buffered output console.
func DefaultConsole() *Console {
	return defaultConsole
}

// Test sends a diagnostic probe value to the host. No side effect beyond
// host visible logging.
func (c *Channel) Test(arg uintptr) uintptr {
	return c.trap(OpTest, arg, 0, 0)
}

// Print emits msg to the host controlled output sink with a single
// hypercall. Prefer writing to a [Console], which batches output.
func (c *Channel) Print(msg string) {
	buf := make([]byte, len(msg)+1)
	copy(buf, msg)
	c.printTerminated(buf)
}

// printTerminated traps with a pointer to an already NUL terminated
// buffer.
func (c *Channel) printTerminated(buf []byte) {
	c.trap(OpPrint, uintptr(unsafe.Pointer(&buf[0])), 0, 0)
	runtime.KeepAlive(buf)
}

// GetMemInfo reports the guest's usable physical memory region.
func (c *Channel) GetMemInfo() (start, length uintptr) {
	c.trap(
		OpGetMemInfo,
		uintptr(unsafe.Pointer(&start)),
		uintptr(unsafe.Pointer(&length)),
		0,
	)

	return start, length
}

// GetKernelBrk reports the current top of the guest heap as tracked by the
// host.
func (c *Channel) GetKernelBrk() uintptr {
	return c.trap(OpGetKernelBrk, 0, 0, 0)
}

// GetInfo fills info with the run and VM metadata shared by the host.
func (c *Channel) GetInfo(info *VMInfo) {
	c.trap(OpGetInfo, uintptr(unsafe.Pointer(info)), 0, 0)
	runtime.KeepAlive(info)
}

// GetFileLen returns the length of input file n of the current run.
func (c *Channel) GetFileLen(n int) uintptr {
	return c.trap(OpGetFileLen, uintptr(n), 0, 0)
}

// GetFileName fills buf with the NUL terminated name of input file n and
// returns it as a string. buf must be large enough for the name, the host
// truncates to the guest buffer size it was told about.
func (c *Channel) GetFileName(n int, buf []byte) string {
	c.trap(OpGetFileName, uintptr(n), uintptr(unsafe.Pointer(&buf[0])), 0)
	runtime.KeepAlive(buf)

	return unix.ByteSliceToString(buf)
}

// SetFileBuf registers buf as the delivery location for input file n's
// contents. The host writes into it on subsequent runs, so buf must stay
// alive and must not move for the rest of the process.
func (c *Channel) SetFileBuf(n int, buf []byte) {
	c.trap(OpSetFileBuf, uintptr(n), uintptr(unsafe.Pointer(&buf[0])), 0)
	runtime.KeepAlive(buf)
}

// Fault reports a captured guest fault to the host. The host ends the run
// abnormally, so this does not return in a real guest.
func (c *Channel) Fault(info *FaultInfo) {
	c.trap(OpFault, uintptr(unsafe.Pointer(info)), 0, 0)
	runtime.KeepAlive(info)
}

// PrintStacktrace asks the host to unwind and symbolize the stack at the
// given stack and instruction pointers.
func (c *Channel) PrintStacktrace(sp, ip uintptr) {
	c.trap(OpPrintStacktrace, sp, ip, 0)
}

// EndRun terminates the current run normally. It does not return in a
// real guest.
func (c *Channel) EndRun() {
	c.trap(OpEndRun, 0, 0, 0)
}
