// SPDX-FileCopyrightText: 2025 The fuzzvm authors
//
// SPDX-License-Identifier: MIT

package hypercall

// ConsoleBufSize is the capacity of the output buffer. One byte is
// reserved for the NUL terminator the Print hypercall expects.
const ConsoleBufSize = 1024

// Console batches character output into Print hypercalls.
//
// Bytes accumulate until a line break arrives or the buffer has only the
// terminator byte of headroom left, then the whole buffer goes out as one
// NUL terminated Print. This bounds how long output is held while keeping
// the trap count low.
//
// A Console is not safe for concurrent use. The guest model is single
// threaded, a multi threaded port would need per thread consoles.
type Console struct {
	ch   *Channel
	buf  [ConsoleBufSize]byte
	used int
}

// NewConsole returns a Console printing through the given channel.
func NewConsole(ch *Channel) *Console {
	return &Console{ch: ch}
}

// WriteByte appends b to the buffer, flushing on line breaks and when the
// buffer fills up. It never fails; the error return satisfies
// [io.ByteWriter].
func (c *Console) WriteByte(b byte) error {
	c.buf[c.used] = b
	c.used++

	if b == '\n' || c.used == ConsoleBufSize-1 {
		c.flush()
	}

	return nil
}

// Write implements [io.Writer] on top of the byte wise buffering rules.
func (c *Console) Write(p []byte) (int, error) {
	for _, b := range p {
		_ = c.WriteByte(b)
	}

	return len(p), nil
}

// Flush sends any buffered bytes out immediately.
func (c *Console) Flush() {
	if c.used > 0 {
		c.flush()
	}
}

func (c *Console) flush() {
	c.buf[c.used] = 0
	c.ch.printTerminated(c.buf[:c.used+1])
	c.used = 0
}
