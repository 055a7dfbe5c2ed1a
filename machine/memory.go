/*
 * gtu312 - Low level memory with privilege guard.
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package machine

import "fmt"

// Mode is the CPU privilege mode. It is memory's sole caller-supplied
// input to the protection guard.
type Mode int

const (
	ModeKernel Mode = iota
	ModeUser
)

// PrivilegedLimit is the first user-accessible address; everything below
// it is reserved for OS state and the thread table.
const PrivilegedLimit = 1000

// DefaultMemorySize is the GTU-C312 default word count.
const DefaultMemorySize = 16384

// Memory is a fixed-size, word-addressable array of tagged cells with a
// single access discipline: user-mode code may not touch the privileged
// region. It carries no process-wide state — a Memory value belongs to
// exactly one CPU, which is the only component permitted to read or
// write it.
type Memory struct {
	cells []Word
}

// NewMemory allocates a zero-filled memory of the given size.
func NewMemory(size int) *Memory {
	return &Memory{cells: make([]Word, size)}
}

// Size returns the memory's word count.
func (m *Memory) Size() int {
	return len(m.cells)
}

// Read fetches the cell at addr, enforcing the privilege guard first and
// the bounds check second, in that order.
func (m *Memory) Read(mode Mode, addr int) (Word, error) {
	if mode == ModeUser && addr < PrivilegedLimit {
		return Word{}, newFault(ProtectionFault, "user-mode read of privileged address %d", addr)
	}
	if addr < 0 || addr >= len(m.cells) {
		return Word{}, newFault(BoundsFault, "read out of bounds at address %d", addr)
	}
	return m.cells[addr], nil
}

// ReadInt is a convenience wrapper for the overwhelmingly common case of
// reading an address known to hold an integer.
func (m *Memory) ReadInt(mode Mode, addr int) (int, error) {
	w, err := m.Read(mode, addr)
	if err != nil {
		return 0, err
	}
	v, ok := w.Int()
	if !ok {
		return 0, newFault(TypeFault, "mem[%d] is not an integer (holds %q)", addr, w.String())
	}
	return v, nil
}

// Write stores a cell at addr under the same two-step guard as Read.
func (m *Memory) Write(mode Mode, addr int, w Word) error {
	if mode == ModeUser && addr < PrivilegedLimit {
		return newFault(ProtectionFault, "user-mode write of privileged address %d", addr)
	}
	if addr < 0 || addr >= len(m.cells) {
		return newFault(BoundsFault, "write out of bounds at address %d", addr)
	}
	m.cells[addr] = w
	return nil
}

// WriteInt is a convenience wrapper for storing an integer.
func (m *Memory) WriteInt(mode Mode, addr int, v int) error {
	return m.Write(mode, addr, IntWord(v))
}

// RawRead/RawWrite bypass the privilege guard entirely. They are used by
// the loader (which places pre-load data and instructions before any
// thread runs in user mode), by the report and inspection dumps, and by
// the CPU's own bookkeeping: the PC/SP/INSTR_COUNT accessors, the unblock
// sweep in Step, and the thread-table and saved-PC updates made by USER
// and SYSCALL. Guest data accesses made by opcodes go through Read/Write.
func (m *Memory) RawRead(addr int) (Word, error) {
	if addr < 0 || addr >= len(m.cells) {
		return Word{}, newFault(BoundsFault, "read out of bounds at address %d", addr)
	}
	return m.cells[addr], nil
}

func (m *Memory) RawWrite(addr int, w Word) error {
	if addr < 0 || addr >= len(m.cells) {
		return newFault(BoundsFault, "write out of bounds at address %d", addr)
	}
	m.cells[addr] = w
	return nil
}

// Dump returns one line per non-zero cell in [start,end).
func (m *Memory) Dump(start, end int) []string {
	var lines []string
	if start < 0 {
		start = 0
	}
	if end > len(m.cells) {
		end = len(m.cells)
	}
	for i := start; i < end; i++ {
		c := m.cells[i]
		if c.Kind == KindInt && c.Num == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("mem[%04d] = %s", i, c.String()))
	}
	return lines
}
