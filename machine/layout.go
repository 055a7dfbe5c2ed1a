/*
 * gtu312 - Reserved memory layout constants.
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

// Special memory-mapped cells. PC, SP, the cycle counter, and the syscall
// communication cells are themselves memory locations — GTU-C312 has no
// architectural registers beyond them.
const (
	AddrPC             = 0
	AddrSP             = 1
	AddrSyscallResult  = 2
	AddrInstrCount     = 3
	AddrSyscallID      = 4
	AddrSyscallArg1    = 5
	ThreadTableBase    = 21 // 20 words per thread row, starting here.
	ThreadTableStride  = 20
	AddrSchedulerTid   = 160
	PCSaveBase         = 180 // one cell per thread, tid 1..4 only.
	DispatchOSHandler  = 4   // instruction ordinal, not an address.
	DispatchScheduler  = 31  // instruction ordinal, not an address.
	DefaultMaxThreads  = 10
	PreseededReadyTids = 4 // threads 1..4 start READY; 5..10 stay INACTIVE.
)

// Syscall IDs, as recorded into mem[AddrSyscallID].
const (
	SyscallUnknown = 0
	SyscallPRN     = 1
	SyscallHalt    = 2
	SyscallYield   = 3
)

// Syscall subtype tokens recognized in program text.
const (
	SubPRN        = "PRN"
	SubHltThread  = "HLT_THREAD"
	SubYield      = "YIELD"
)

// Thread table state codes written into the per-thread row.
const (
	RowTerminated = 0
	RowReady      = 1
	RowRunning    = 2
	RowBlocked    = 3
)

// ThreadTableRow returns the base address of tid's 20-word row.
func ThreadTableRow(tid int) int {
	return ThreadTableBase + (tid-1)*ThreadTableStride
}

// ResultAddr is the conventional per-thread result cell.
func ResultAddr(tid int) int {
	return tid*1000 + 80
}
