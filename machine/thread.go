/*
 * gtu312 - Thread bookkeeping and lifecycle derivation.
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

// TermSentinel marks a thread as permanently terminated in BlockedUntil.
// A thread carrying this sentinel never transitions back to READY.
const TermSentinel = -1

// NeverRan marks a thread that has not yet entered user mode.
const NeverRan = -1

// State is the coarse, externally visible thread state.
type State int

const (
	StateInactive State = iota
	StateReady
	StateRunning
	StateBlocked
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "INACT"
	case StateReady:
		return "RDY"
	case StateRunning:
		return "RUN"
	case StateBlocked:
		return "BLCK"
	case StateTerminated:
		return "TERM"
	default:
		return "?"
	}
}

// Bookkeeping is the kernel-side thread table, parallel to the in-memory
// rows but authoritative for liveness.
type Bookkeeping struct {
	CurrentThreadID   int
	MaxThreads        int
	BlockedUntil      map[int]int // tid -> unblock cycle, or TermSentinel.
	InstructionCounts map[int]int
	StartTimes        map[int]int // NeverRan until first USER dispatch.
}

// NewBookkeeping seeds threads 1..PreseededReadyTids as READY (by leaving
// them out of BlockedUntil and relying on the memory-side RDY check) and
// 5..maxThreads as INACTIVE.
func NewBookkeeping(maxThreads int) *Bookkeeping {
	b := &Bookkeeping{
		CurrentThreadID:   1,
		MaxThreads:        maxThreads,
		BlockedUntil:      make(map[int]int),
		InstructionCounts: make(map[int]int, maxThreads),
		StartTimes:        make(map[int]int, maxThreads),
	}
	for tid := 1; tid <= maxThreads; tid++ {
		b.InstructionCounts[tid] = 0
		b.StartTimes[tid] = NeverRan
	}
	return b
}

// State derives tid's externally visible state using the fixed precedence
// order: TERM, then BLCK, then RUN, then RDY, then INACT.
// readyPC is the value of the thread's saved-PC cell (180+(tid-1)),
// meaningful only for tid in 1..PreseededReadyTids.
func (b *Bookkeeping) State(tid int, mode Mode, instrCount int, readyPC int) State {
	if until, ok := b.BlockedUntil[tid]; ok && until == TermSentinel {
		return StateTerminated
	}
	if until, ok := b.BlockedUntil[tid]; ok && until > instrCount {
		return StateBlocked
	}
	if tid == b.CurrentThreadID && mode == ModeUser {
		return StateRunning
	}
	if tid >= 1 && tid <= PreseededReadyTids && readyPC > 0 {
		return StateReady
	}
	return StateInactive
}

// UnblockDue reports the tids whose blocked_until deadline has been
// reached as of instrCount, and removes them from BlockedUntil so a
// subsequent State() call sees them as RDY/INACT per their saved PC. The
// run loop calls this before decode on every step: a thread whose deadline
// equals the current INSTR_COUNT is observed RDY within that same step.
func (b *Bookkeeping) UnblockDue(instrCount int) []int {
	var due []int
	for tid, until := range b.BlockedUntil {
		if until != TermSentinel && instrCount >= until {
			due = append(due, tid)
			delete(b.BlockedUntil, tid)
		}
	}
	return due
}

// ActiveCount returns how many of threads 1..PreseededReadyTids are not
// terminated. HLT_THREAD halting relies on this being computed *after*
// the terminating thread's own entry is recorded: the terminating thread
// still counts unless already marked.
func (b *Bookkeeping) ActiveCount() int {
	n := 0
	for tid := 1; tid <= PreseededReadyTids; tid++ {
		if until, ok := b.BlockedUntil[tid]; ok && until == TermSentinel {
			continue
		}
		n++
	}
	return n
}
