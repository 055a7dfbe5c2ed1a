/*
 * gtu312 - USER dispatch and SYSCALL/scheduler handoff.
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

import (
	"fmt"
	"strings"
)

// opUser is kernel-only: it selects the scheduler's chosen thread from
// mem[160], switches to USER mode, and jumps PC to that thread's entry.
func opUser(cpu *CPU) error {
	if cpu.Mode != ModeKernel {
		return cpu.fault(UserFromUser, "USER executed while already in user mode")
	}
	pc := cpu.PC()
	a, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	targetPC, err := cpu.Mem.ReadInt(cpu.Mode, a)
	if err != nil {
		return err
	}
	tid, err := cpu.Mem.ReadInt(cpu.Mode, AddrSchedulerTid)
	if err != nil {
		return err
	}

	cpu.Bookkeeping.CurrentThreadID = tid
	if cpu.Bookkeeping.StartTimes[tid] == NeverRan {
		cpu.Bookkeeping.StartTimes[tid] = cpu.InstrCount()
	}

	row := ThreadTableRow(tid)
	_ = cpu.Mem.RawWrite(row, IntWord(tid))
	_ = cpu.Mem.RawWrite(row+1, IntWord(RowRunning))
	_ = cpu.Mem.RawWrite(row+2, IntWord(targetPC))
	_ = cpu.Mem.RawWrite(row+3, IntWord(cpu.SP()))

	cpu.Mode = ModeUser
	cpu.setPC(targetPC)
	cpu.logf("USER: switched to user mode, PC=%d thread=%d", targetPC, tid)
	return nil
}

// opSyscall crosses back to kernel mode and dispatches on the subtype.
func opSyscall(cpu *CPU) error {
	pc := cpu.PC()
	subWord, err := cpu.Mem.Read(cpu.Mode, pc+1)
	if err != nil {
		return err
	}
	argAddr, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}

	sub, ok := subWord.Sub()
	if !ok {
		// Some loaders store the subtype as a plain token without the
		// Sub tag (e.g. when it arrived through a data line); accept an
		// Op-tagged or raw string cell too, the type itself is not
		// semantically meaningful for a syscall subtype.
		if s, okOp := subWord.Op(); okOp {
			sub = s
		} else {
			return cpu.fault(BadSyscall, "syscall subtype cell is not a token")
		}
	}
	sub = strings.ToUpper(sub)

	if cpu.Mode == ModeUser {
		cpu.logf("SYSCALL: switching from USER to KERNEL mode")
		cpu.Mode = ModeKernel
	}

	var syscallID int
	switch sub {
	case SubPRN:
		syscallID = SyscallPRN
	case SubHltThread:
		syscallID = SyscallHalt
	case SubYield:
		syscallID = SyscallYield
	default:
		syscallID = SyscallUnknown
	}

	if err := cpu.Mem.WriteInt(cpu.Mode, AddrSyscallID, syscallID); err != nil {
		return err
	}
	if err := cpu.Mem.WriteInt(cpu.Mode, AddrSyscallArg1, argAddr); err != nil {
		return err
	}

	tid := cpu.Bookkeeping.CurrentThreadID
	row := ThreadTableRow(tid)

	switch syscallID {
	case SyscallHalt:
		_ = cpu.Mem.RawWrite(row+1, IntWord(RowTerminated))
		_ = cpu.Mem.RawWrite(row+2, IntWord(0))
		cpu.Bookkeeping.BlockedUntil[tid] = TermSentinel
		_ = cpu.Mem.RawWrite(PCSaveBase+(tid-1), IntWord(0))
		cpu.logf("SYSCALL: thread %d terminated", tid)

		if cpu.Bookkeeping.ActiveCount() <= 1 {
			cpu.Halted = true
			return nil
		}
		return cpu.jumpToInstructionFixed(DispatchScheduler)

	case SyscallPRN:
		val, err := cpu.Mem.ReadInt(cpu.Mode, argAddr)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("THREAD_%d_OUTPUT: %d", tid, val)
		fmt.Println(line)
		cpu.LastOutput = line

		cpu.Bookkeeping.BlockedUntil[tid] = cpu.InstrCount() + 100
		_ = cpu.Mem.RawWrite(row+1, IntWord(RowBlocked))
		cpu.logf("SYSCALL: thread %d blocked until cycle %d", tid, cpu.InstrCount()+100)

		if err := cpu.Mem.WriteInt(cpu.Mode, AddrSyscallResult, pc+3); err != nil {
			return err
		}
		return cpu.jumpToInstructionFixed(DispatchOSHandler)

	case SyscallYield:
		_ = cpu.Mem.RawWrite(row+1, IntWord(RowReady))
		cpu.logf("SYSCALL: thread %d yielded", tid)

		if err := cpu.Mem.WriteInt(cpu.Mode, AddrSyscallResult, pc+3); err != nil {
			return err
		}
		return cpu.jumpToInstructionFixed(DispatchOSHandler)

	default:
		return cpu.fault(BadSyscall, "unrecognized syscall subtype %q", sub)
	}
}

// jumpToInstructionFixed jumps to one of the two fixed dispatch entries,
// reporting MissingEntry (not BadInstrRef) when absent — the core commits
// to delivering control there, so an absent entry is a different failure
// than a guest program's own bad jump.
func (cpu *CPU) jumpToInstructionFixed(ordinal int) error {
	addr, ok := cpu.InstrMap[ordinal]
	if !ok {
		return cpu.fault(MissingEntry, "dispatch entry (instruction %d) not found", ordinal)
	}
	cpu.setPC(addr)
	return nil
}
