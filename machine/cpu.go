/*
 * gtu312 - CPU: instruction fetch, decode and execute.
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

// Package machine implements the GTU-C312 instruction-execution engine:
// the memory model and its protection rule, fetch/decode/execute, thread
// lifecycle bookkeeping, and the syscall/scheduler handoff. The textual
// program format, the CLI, and human-readable dumps live in sibling
// packages and talk to the CPU only through the exported surface here.
package machine

import (
	"fmt"
	"log/slog"
)

// opEntry holds the per-opcode dispatch entry: how many operand cells follow
// the opcode, and whether the handler fully owns PC for this step (as
// opposed to the default PC += Width advance centralized in Step).
type opEntry struct {
	width   int
	control bool
	run     func(cpu *CPU) error
}

// CPU is the sole owner of Memory and thread Bookkeeping. No package-level
// or process-wide state exists: every caller constructs its own CPU and
// passes it explicitly.
type CPU struct {
	Mem    *Memory
	Mode   Mode
	Halted bool

	InstrMap map[int]int // instruction ordinal -> memory address

	Bookkeeping *Bookkeeping

	table map[string]opEntry

	Log *slog.Logger

	// LastOutput records the last PRN line produced, for callers that
	// want to echo it without re-parenting stdout.
	LastOutput string
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithLogger attaches a structured logger; a nil logger (the default)
// means the CPU stays silent except for the stdout contract.
func WithLogger(l *slog.Logger) Option {
	return func(c *CPU) { c.Log = l }
}

// NewCPU builds a CPU with a fresh Memory of memSize words and a thread
// table sized for maxThreads. PC is left at 0 and SP seeded to
// memSize-1; the loader is expected to override PC once it knows the
// instruction base.
func NewCPU(memSize, maxThreads int, opts ...Option) *CPU {
	if memSize <= 0 {
		memSize = DefaultMemorySize
	}
	if maxThreads <= 0 {
		maxThreads = DefaultMaxThreads
	}
	cpu := &CPU{
		Mem:         NewMemory(memSize),
		Mode:        ModeKernel,
		InstrMap:    make(map[int]int),
		Bookkeeping: NewBookkeeping(maxThreads),
	}
	_ = cpu.Mem.RawWrite(AddrSP, IntWord(memSize-1))
	_ = cpu.Mem.RawWrite(AddrInstrCount, IntWord(0))
	cpu.createTable()
	for _, o := range opts {
		o(cpu)
	}
	return cpu
}

func (cpu *CPU) logf(format string, args ...interface{}) {
	if cpu.Log != nil {
		cpu.Log.Debug(fmt.Sprintf(format, args...))
	}
}

// printThreadTable dumps the full thread table to stdout. Debug level 3
// calls this after every USER/SYSCALL instruction, the two opcodes that
// can change which thread is current or move one between states.
func (cpu *CPU) printThreadTable() {
	for _, line := range cpu.FormatThreadTable() {
		fmt.Println(line)
	}
}

// PC/SP/InstrCount read and write the three memory-mapped pseudo
// registers. They always use RawRead/RawWrite: PC and SP manipulation is
// a CPU-internal bookkeeping concern that the privilege guard does not
// apply to. The opcode and operand cells at PC are still fetched through
// the guard, so user-mode code below PrivilegedLimit faults on fetch.
func (cpu *CPU) PC() int {
	w, _ := cpu.Mem.RawRead(AddrPC)
	v, _ := w.Int()
	return v
}

func (cpu *CPU) setPC(v int) {
	_ = cpu.Mem.RawWrite(AddrPC, IntWord(v))
}

// SetPC overrides PC directly. Exported for the console's debugging
// commands and for tests that need to start execution at an address
// other than the one Load chose.
func (cpu *CPU) SetPC(v int) {
	cpu.setPC(v)
}

func (cpu *CPU) SP() int {
	w, _ := cpu.Mem.RawRead(AddrSP)
	v, _ := w.Int()
	return v
}

func (cpu *CPU) setSP(v int) {
	_ = cpu.Mem.RawWrite(AddrSP, IntWord(v))
}

func (cpu *CPU) InstrCount() int {
	w, _ := cpu.Mem.RawRead(AddrInstrCount)
	v, _ := w.Int()
	return v
}

func (cpu *CPU) setInstrCount(v int) {
	_ = cpu.Mem.RawWrite(AddrInstrCount, IntWord(v))
}

// fault records a fault, halts the CPU, and returns it as an error.
func (cpu *CPU) fault(kind FaultKind, format string, args ...interface{}) error {
	f := newFault(kind, format, args...)
	cpu.Halted = true
	if cpu.Log != nil {
		cpu.Log.Warn(f.Error())
	}
	return f
}

// Step decodes and executes exactly one instruction. It returns false
// (with a nil error) once the CPU is halted; a non-nil error always
// implies Halted became true during this call.
func (cpu *CPU) Step(debugLevel int) (bool, error) {
	if cpu.Halted {
		return false, nil
	}

	if cpu.Mode == ModeUser {
		tid := cpu.Bookkeeping.CurrentThreadID
		cpu.Bookkeeping.InstructionCounts[tid]++
		if cpu.Bookkeeping.StartTimes[tid] == NeverRan {
			cpu.Bookkeeping.StartTimes[tid] = cpu.InstrCount()
		}
	}

	// Unblock sweep always runs before decode, so a thread whose wakeup
	// deadline has just elapsed is RDY in time to be scheduled this cycle.
	current := cpu.InstrCount()
	for _, tid := range cpu.Bookkeeping.UnblockDue(current) {
		row := ThreadTableRow(tid)
		_ = cpu.Mem.RawWrite(row+1, IntWord(RowReady))
		cpu.logf("thread %d unblocked at cycle %d", tid, current)
	}

	pc := cpu.PC()
	if pc < 0 || pc >= cpu.Mem.Size() {
		return false, cpu.fault(BadPC, "PC %d out of bounds", pc)
	}

	opWord, err := cpu.Mem.Read(cpu.Mode, pc)
	if err != nil {
		cpu.Halted = true
		return false, err
	}
	opcode, ok := opWord.Op()
	if !ok {
		return false, cpu.fault(UnknownOpcode, "cell at PC=%d is not an opcode (holds %q)", pc, opWord.String())
	}

	entry, ok := cpu.table[opcode]
	if !ok {
		return false, cpu.fault(UnknownOpcode, "unrecognized opcode %q at PC=%d", opcode, pc)
	}

	if debugLevel > 0 {
		modeStr := "KERNEL"
		if cpu.Mode == ModeUser {
			modeStr = "USER"
		}
		cpu.logf("cycle %d: PC=%d opcode=%s mode=%s", current, pc, opcode, modeStr)
	}

	if err := entry.run(cpu); err != nil {
		cpu.Halted = true
		return false, err
	}

	if !entry.control && !cpu.Halted {
		cpu.setPC(pc + entry.width)
	}

	if debugLevel >= 3 && (opcode == "USER" || opcode == "SYSCALL") {
		cpu.printThreadTable()
	}

	if cpu.Halted {
		return false, nil
	}

	cpu.setInstrCount(current + 1)
	return true, nil
}

// jumpToInstruction resolves an instruction ordinal through InstrMap,
// raising BadInstrRef if it is not present.
func (cpu *CPU) jumpToInstruction(ordinal int) error {
	addr, ok := cpu.InstrMap[ordinal]
	if !ok {
		return cpu.fault(BadInstrRef, "instruction ordinal %d not in instruction map", ordinal)
	}
	cpu.setPC(addr)
	return nil
}
