/*
 * gtu312 - Human-readable thread table and summary rendering.
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

// ThreadRow is a read-only snapshot of one thread's reportable state,
// used by both the debug-level-3 trace and the console "threads" command.
type ThreadRow struct {
	TID        int
	State      State
	PC         int
	SP         int
	StartTime  int
	InstrCount int
}

// ThreadRows snapshots every thread 1..MaxThreads.
func (cpu *CPU) ThreadRows() []ThreadRow {
	rows := make([]ThreadRow, 0, cpu.Bookkeeping.MaxThreads)
	for tid := 1; tid <= cpu.Bookkeeping.MaxThreads; tid++ {
		base := ThreadTableRow(tid)
		pcVal := 0
		if w, err := cpu.Mem.RawRead(base + 2); err == nil {
			if v, ok := w.Int(); ok {
				pcVal = v
			}
		}
		spVal := 0
		if w, err := cpu.Mem.RawRead(base + 3); err == nil {
			if v, ok := w.Int(); ok {
				spVal = v
			}
		}
		readyPC := 0
		if tid >= 1 && tid <= PreseededReadyTids {
			if w, err := cpu.Mem.RawRead(PCSaveBase + (tid - 1)); err == nil {
				if v, ok := w.Int(); ok {
					readyPC = v
				}
			}
		}
		state := cpu.Bookkeeping.State(tid, cpu.Mode, cpu.InstrCount(), readyPC)
		rows = append(rows, ThreadRow{
			TID:        tid,
			State:      state,
			PC:         pcVal,
			SP:         spVal,
			StartTime:  cpu.Bookkeeping.StartTimes[tid],
			InstrCount: cpu.Bookkeeping.InstructionCounts[tid],
		})
	}
	return rows
}

// FormatThreadTable renders the debug-level-3 / console "threads" table.
func (cpu *CPU) FormatThreadTable() []string {
	lines := []string{
		"TID | State | PC   | SP   | StartTime | InstrCount",
		"----|-------|------|------|-----------|----------",
	}
	for _, r := range cpu.ThreadRows() {
		start := "N/A"
		if r.StartTime != NeverRan {
			start = fmt.Sprintf("%d", r.StartTime)
		}
		lines = append(lines, fmt.Sprintf(" %2d | %-5s | %4d | %4d | %9s | %10d",
			r.TID, r.State, r.PC, r.SP, start, r.InstrCount))
	}
	return lines
}

// FormatSummary renders the final per-thread execution summary: status,
// instruction count, start cycle, result address, and the value stored
// there.
func (cpu *CPU) FormatSummary() []string {
	lines := []string{
		"TID | Status     | Instructions | Start Time | Result Location | Final Value",
		"----|------------|--------------|------------|------------------|------------",
	}
	for _, r := range cpu.ThreadRows() {
		start := "N/A"
		if r.StartTime != NeverRan {
			start = fmt.Sprintf("%d", r.StartTime)
		}
		resultAddr := ResultAddr(r.TID)
		finalValue := 0
		if w, err := cpu.Mem.RawRead(resultAddr); err == nil {
			if v, ok := w.Int(); ok {
				finalValue = v
			}
		}
		lines = append(lines, fmt.Sprintf(" %2d | %-10s | %12d | %10s | %16d | %11d",
			r.TID, r.State, r.InstrCount, start, resultAddr, finalValue))
	}
	lines = append(lines, fmt.Sprintf("Total CPU cycles: %d", cpu.InstrCount()))
	return lines
}
