/*
 * gtu312 - Program loader: commits parsed data/instructions into memory.
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

// DataEntry is one pre-load data cell, as produced by the program parser.
type DataEntry struct {
	Addr  int
	Value Word
}

// Instruction is one decoded instruction line: an opcode mnemonic plus
// its operand words, in source order.
type Instruction struct {
	Op       string
	Operands []Word
}

// LoadResult reports what the loader actually did, for the CLI's
// "Program loaded" diagnostics.
type LoadResult struct {
	InstructionsMapped int
	InitialPC          int
}

// Load writes data, then instructions starting at instructionBase
// (default 200 when <= 0), building InstrMap as it goes. If the data
// section did not set mem[0] (PC), PC is seeded to instructionBase.
func (cpu *CPU) Load(data []DataEntry, instructions []Instruction, instructionBase int) (LoadResult, error) {
	if instructionBase <= 0 {
		instructionBase = 200
	}

	pcSetByData := false
	for _, d := range data {
		if d.Addr == AddrPC {
			pcSetByData = true
		}
		if err := cpu.Mem.RawWrite(d.Addr, d.Value); err != nil {
			return LoadResult{}, err
		}
	}

	addr := instructionBase
	cpu.InstrMap = make(map[int]int, len(instructions))
	for i, instr := range instructions {
		cpu.InstrMap[i] = addr
		if err := cpu.Mem.RawWrite(addr, OpWord(instr.Op)); err != nil {
			return LoadResult{}, err
		}
		addr++
		for _, operand := range instr.Operands {
			if err := cpu.Mem.RawWrite(addr, operand); err != nil {
				return LoadResult{}, err
			}
			addr++
		}
	}

	if !pcSetByData {
		cpu.setPC(instructionBase)
	}

	return LoadResult{
		InstructionsMapped: len(cpu.InstrMap),
		InitialPC:          cpu.PC(),
	}, nil
}

// InstructionMapLines renders the ordinal -> address -> opcode mapping,
// one line per instruction, as a diagnostic dump.
func (cpu *CPU) InstructionMapLines() []string {
	lines := make([]string, 0, len(cpu.InstrMap))
	for ordinal := 0; ordinal < len(cpu.InstrMap); ordinal++ {
		addr, ok := cpu.InstrMap[ordinal]
		if !ok {
			continue
		}
		w, _ := cpu.Mem.RawRead(addr)
		lines = append(lines, fmt.Sprintf("Instruction %d: mem[%d] = %s", ordinal, addr, w.String()))
	}
	return lines
}
