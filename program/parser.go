/*
 * gtu312 - Textual program format parser.
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

// Package program parses the line-oriented, section-delimited source
// format fed to the simulator: a data section of address/value pairs
// followed by an instruction section of mnemonic lines. It hands the
// result to machine.CPU.Load and never touches memory itself.
package program

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gtu312/simulator/machine"
)

// ParseError is recoverable: the offending line is skipped and parsing
// continues. It is the only non-fatal error kind in the system (every
// machine.Fault halts the CPU outright).
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Msg, e.Text)
}

// Result is everything a parse pass produced: entries the loader can
// use, plus every malformed line encountered along the way.
type Result struct {
	Data         []machine.DataEntry
	Instructions []machine.Instruction
	Errors       []*ParseError
}

// arity records, per mnemonic, how many integer operands the instruction
// section expects after the opcode token. SYSCALL is handled separately
// since its first operand is a subtype token, not an integer.
var arity = map[string]int{
	"SET":   2,
	"CPY":   2,
	"CPYI":  2,
	"CPYI2": 2,
	"ADD":   2,
	"ADDI":  2,
	"SUBI":  2,
	"JIF":   2,
	"USER":  1,
	"PUSH":  1,
	"POP":   1,
	"CALL":  1,
	"RET":   0,
	"HLT":   0,
}

// Parse reads the section-delimited source text. Lines are stripped of
// everything from the first '#' onward, then trimmed; blank lines are
// skipped outside and inside sections alike. Section delimiters and
// malformed lines never abort the pass: a bad line becomes a ParseError
// and parsing resumes at the next line.
func Parse(source string) Result {
	var res Result
	inData := false
	inInstructions := false

	lines := strings.Split(strings.TrimSpace(source), "\n")
	for i, raw := range lines {
		lineNum := i + 1
		line := raw
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "Begin Data Section":
			inData = true
			inInstructions = false
			continue
		case "End Data Section":
			inData = false
			continue
		case "Begin Instruction Section":
			inInstructions = true
			inData = false
			continue
		case "End Instruction Section":
			inInstructions = false
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch {
		case inData:
			entry, err := parseDataLine(lineNum, raw, fields)
			if err != nil {
				res.Errors = append(res.Errors, err)
				continue
			}
			res.Data = append(res.Data, entry)

		case inInstructions:
			instr, err := parseInstructionLine(lineNum, raw, fields)
			if err != nil {
				res.Errors = append(res.Errors, err)
				continue
			}
			res.Instructions = append(res.Instructions, instr)
		}
	}

	return res
}

// parseDataLine expects "<addr> <value>"; value is an integer unless it
// fails to parse as one, in which case it is stored as an opcode-tagged
// token (mirroring the loose typing of the original data section, which
// could preseed a thread-table cell with a mnemonic as easily as a
// number).
func parseDataLine(lineNum int, raw string, fields []string) (machine.DataEntry, *ParseError) {
	if len(fields) < 2 {
		return machine.DataEntry{}, &ParseError{Line: lineNum, Text: raw, Msg: "data line needs an address and a value"}
	}
	addr, err := strconv.Atoi(fields[0])
	if err != nil {
		return machine.DataEntry{}, &ParseError{Line: lineNum, Text: raw, Msg: "address is not an integer"}
	}
	if v, err := strconv.Atoi(fields[1]); err == nil {
		return machine.DataEntry{Addr: addr, Value: machine.IntWord(v)}, nil
	}
	return machine.DataEntry{Addr: addr, Value: machine.OpWord(strings.ToUpper(fields[1]))}, nil
}

// parseInstructionLine expects "<ignored> <opcode> [operands...]"; the
// leading token is a source line label from the original format and
// carries no meaning here.
func parseInstructionLine(lineNum int, raw string, fields []string) (machine.Instruction, *ParseError) {
	if len(fields) < 2 {
		return machine.Instruction{}, &ParseError{Line: lineNum, Text: raw, Msg: "instruction line needs an opcode"}
	}
	op := strings.ToUpper(fields[1])
	rest := fields[2:]

	if op == "SYSCALL" {
		if len(rest) < 2 {
			return machine.Instruction{}, &ParseError{Line: lineNum, Text: raw, Msg: "SYSCALL needs a subtype and an argument address"}
		}
		argAddr, err := strconv.Atoi(rest[1])
		if err != nil {
			return machine.Instruction{}, &ParseError{Line: lineNum, Text: raw, Msg: "SYSCALL argument address is not an integer"}
		}
		return machine.Instruction{
			Op:       op,
			Operands: []machine.Word{machine.SubWord(strings.ToUpper(rest[0])), machine.IntWord(argAddr)},
		}, nil
	}

	want, known := arity[op]
	if !known {
		// An opcode this parser doesn't recognize still consumes an
		// ordinal and a memory cell: rejecting it here would renumber
		// every instruction after it and corrupt JIF/CALL targets that
		// were computed against the original numbering. Recognition is
		// decode's job (machine.CPU.Step), not the parser's — carry the
		// token through verbatim, best-effort operands and all, and let
		// Step raise UnknownOpcode at the right address if it's ever
		// reached.
		return parseUnrecognizedInstructionLine(op, rest), nil
	}
	if len(rest) < want {
		return machine.Instruction{}, &ParseError{Line: lineNum, Text: raw, Msg: fmt.Sprintf("%s needs %d operand(s)", op, want)}
	}

	operands := make([]machine.Word, 0, want)
	for i := 0; i < want; i++ {
		v, err := strconv.Atoi(rest[i])
		if err != nil {
			return machine.Instruction{}, &ParseError{Line: lineNum, Text: raw, Msg: fmt.Sprintf("operand %d is not an integer", i+1)}
		}
		operands = append(operands, machine.IntWord(v))
	}
	return machine.Instruction{Op: op, Operands: operands}, nil
}

// parseUnrecognizedInstructionLine builds the best-effort Instruction for
// an opcode outside the arity table: every remaining token that parses as
// an integer is kept as an operand, in source order, so decode-time
// faults on a genuinely malformed operand still report something
// meaningful instead of silently truncating the instruction.
func parseUnrecognizedInstructionLine(op string, rest []string) machine.Instruction {
	operands := make([]machine.Word, 0, len(rest))
	for _, tok := range rest {
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		operands = append(operands, machine.IntWord(v))
	}
	return machine.Instruction{Op: op, Operands: operands}
}
