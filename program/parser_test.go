/*
 * gtu312 program parser test cases.
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

package program

import "testing"

func TestParseDataAndInstructionSections(t *testing.T) {
	src := `
Begin Data Section
0 100
1 999
# a comment line
Begin Instruction Section
1 SET 5 1000
2 HLT
End Instruction Section
End Data Section
`
	res := Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Data) != 2 {
		t.Fatalf("got %d data entries, want 2: %v", len(res.Data), res.Data)
	}
	if len(res.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2: %v", len(res.Instructions), res.Instructions)
	}
	if res.Instructions[0].Op != "SET" || len(res.Instructions[0].Operands) != 2 {
		t.Fatalf("got %+v, want SET with 2 operands", res.Instructions[0])
	}
}

func TestParseStripsInlineComments(t *testing.T) {
	src := `
Begin Data Section
5 42 # thread table seed
End Data Section
`
	res := Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Data) != 1 || res.Data[0].Addr != 5 {
		t.Fatalf("got %+v, want one entry at addr 5", res.Data)
	}
}

func TestParseSyscallLine(t *testing.T) {
	src := `
Begin Instruction Section
1 SYSCALL PRN 1000
End Instruction Section
`
	res := Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(res.Instructions))
	}
	instr := res.Instructions[0]
	if instr.Op != "SYSCALL" {
		t.Fatalf("got %q, want SYSCALL", instr.Op)
	}
	sub, ok := instr.Operands[0].Sub()
	if !ok || sub != "PRN" {
		t.Fatalf("got (%q, %v), want (PRN, true)", sub, ok)
	}
	argAddr, ok := instr.Operands[1].Int()
	if !ok || argAddr != 1000 {
		t.Fatalf("got (%d, %v), want (1000, true)", argAddr, ok)
	}
}

func TestParseMalformedLineRecordedNotFatal(t *testing.T) {
	src := `
Begin Instruction Section
1 SET 5
2 HLT
End Instruction Section
`
	res := Parse(src)
	if len(res.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(res.Errors), res.Errors)
	}
	if len(res.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1 (HLT should still parse)", len(res.Instructions))
	}
	if res.Instructions[0].Op != "HLT" {
		t.Fatalf("got %q, want HLT", res.Instructions[0].Op)
	}
}

func TestParseUnrecognizedOpcode(t *testing.T) {
	// An opcode the parser doesn't recognize still has to consume an
	// ordinal and a memory cell, exactly like a recognized one: recognition
	// is decode's job, not the parser's. Rejecting it here would renumber
	// every instruction after it and corrupt JIF/CALL targets computed
	// against the original numbering.
	src := `
Begin Instruction Section
1 NOPE 1 2
End Instruction Section
`
	res := Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("got %d errors, want 0: %v", len(res.Errors), res.Errors)
	}
	if len(res.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(res.Instructions))
	}
	if res.Instructions[0].Op != "NOPE" {
		t.Fatalf("got op %q, want NOPE", res.Instructions[0].Op)
	}
	if len(res.Instructions[0].Operands) != 2 {
		t.Fatalf("got %d operands, want 2", len(res.Instructions[0].Operands))
	}
}

func TestParseIgnoresTextOutsideSections(t *testing.T) {
	src := `
stray line before any section
Begin Data Section
0 1
End Data Section
stray line after
`
	res := Parse(src)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Data) != 1 {
		t.Fatalf("got %d data entries, want 1", len(res.Data))
	}
}
