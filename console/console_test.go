/*
 * gtu312 console dispatch test cases.
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

package console

import (
	"testing"

	"github.com/gtu312/simulator/machine"
)

func TestProcessLineQuit(t *testing.T) {
	cpu := machine.NewCPU(2000, 4)
	quit, err := processLine("quit", cpu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quit {
		t.Fatal("expected quit to return true")
	}
}

func TestProcessLineUnknownCommand(t *testing.T) {
	cpu := machine.NewCPU(2000, 4)
	_, err := processLine("bogus", cpu)
	if err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestProcessLineEmptyLineIsNoop(t *testing.T) {
	cpu := machine.NewCPU(2000, 4)
	quit, err := processLine("   ", cpu)
	if err != nil || quit {
		t.Fatalf("got (%v, %v), want (false, nil)", quit, err)
	}
}

func TestProcessLineStepExecutesOneInstruction(t *testing.T) {
	cpu := machine.NewCPU(2000, 4)
	_ = cpu.Mem.RawWrite(200, machine.OpWord("HLT"))
	cpu.SetPC(200)

	if _, err := processLine("step", cpu); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cpu.Halted {
		t.Fatal("expected HLT to halt the CPU")
	}
}

func TestProcessLineMemRequiresTwoArgs(t *testing.T) {
	cpu := machine.NewCPU(2000, 4)
	if _, err := processLine("mem 0", cpu); err == nil {
		t.Fatal("expected an error when mem is given only one argument")
	}
}

func TestMatchListUniquePrefix(t *testing.T) {
	matches := matchList("s")
	if len(matches) != 1 || matches[0].name != "step" {
		t.Fatalf("got %v, want only step to match prefix s", matches)
	}
}
