/*
 * gtu312 - Interactive console.
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

// Package console implements the simulator's interactive front end: a
// liner-backed prompt with single-step execution and inspection
// commands over a running machine.CPU. Commands are matched the way
// the reference command shell matches them — by unambiguous minimum
// prefix, not exact string equality.
package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/gtu312/simulator/machine"
)

// cmd is one console command: its name, the shortest unambiguous
// prefix that selects it, and its handler.
type cmd struct {
	name    string
	min     int
	process func(args []string, cpu *machine.CPU) (quit bool, err error)
}

var cmdList = []cmd{
	{name: "step", min: 1, process: cmdStep},
	{name: "regs", min: 1, process: cmdRegs},
	{name: "threads", min: 1, process: cmdThreads},
	{name: "mem", min: 1, process: cmdMem},
	{name: "quit", min: 1, process: cmdQuit},
}

func matchCommand(c cmd, word string) bool {
	if len(word) > len(c.name) || len(word) < c.min {
		return false
	}
	return c.name[:len(word)] == word
}

func matchList(word string) []cmd {
	if word == "" {
		return nil
	}
	var matches []cmd
	for _, c := range cmdList {
		if matchCommand(c, word) {
			matches = append(matches, c)
		}
	}
	return matches
}

// processLine dispatches one typed command line. It is split out from
// Run so it can be exercised without a live terminal.
func processLine(line string, cpu *machine.CPU) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	word := strings.ToLower(fields[0])
	args := fields[1:]

	matches := matchList(word)
	switch len(matches) {
	case 0:
		return false, errors.New("unknown command: " + word)
	case 1:
		return matches[0].process(args, cpu)
	default:
		return false, errors.New("ambiguous command: " + word)
	}
}

func cmdStep(_ []string, cpu *machine.CPU) (bool, error) {
	ok, err := cpu.Step(0)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Println("CPU halted.")
	}
	return false, nil
}

func cmdRegs(_ []string, cpu *machine.CPU) (bool, error) {
	modeStr := "KERNEL"
	if cpu.Mode == machine.ModeUser {
		modeStr = "USER"
	}
	fmt.Printf("PC=%d SP=%d INSTR_COUNT=%d MODE=%s HALTED=%v\n",
		cpu.PC(), cpu.SP(), cpu.InstrCount(), modeStr, cpu.Halted)
	return false, nil
}

func cmdThreads(_ []string, cpu *machine.CPU) (bool, error) {
	for _, line := range cpu.FormatThreadTable() {
		fmt.Println(line)
	}
	return false, nil
}

func cmdMem(args []string, cpu *machine.CPU) (bool, error) {
	if len(args) != 2 {
		return false, errors.New("usage: mem <start> <end>")
	}
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return false, errors.New("start address is not an integer")
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return false, errors.New("end address is not an integer")
	}
	for _, line := range cpu.Mem.Dump(start, end) {
		fmt.Println(line)
	}
	return false, nil
}

func cmdQuit(_ []string, _ *machine.CPU) (bool, error) {
	return true, nil
}

// Run drives a liner prompt loop over cpu until the user quits or
// aborts (Ctrl-D/Ctrl-C).
func Run(cpu *machine.CPU) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, c := range cmdList {
			if strings.HasPrefix(c.name, partial) {
				out = append(out, c.name)
			}
		}
		return out
	})

	for {
		input, err := line.Prompt("gtu312> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			fmt.Println("error reading line: " + err.Error())
			return
		}
		line.AppendHistory(input)

		quit, err := processLine(input, cpu)
		if err != nil {
			fmt.Println("Error: " + err.Error())
		}
		if quit || cpu.Halted {
			return
		}
	}
}
