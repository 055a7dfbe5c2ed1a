/*
 * gtu312 - Settings file parser
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

// Package config loads the simulator's settings file: a handful of
// key=value lines controlling memory size, thread table size, the
// instruction load base, the cycle budget, and the default debug level.
// CLI flags always take precedence over a loaded file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gtu312/simulator/machine"
)

// Settings holds every tunable the settings file can set. Of these, the
// CLI can override only MaxCycles (-m) and Debug (-D); the rest come from
// the file or from Default().
type Settings struct {
	MemorySize      int
	ThreadTableSize int
	InstructionBase int
	MaxCycles       int
	Debug           int
}

// Default returns the settings the original fixed-layout machine used,
// before any file or flag narrows them.
func Default() Settings {
	return Settings{
		MemorySize:      machine.DefaultMemorySize,
		ThreadTableSize: machine.DefaultMaxThreads,
		InstructionBase: 200,
		MaxCycles:       5000,
		Debug:           0,
	}
}

var knownKeys = map[string]func(*Settings, int){
	"memory_size":       func(s *Settings, v int) { s.MemorySize = v },
	"thread_table_size": func(s *Settings, v int) { s.ThreadTableSize = v },
	"instruction_base":  func(s *Settings, v int) { s.InstructionBase = v },
	"max_cycles":        func(s *Settings, v int) { s.MaxCycles = v },
	"debug":             func(s *Settings, v int) { s.Debug = v },
}

// Load reads a key=value settings file on top of Default(). A missing
// file is not an error: the simulator runs fine on defaults alone, and
// -c is optional on the command line.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	defer file.Close()

	lineNumber := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return s, fmt.Errorf("config line %d: expected key=value, got %q", lineNumber, line)
		}
		key = strings.TrimSpace(strings.ToLower(key))
		val = strings.TrimSpace(val)

		setter, known := knownKeys[key]
		if !known {
			return s, fmt.Errorf("config line %d: unknown setting %q", lineNumber, key)
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return s, fmt.Errorf("config line %d: %q is not an integer", lineNumber, val)
		}
		setter(&s, n)
	}
	if err := scanner.Err(); err != nil {
		return s, err
	}
	return s, nil
}
