/*
 * gtu312 - Cycle-budgeted run loop.
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

// RunResult summarizes how a Run call ended.
type RunResult struct {
	Cycles         int
	BudgetExceeded bool
}

// StepHook is called after every successful step, before the next one is
// attempted. It returns false to ask Run to stop early (used by main for
// SIGINT handling and for the debug-level-2 wait between steps).
type StepHook func(cpu *CPU, cycles int) (keepGoing bool)

// Run executes step() until the CPU halts, a step fails, the cycle
// budget is exhausted, or hook returns false. Budget exhaustion is
// reported in the result but is not itself an error.
func (cpu *CPU) Run(maxCycles int, debugLevel int, hook StepHook) (RunResult, error) {
	cycles := 0
	for !cpu.Halted && cycles < maxCycles {
		ok, err := cpu.Step(debugLevel)
		if err != nil {
			return RunResult{Cycles: cycles}, err
		}
		if !ok {
			break
		}
		cycles++
		if hook != nil && !hook(cpu, cycles) {
			break
		}
	}
	return RunResult{Cycles: cycles, BudgetExceeded: cycles >= maxCycles && !cpu.Halted}, nil
}
