/*
 * gtu312 - Fault taxonomy for the instruction-execution core.
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

// Kind of a Fault. Every kind halts the CPU; ParseError (program/parser.go, not
// here) is the only recoverable error kind in the system.
type FaultKind int

const (
	ProtectionFault FaultKind = iota
	BoundsFault
	BadPC
	UnknownOpcode
	BadInstrRef
	UserFromUser
	BadSyscall
	MissingEntry
	TypeFault
)

func (k FaultKind) String() string {
	switch k {
	case ProtectionFault:
		return "ProtectionFault"
	case BoundsFault:
		return "BoundsFault"
	case BadPC:
		return "BadPC"
	case UnknownOpcode:
		return "UnknownOpcode"
	case BadInstrRef:
		return "BadInstrRef"
	case UserFromUser:
		return "UserFromUser"
	case BadSyscall:
		return "BadSyscall"
	case MissingEntry:
		return "MissingEntry"
	case TypeFault:
		return "TypeFault"
	default:
		return "UnknownFault"
	}
}

// Fault is a fatal CPU error: it always halts the CPU that raised it.
type Fault struct {
	Kind FaultKind
	Msg  string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func newFault(kind FaultKind, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
