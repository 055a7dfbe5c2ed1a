/*
 * gtu312 - Tagged memory cell.
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

import "strconv"

// Kind tags what a memory cell currently holds. GTU-C312 memory is
// dynamically typed at the cell level: a cell is an opcode only while PC
// points at it, a syscall subtype only while read as a SYSCALL operand,
// and an integer everywhere else.
type Kind int

const (
	KindInt Kind = iota
	KindOp
	KindSub
)

// Word is one memory cell: either a signed integer or a short string
// token (an opcode mnemonic or a syscall subtype).
type Word struct {
	Kind Kind
	Num  int
	Str  string
}

// IntWord builds an integer cell.
func IntWord(v int) Word {
	return Word{Kind: KindInt, Num: v}
}

// OpWord builds an opcode-mnemonic cell.
func OpWord(op string) Word {
	return Word{Kind: KindOp, Str: op}
}

// SubWord builds a syscall-subtype cell.
func SubWord(sub string) Word {
	return Word{Kind: KindSub, Str: sub}
}

// Int returns the cell's integer value. Reading a non-Int cell as an
// integer is a type fault — arithmetic and address use never see a
// mnemonic or a subtype token.
func (w Word) Int() (int, bool) {
	if w.Kind != KindInt {
		return 0, false
	}
	return w.Num, true
}

// Op returns the cell's opcode mnemonic, if any.
func (w Word) Op() (string, bool) {
	if w.Kind != KindOp {
		return "", false
	}
	return w.Str, true
}

// Sub returns the cell's syscall-subtype token, if any.
func (w Word) Sub() (string, bool) {
	if w.Kind != KindSub {
		return "", false
	}
	return w.Str, true
}

// String renders a cell the way the loader's diagnostic lines and the
// console's memory dump expect: a bare decimal for Int, the raw token
// otherwise.
func (w Word) String() string {
	switch w.Kind {
	case KindInt:
		return strconv.Itoa(w.Num)
	default:
		return w.Str
	}
}
