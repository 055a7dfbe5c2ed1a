/*
 * gtu312 - Opcode implementations.
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

// createTable builds the opcode dispatch table once, at construction.
// Width is the number of cells (opcode + operands) consumed by the
// instruction; control opcodes own PC entirely and Step never applies the
// default advance for them.
func (cpu *CPU) createTable() {
	cpu.table = map[string]opEntry{
		"SET":     {width: 3, control: true, run: opSet},
		"CPY":     {width: 3, run: opCpy},
		"CPYI":    {width: 3, run: opCpyi},
		"CPYI2":   {width: 3, run: opCpyi2},
		"ADD":     {width: 3, run: opAdd},
		"ADDI":    {width: 3, run: opAddi},
		"SUBI":    {width: 3, run: opSubi},
		"JIF":     {width: 3, control: true, run: opJif},
		"PUSH":    {width: 2, run: opPush},
		"POP":     {width: 2, run: opPop},
		"CALL":    {width: 2, control: true, run: opCall},
		"RET":     {width: 1, control: true, run: opRet},
		"USER":    {width: 2, control: true, run: opUser},
		"SYSCALL": {width: 3, control: true, run: opSyscall},
		"HLT":     {width: 1, run: opHlt},
	}
}

// operandInt reads the integer operand at pc+offset.
func (cpu *CPU) operandInt(pc, offset int) (int, error) {
	return cpu.Mem.ReadInt(cpu.Mode, pc+offset)
}

func opSet(cpu *CPU) error {
	pc := cpu.PC()
	valB, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	addrA, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}

	if addrA == AddrPC {
		if err := cpu.jumpToInstruction(valB); err != nil {
			return err
		}
		return nil
	}
	if err := cpu.Mem.WriteInt(cpu.Mode, addrA, valB); err != nil {
		return err
	}
	cpu.setPC(pc + 3)
	return nil
}

func opCpy(cpu *CPU) error {
	pc := cpu.PC()
	a1, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	a2, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}
	v, err := cpu.Mem.ReadInt(cpu.Mode, a1)
	if err != nil {
		return err
	}
	return cpu.Mem.WriteInt(cpu.Mode, a2, v)
}

func opCpyi(cpu *CPU) error {
	pc := cpu.PC()
	a1, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	a2, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}
	indirect, err := cpu.Mem.ReadInt(cpu.Mode, a1)
	if err != nil {
		return err
	}
	v, err := cpu.Mem.ReadInt(cpu.Mode, indirect)
	if err != nil {
		return err
	}
	return cpu.Mem.WriteInt(cpu.Mode, a2, v)
}

func opCpyi2(cpu *CPU) error {
	pc := cpu.PC()
	a1, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	a2, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}
	indirect1, err := cpu.Mem.ReadInt(cpu.Mode, a1)
	if err != nil {
		return err
	}
	indirect2, err := cpu.Mem.ReadInt(cpu.Mode, a2)
	if err != nil {
		return err
	}
	v, err := cpu.Mem.ReadInt(cpu.Mode, indirect1)
	if err != nil {
		return err
	}
	return cpu.Mem.WriteInt(cpu.Mode, indirect2, v)
}

func opAdd(cpu *CPU) error {
	pc := cpu.PC()
	a, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	b, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}
	cur, err := cpu.Mem.ReadInt(cpu.Mode, a)
	if err != nil {
		return err
	}
	return cpu.Mem.WriteInt(cpu.Mode, a, cur+b)
}

func opAddi(cpu *CPU) error {
	pc := cpu.PC()
	a1, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	a2, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}
	v1, err := cpu.Mem.ReadInt(cpu.Mode, a1)
	if err != nil {
		return err
	}
	v2, err := cpu.Mem.ReadInt(cpu.Mode, a2)
	if err != nil {
		return err
	}
	return cpu.Mem.WriteInt(cpu.Mode, a1, v1+v2)
}

func opSubi(cpu *CPU) error {
	pc := cpu.PC()
	a1, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	a2, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}
	v1, err := cpu.Mem.ReadInt(cpu.Mode, a1)
	if err != nil {
		return err
	}
	v2, err := cpu.Mem.ReadInt(cpu.Mode, a2)
	if err != nil {
		return err
	}
	return cpu.Mem.WriteInt(cpu.Mode, a2, v1-v2)
}

func opJif(cpu *CPU) error {
	pc := cpu.PC()
	a, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	target, err := cpu.operandInt(pc, 2)
	if err != nil {
		return err
	}
	v, err := cpu.Mem.ReadInt(cpu.Mode, a)
	if err != nil {
		return err
	}
	if v <= 0 {
		return cpu.jumpToInstruction(target)
	}
	cpu.setPC(pc + 3)
	return nil
}

func opPush(cpu *CPU) error {
	pc := cpu.PC()
	a, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	v, err := cpu.Mem.ReadInt(cpu.Mode, a)
	if err != nil {
		return err
	}
	newSP := cpu.SP() - 1
	if err := cpu.Mem.WriteInt(cpu.Mode, newSP, v); err != nil {
		return err
	}
	cpu.setSP(newSP)
	return nil
}

func opPop(cpu *CPU) error {
	pc := cpu.PC()
	a, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	v, err := cpu.Mem.ReadInt(cpu.Mode, cpu.SP())
	if err != nil {
		return err
	}
	if err := cpu.Mem.WriteInt(cpu.Mode, a, v); err != nil {
		return err
	}
	cpu.setSP(cpu.SP() + 1)
	return nil
}

func opCall(cpu *CPU) error {
	pc := cpu.PC()
	target, err := cpu.operandInt(pc, 1)
	if err != nil {
		return err
	}
	returnPC := pc + 2
	newSP := cpu.SP() - 1
	if err := cpu.Mem.WriteInt(cpu.Mode, newSP, returnPC); err != nil {
		return err
	}
	cpu.setSP(newSP)
	return cpu.jumpToInstruction(target)
}

func opRet(cpu *CPU) error {
	returnPC, err := cpu.Mem.ReadInt(cpu.Mode, cpu.SP())
	if err != nil {
		return err
	}
	cpu.setSP(cpu.SP() + 1)
	cpu.setPC(returnPC)
	return nil
}

func opHlt(cpu *CPU) error {
	cpu.Halted = true
	return nil
}
