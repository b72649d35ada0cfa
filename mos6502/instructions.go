package mos6502

// Each opXXX applies one instruction to the cpu and returns the cycles
// it costs beyond its base count and any page crossing penalty.

// Loads and stores

func (c *CPU) opLDA(o operand) uint8 {
	c.acc = c.read(o.addr)
	c.setNegativeAndZeroFlags(c.acc)
	return 0
}

func (c *CPU) opLDX(o operand) uint8 {
	c.x = c.read(o.addr)
	c.setNegativeAndZeroFlags(c.x)
	return 0
}

func (c *CPU) opLDY(o operand) uint8 {
	c.y = c.read(o.addr)
	c.setNegativeAndZeroFlags(c.y)
	return 0
}

func (c *CPU) opSTA(o operand) uint8 {
	c.write(o.addr, c.acc)
	return 0
}

func (c *CPU) opSTX(o operand) uint8 {
	c.write(o.addr, c.x)
	return 0
}

func (c *CPU) opSTY(o operand) uint8 {
	c.write(o.addr, c.y)
	return 0
}

// Register transfers

func (c *CPU) opTAX(o operand) uint8 {
	c.x = c.acc
	c.setNegativeAndZeroFlags(c.x)
	return 0
}

func (c *CPU) opTAY(o operand) uint8 {
	c.y = c.acc
	c.setNegativeAndZeroFlags(c.y)
	return 0
}

func (c *CPU) opTXA(o operand) uint8 {
	c.acc = c.x
	c.setNegativeAndZeroFlags(c.acc)
	return 0
}

func (c *CPU) opTYA(o operand) uint8 {
	c.acc = c.y
	c.setNegativeAndZeroFlags(c.acc)
	return 0
}

func (c *CPU) opTSX(o operand) uint8 {
	c.x = c.sp
	c.setNegativeAndZeroFlags(c.x)
	return 0
}

// opTXS is the only transfer that leaves the flags alone.
func (c *CPU) opTXS(o operand) uint8 {
	c.sp = c.x
	return 0
}

// Stack

func (c *CPU) opPHA(o operand) uint8 {
	c.push(c.acc)
	return 0
}

func (c *CPU) opPHP(o operand) uint8 {
	c.push(c.pushableStatus())
	return 0
}

func (c *CPU) opPLA(o operand) uint8 {
	c.acc = c.pull()
	c.setNegativeAndZeroFlags(c.acc)
	return 0
}

func (c *CPU) opPLP(o operand) uint8 {
	c.restoreStatus(c.pull())
	return 0
}

// Arithmetic

func (c *CPU) opADC(o operand) uint8 {
	c.addWithCarry(c.read(o.addr))
	return 0
}

// opSBC is ADC of the one's complement: A - M - (1 - C) == A + ^M + C.
func (c *CPU) opSBC(o operand) uint8 {
	c.addWithCarry(^c.read(o.addr))
	return 0
}

func (c *CPU) addWithCarry(m uint8) {
	sum := uint16(c.acc) + uint16(m) + uint16(c.status&STATUS_FLAG_CARRY)
	res := uint8(sum)

	c.setFlag(STATUS_FLAG_CARRY, sum > 0xFF)
	c.setFlag(STATUS_FLAG_OVERFLOW, overflows(c.acc, m, res))
	c.acc = res
	c.setNegativeAndZeroFlags(res)
}

// Comparisons

func (c *CPU) opCMP(o operand) uint8 {
	c.compare(c.acc, c.read(o.addr))
	return 0
}

func (c *CPU) opCPX(o operand) uint8 {
	c.compare(c.x, c.read(o.addr))
	return 0
}

func (c *CPU) opCPY(o operand) uint8 {
	c.compare(c.y, c.read(o.addr))
	return 0
}

func (c *CPU) compare(reg, m uint8) {
	c.setFlag(STATUS_FLAG_CARRY, reg >= m)
	c.setNegativeAndZeroFlags(reg - m)
}

// Increments and decrements

func (c *CPU) opINC(o operand) uint8 {
	v := c.read(o.addr) + 1
	c.write(o.addr, v)
	c.setNegativeAndZeroFlags(v)
	return 0
}

func (c *CPU) opDEC(o operand) uint8 {
	v := c.read(o.addr) - 1
	c.write(o.addr, v)
	c.setNegativeAndZeroFlags(v)
	return 0
}

func (c *CPU) opINX(o operand) uint8 {
	c.x++
	c.setNegativeAndZeroFlags(c.x)
	return 0
}

func (c *CPU) opINY(o operand) uint8 {
	c.y++
	c.setNegativeAndZeroFlags(c.y)
	return 0
}

func (c *CPU) opDEX(o operand) uint8 {
	c.x--
	c.setNegativeAndZeroFlags(c.x)
	return 0
}

func (c *CPU) opDEY(o operand) uint8 {
	c.y--
	c.setNegativeAndZeroFlags(c.y)
	return 0
}

// Shifts and rotates. These work on the accumulator in ACCUMULATOR
// mode and on memory otherwise.

func (c *CPU) opASL(o operand) uint8 {
	c.modify(o, func(v uint8) uint8 {
		c.setFlag(STATUS_FLAG_CARRY, v&0x80 != 0)
		return v << 1
	})
	return 0
}

func (c *CPU) opLSR(o operand) uint8 {
	c.modify(o, func(v uint8) uint8 {
		c.setFlag(STATUS_FLAG_CARRY, v&0x01 != 0)
		return v >> 1
	})
	return 0
}

func (c *CPU) opROL(o operand) uint8 {
	c.modify(o, func(v uint8) uint8 {
		in := c.status & STATUS_FLAG_CARRY
		c.setFlag(STATUS_FLAG_CARRY, v&0x80 != 0)
		return v<<1 | in
	})
	return 0
}

func (c *CPU) opROR(o operand) uint8 {
	c.modify(o, func(v uint8) uint8 {
		in := (c.status & STATUS_FLAG_CARRY) << 7
		c.setFlag(STATUS_FLAG_CARRY, v&0x01 != 0)
		return v>>1 | in
	})
	return 0
}

// modify runs f over the accumulator or the byte at o.addr, stores the
// result back and updates N and Z from it.
func (c *CPU) modify(o operand, f func(uint8) uint8) {
	if o.mode == ACCUMULATOR {
		c.acc = f(c.acc)
		c.setNegativeAndZeroFlags(c.acc)
		return
	}

	v := f(c.read(o.addr))
	c.write(o.addr, v)
	c.setNegativeAndZeroFlags(v)
}

// Logical operations

func (c *CPU) opAND(o operand) uint8 {
	c.acc &= c.read(o.addr)
	c.setNegativeAndZeroFlags(c.acc)
	return 0
}

func (c *CPU) opORA(o operand) uint8 {
	c.acc |= c.read(o.addr)
	c.setNegativeAndZeroFlags(c.acc)
	return 0
}

func (c *CPU) opEOR(o operand) uint8 {
	c.acc ^= c.read(o.addr)
	c.setNegativeAndZeroFlags(c.acc)
	return 0
}

// opBIT sets Z from A & M, but copies N and V straight from bits 7 and
// 6 of M.
func (c *CPU) opBIT(o operand) uint8 {
	m := c.read(o.addr)
	c.setFlag(STATUS_FLAG_ZERO, c.acc&m == 0)
	c.setFlag(STATUS_FLAG_OVERFLOW, m&STATUS_FLAG_OVERFLOW != 0)
	c.setFlag(STATUS_FLAG_NEGATIVE, m&STATUS_FLAG_NEGATIVE != 0)
	return 0
}

// Jumps and calls

func (c *CPU) opJMP(o operand) uint8 {
	c.pc = o.addr
	return 0
}

// opJSR pushes the address of its own last byte; RTS adds the 1 back.
func (c *CPU) opJSR(o operand) uint8 {
	c.push16(c.pc - 1)
	c.pc = o.addr
	return 0
}

func (c *CPU) opRTS(o operand) uint8 {
	c.pc = c.pull16() + 1
	return 0
}

// opBRK skips the padding byte after the opcode, so the return address
// pushed is the BRK address + 2.
func (c *CPU) opBRK(o operand) uint8 {
	c.push16(c.pc + 1)
	c.push(c.pushableStatus())
	c.flagOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.read16(IRQ_VECTOR)
	return 0
}

func (c *CPU) opRTI(o operand) uint8 {
	c.restoreStatus(c.pull())
	c.pc = c.pull16()
	return 0
}

// Branches

// branch jumps to o.addr when cond holds. A taken branch costs a
// cycle, and another if the target is on a different page from the
// instruction that follows the branch.
func (c *CPU) branch(o operand, cond bool) uint8 {
	if !cond {
		return 0
	}

	extra := uint8(1)
	if pageCrossed(c.pc, o.addr) {
		extra++
	}
	c.pc = o.addr
	return extra
}

func (c *CPU) opBCC(o operand) uint8 {
	return c.branch(o, !c.flagsOn(STATUS_FLAG_CARRY))
}

func (c *CPU) opBCS(o operand) uint8 {
	return c.branch(o, c.flagsOn(STATUS_FLAG_CARRY))
}

func (c *CPU) opBEQ(o operand) uint8 {
	return c.branch(o, c.flagsOn(STATUS_FLAG_ZERO))
}

func (c *CPU) opBNE(o operand) uint8 {
	return c.branch(o, !c.flagsOn(STATUS_FLAG_ZERO))
}

func (c *CPU) opBMI(o operand) uint8 {
	return c.branch(o, c.flagsOn(STATUS_FLAG_NEGATIVE))
}

func (c *CPU) opBPL(o operand) uint8 {
	return c.branch(o, !c.flagsOn(STATUS_FLAG_NEGATIVE))
}

func (c *CPU) opBVC(o operand) uint8 {
	return c.branch(o, !c.flagsOn(STATUS_FLAG_OVERFLOW))
}

func (c *CPU) opBVS(o operand) uint8 {
	return c.branch(o, c.flagsOn(STATUS_FLAG_OVERFLOW))
}

// Status flag changes

func (c *CPU) opCLC(o operand) uint8 {
	c.flagOff(STATUS_FLAG_CARRY)
	return 0
}

func (c *CPU) opSEC(o operand) uint8 {
	c.flagOn(STATUS_FLAG_CARRY)
	return 0
}

func (c *CPU) opCLI(o operand) uint8 {
	c.flagOff(STATUS_FLAG_INTERRUPT_DISABLE)
	return 0
}

func (c *CPU) opSEI(o operand) uint8 {
	c.flagOn(STATUS_FLAG_INTERRUPT_DISABLE)
	return 0
}

func (c *CPU) opCLD(o operand) uint8 {
	c.flagOff(STATUS_FLAG_DECIMAL)
	return 0
}

func (c *CPU) opSED(o operand) uint8 {
	c.flagOn(STATUS_FLAG_DECIMAL)
	return 0
}

func (c *CPU) opCLV(o operand) uint8 {
	c.flagOff(STATUS_FLAG_OVERFLOW)
	return 0
}

func (c *CPU) opNOP(o operand) uint8 {
	return 0
}
