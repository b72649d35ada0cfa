package mos6502

// Status register bits
// 7  bit  0
// ---- ----
// NVUB DIZC
const (
	STATUS_FLAG_CARRY             = 1 << iota
	STATUS_FLAG_ZERO              // result was zero
	STATUS_FLAG_INTERRUPT_DISABLE // irq is masked
	STATUS_FLAG_DECIMAL           // tracked, but the NES ignores it
	STATUS_FLAG_BREAK             // only exists on the stack copy
	STATUS_FLAG_UNUSED            // always reads as 1
	STATUS_FLAG_OVERFLOW
	STATUS_FLAG_NEGATIVE
)

// Status returns the status register as software sees it, with the
// unused bit set.
func (c *CPU) Status() uint8 {
	return c.status | STATUS_FLAG_UNUSED
}

func (c *CPU) flagOn(flag uint8) {
	c.status |= flag
}

func (c *CPU) flagOff(flag uint8) {
	c.status &^= flag
}

func (c *CPU) setFlag(flag uint8, on bool) {
	if on {
		c.flagOn(flag)
		return
	}
	c.flagOff(flag)
}

// flagsOn reports whether all of the bits in flag are set.
func (c *CPU) flagsOn(flag uint8) bool {
	return c.status&flag == flag
}

func (c *CPU) setNegativeAndZeroFlags(n uint8) {
	c.setFlag(STATUS_FLAG_ZERO, n == 0)
	c.setFlag(STATUS_FLAG_NEGATIVE, n&0x80 != 0)
}

// overflows implements the two's complement overflow rule for a + b =
// result: both operands share a sign and the result does not.
func overflows(a, b, result uint8) bool {
	return (a^result)&(b^result)&0x80 != 0
}

// pushableStatus is the copy of status placed on the stack by PHP and
// BRK: B and the unused bit are always set.
func (c *CPU) pushableStatus() uint8 {
	return c.status | STATUS_FLAG_BREAK | STATUS_FLAG_UNUSED
}

// restoreStatus loads status from a pulled byte as PLP and RTI do. B
// doesn't exist in the register, and the unused bit is hardwired on.
func (c *CPU) restoreStatus(val uint8) {
	c.status = (val &^ STATUS_FLAG_BREAK) | STATUS_FLAG_UNUSED
}
