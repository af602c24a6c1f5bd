package cpu

// updateNZ sets Sign/Zero from A, at M-width.
func (c *CPU) updateNZ() {
	c.updateNZValue(c.Regs.A)
}

// updateNZValue sets Sign/Zero from an explicit value, at M-width.
func (c *CPU) updateNZValue(value uint16) {
	signBit := uint16(0x8000)
	if c.GetFlag(FlagM) {
		signBit = 0x80
	}
	c.setFlag(Sign, value&signBit != 0)
	c.setFlag(Zero, value == 0)
}

// updateNZX sets Sign/Zero from an explicit value, at X-width.
func (c *CPU) updateNZX(value uint16) {
	signBit := uint16(0x8000)
	if c.GetFlag(FlagX) {
		signBit = 0x80
	}
	c.setFlag(Sign, value&signBit != 0)
	c.setFlag(Zero, value == 0)
}

// iADC adds value into A with carry. Only the 16-bit (FlagM clear) path is
// implemented; 8-bit ADC is BCD-adjacent territory the reference firmware
// never finished (it asserts in both the decimal and non-decimal 8-bit
// branches), so this panics rather than guess at the missing arithmetic.
func (c *CPU) iADC(value uint16) {
	if c.GetFlag(FlagM) {
		if c.GetFlag(Decimal) {
			panic("cpu: 8-bit decimal-mode ADC is not implemented")
		}
		panic("cpu: 8-bit ADC is not implemented")
	}

	v := uint32(c.Regs.A) + uint32(value)
	if c.GetFlag(Carry) {
		v++
	}
	result := uint16(v)
	c.setFlag(Carry, v > 0xFFFF)
	c.setFlag(Overflow, (result^c.Regs.A)&(result^value)&0x8000 != 0)
	c.Regs.A = result
	c.updateNZ()
}

// iSBC subtracts value from A with borrow.
//
// The reference computes "A - value + (carry ? 1 : 1) - 1", which adds 1
// regardless of the carry flag and then immediately subtracts it again —
// the carry-in term cancels to zero no matter what the flag says, almost
// certainly a bug rather than an intentional no-borrow-in design (spec.md
// §9 flags exactly this and asks for a decision rather than a literal
// replay). This implements the conventional borrow-aware subtraction
// instead: borrow = 1 when Carry is clear.
func (c *CPU) iSBC(value uint16) {
	if c.GetFlag(FlagM) {
		if c.GetFlag(Decimal) {
			panic("cpu: 8-bit decimal-mode SBC is not implemented")
		}
		panic("cpu: 8-bit SBC is not implemented")
	}

	borrow := uint32(1)
	if c.GetFlag(Carry) {
		borrow = 0
	}
	v := uint32(c.Regs.A) - uint32(value) - borrow
	result := uint16(v)
	c.setFlag(Carry, v&0x10000 == 0)
	c.setFlag(Overflow, (c.Regs.A^value)&(c.Regs.A^result)&0x8000 != 0)
	c.Regs.A = result
	c.updateNZ()
}

// iDIV divides the 32-bit D:A dividend by value, leaving the quotient in A
// and the remainder in D. Only the FlagM-clear, Carry-clear path is
// implemented, matching the reference: D:A is taken as a signed 32-bit
// dividend and value as an unsigned 16-bit divisor. Division by zero clears
// A, D and the Overflow, Zero and Sign flags rather than faulting.
func (c *CPU) iDIV(value uint16) {
	if value == 0 {
		c.Regs.A, c.Regs.D = 0, 0
		c.clearFlagBit(Overflow)
		c.clearFlagBit(Zero)
		c.clearFlagBit(Sign)
		return
	}

	if c.GetFlag(FlagM) {
		panic("cpu: M-width DIV is not implemented")
	}
	if c.GetFlag(Carry) {
		panic("cpu: signed-remainder DIV is not implemented")
	}

	dividend := int64(int32(uint32(c.Regs.D)<<16 | uint32(c.Regs.A)))
	divisor := int64(value)
	quotient := dividend / divisor
	remainder := dividend % divisor

	c.Regs.D = uint16(remainder)
	c.Regs.A = uint16(quotient)
	c.setFlag(Overflow, quotient > 0xFFFF)
	c.setFlag(Zero, c.Regs.A == 0)
	c.setFlag(Sign, quotient < 0)
}

// iASL shifts the M-width value at address left by one bit, through Carry.
func (c *CPU) iASL(address uint16) {
	i := c.loadM(address)
	signBit := uint16(0x8000)
	mask := uint16(0xFFFF)
	if c.GetFlag(FlagM) {
		signBit, mask = 0x80, 0xFF
	}

	c.setFlag(Carry, i&signBit != 0)
	i = (i << 1) & mask
	c.updateNZValue(i)
	c.storeM(address, i)
}

// iBRC implements a signed-8-bit relative branch, taken when condition holds.
func (c *CPU) iBRC(condition bool) {
	offset := int8(c.fetchByte())
	if condition {
		c.Regs.PC = uint16(int32(c.Regs.PC) + int32(offset))
	}
}

// iTRB tests value against A (setting Zero) and clears A's bits that are
// set in value. Despite the name, this mutates A, not memory — matching the
// reference, which never writes the tested address back.
func (c *CPU) iTRB(value uint16) {
	c.setFlag(Zero, value&c.Regs.A != 0)
	c.Regs.A &= value ^ 0xFFFF
}

// iTSB tests value against A (setting Zero) and sets A's bits that are set
// in value. Like iTRB, this mutates A rather than the tested memory.
func (c *CPU) iTSB(value uint16) {
	c.setFlag(Zero, value&c.Regs.A != 0)
	c.Regs.A |= value
}

// iCMP compares x against y at M-width, setting Carry/Zero/Sign.
func (c *CPU) iCMP(x, y uint16) {
	c.setFlag(Carry, x >= y)
	c.setFlag(Zero, x == y)

	signBit := uint16(0x8000)
	if c.GetFlag(FlagM) {
		signBit = 0x80
	}
	c.setFlag(Sign, (x-y)&signBit != 0)
}

// iINC increments the M-width value at address by one.
func (c *CPU) iINC(address uint16) {
	i := c.loadM(address)
	mask := uint16(0xFFFF)
	if c.GetFlag(FlagM) {
		mask = 0xFF
	}
	i = (i + 1) & mask
	c.storeM(address, i)
	c.updateNZValue(i)
}

// iEOR exclusive-ors value into A.
func (c *CPU) iEOR(value uint16) {
	c.Regs.A ^= value
	c.updateNZ()
}

// iOR ors value into A.
func (c *CPU) iOR(value uint16) {
	c.Regs.A |= value
	c.updateNZ()
}
