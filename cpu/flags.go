package cpu

// Flag identifies a single bit of the 16-bit flag register. Only the low
// nine bits are ever set; the rest of the register is unused.
type Flag uint16

const (
	Carry     Flag = 1 << 0
	Zero      Flag = 1 << 1
	Interrupt Flag = 1 << 2
	Decimal   Flag = 1 << 3
	FlagX     Flag = 1 << 4
	FlagM     Flag = 1 << 5
	Overflow  Flag = 1 << 6
	Sign      Flag = 1 << 7
	FlagE     Flag = 1 << 8
)

// GetFlag reports whether f is set.
func (c *CPU) GetFlag(f Flag) bool {
	return c.flags&f != 0
}

func (c *CPU) setFlagBit(f Flag) {
	c.flags |= f
}

func (c *CPU) clearFlagBit(f Flag) {
	c.flags &^= f
}

// setFlag sets or clears f according to value.
func (c *CPU) setFlag(f Flag, value bool) {
	if value {
		c.setFlagBit(f)
	} else {
		c.clearFlagBit(f)
	}
}

// Flags returns the raw flag register, low byte first as the guest sees it
// through SEP/REP (opcodes 0xE2/0xC2).
func (c *CPU) Flags() Flag { return c.flags }

// setFlags implements opcode 0xE2 (SEP): replace the low byte of the flag
// register with mask, then re-normalize the dependent register state.
//
// While E is set, M and X are pinned set regardless of mask — SEP/REP can't
// escape emulation-mode's 8-bit widths, only XCE can.
func (c *CPU) setFlags(mask uint8) {
	wasM := c.GetFlag(FlagM)
	c.flags = Flag(mask) | (c.flags & 0xFF00)

	if c.GetFlag(FlagE) {
		c.setFlagBit(FlagX)
		c.setFlagBit(FlagM)
		return
	}

	if c.GetFlag(FlagX) {
		c.Regs.X &= 0xFF
		c.Regs.Y &= 0xFF
	}
	if c.GetFlag(FlagM) != wasM {
		if c.GetFlag(FlagM) {
			c.Regs.B = uint8(c.Regs.A >> 8)
			c.Regs.A &= 0xFF
		} else {
			c.Regs.A |= uint16(c.Regs.B) << 8
		}
	}
}

// resetFlags implements opcode 0xC2 (REP): clear the bits of mask in the low
// flag byte, then re-normalize exactly as setFlags does.
func (c *CPU) resetFlags(mask uint8) {
	base := uint8(c.flags) &^ mask
	c.setFlags(base)
}

// execXCE implements opcode 0xFB (XCE): swap the E and Carry flags. Entering
// emulation mode stashes A's high byte into B and truncates A/X/Y to 8 bits;
// exiting restores it. A no-op when E already equals Carry.
func (c *CPU) execXCE() {
	e := c.GetFlag(FlagE)
	carry := c.GetFlag(Carry)
	if e == carry {
		return
	}

	if e {
		c.clearFlagBit(FlagE)
		c.setFlagBit(Carry)
		c.clearFlagBit(FlagM)
		c.clearFlagBit(FlagX)
		c.Regs.A |= uint16(c.Regs.B) << 8
		return
	}

	c.setFlagBit(FlagE)
	c.clearFlagBit(Carry)
	if !c.GetFlag(FlagM) {
		c.Regs.B = uint8(c.Regs.A >> 8)
	}
	c.setFlagBit(FlagM)
	c.setFlagBit(FlagX)
	c.Regs.A &= 0xFF
	c.Regs.Y &= 0xFF
	c.Regs.X &= 0xFF
}
