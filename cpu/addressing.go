package cpu

// fetchByte reads the byte at PC and advances PC. Every operand fetch and
// every opcode fetch itself goes through here, so RedBus-windowed code can
// in principle be executed (the reference permits it even if no program
// does so deliberately).
func (c *CPU) fetchByte() uint8 {
	b := c.readMemory(c.Regs.PC)
	c.Regs.PC++
	return b
}

// fetchImmM reads an M-width immediate operand from PC: one byte if FlagM
// is set, else two bytes little-endian.
func (c *CPU) fetchImmM() uint16 {
	i := uint16(c.fetchByte())
	if !c.GetFlag(FlagM) {
		i |= uint16(c.fetchByte()) << 8
	}
	return i
}

// fetchImmX reads an X-width immediate operand from PC.
func (c *CPU) fetchImmX() uint16 {
	i := uint16(c.fetchByte())
	if !c.GetFlag(FlagX) {
		i |= uint16(c.fetchByte()) << 8
	}
	return i
}

// loadM reads an M-width value from a resolved address.
func (c *CPU) loadM(address uint16) uint16 {
	i := uint16(c.readMemory(address))
	if !c.GetFlag(FlagM) {
		i |= uint16(c.readMemory(address+1)) << 8
	}
	return i
}

// loadX reads an X-width value from a resolved address.
func (c *CPU) loadX(address uint16) uint16 {
	i := uint16(c.readMemory(address))
	if !c.GetFlag(FlagX) {
		i |= uint16(c.readMemory(address+1)) << 8
	}
	return i
}

// storeM writes an M-width value to a resolved address.
func (c *CPU) storeM(address uint16, value uint16) {
	c.writeMemory(address, uint8(value))
	if !c.GetFlag(FlagM) {
		c.writeMemory(address+1, uint8(value>>8))
	}
}

// storeX writes an X-width value to a resolved address.
func (c *CPU) storeX(address uint16, value uint16) {
	c.writeMemory(address, uint8(value))
	if !c.GetFlag(FlagX) {
		c.writeMemory(address+1, uint8(value>>8))
	}
}

// loadWord reads a raw 16-bit little-endian word from address, ignoring
// width flags entirely. Used both to resolve indirect addresses and for the
// two opcodes (0x02, 0x22) that load a jump target directly.
func (c *CPU) loadWord(address uint16) uint16 {
	i := uint16(c.readMemory(address))
	i |= uint16(c.readMemory(address+1)) << 8
	return i
}

// fetchWord reads a raw 16-bit little-endian word from PC (the "abs"
// addressing mode), ignoring width flags.
func (c *CPU) fetchWord() uint16 {
	i := uint16(c.fetchByte())
	i |= uint16(c.fetchByte()) << 8
	return i
}

// addrZP is the "zp" addressing mode: a literal zero-page-style byte
// address (not actually confined to page zero in this design).
func (c *CPU) addrZP() uint16 {
	return uint16(c.fetchByte())
}

// addrZPX is "zpX": byte+X, clamped to 8 bits only while FlagX is set.
func (c *CPU) addrZPX() uint16 {
	i := uint16(c.fetchByte()) + c.Regs.X
	if c.GetFlag(FlagX) {
		i &= 0xFF
	}
	return i
}

// addrZPY is "zpY": byte+Y, clamped to 8 bits only while FlagX is set.
func (c *CPU) addrZPY() uint16 {
	i := uint16(c.fetchByte()) + c.Regs.Y
	if c.GetFlag(FlagX) {
		i &= 0xFF
	}
	return i
}

// addrSP is "sp": byte+SP, unclamped.
func (c *CPU) addrSP() uint16 {
	return uint16(c.fetchByte()) + c.Regs.SP
}

// addrRP is "rp": byte+R, unclamped.
func (c *CPU) addrRP() uint16 {
	return uint16(c.fetchByte()) + c.Regs.R
}

// addrSPIndY is "(sp),Y": mem16(byte+SP)+Y.
func (c *CPU) addrSPIndY() uint16 {
	i := uint16(c.fetchByte()) + c.Regs.SP
	return c.loadWord(i) + c.Regs.Y
}

// addrRPIndY is "(rp),Y": mem16(byte+R)+Y.
func (c *CPU) addrRPIndY() uint16 {
	i := uint16(c.fetchByte()) + c.Regs.R
	return c.loadWord(i) + c.Regs.Y
}

// addrAbsX is "absX": word+X.
func (c *CPU) addrAbsX() uint16 {
	return c.fetchWord() + c.Regs.X
}

// addrAbsY is "absY": word+Y.
func (c *CPU) addrAbsY() uint16 {
	return c.fetchWord() + c.Regs.Y
}

// addrAbsIndX is "(abs,X)": mem16(word+X).
func (c *CPU) addrAbsIndX() uint16 {
	return c.loadWord(c.addrAbsX())
}

// addrZPInd is "(zp)": mem16(byte).
func (c *CPU) addrZPInd() uint16 {
	return c.loadWord(uint16(c.fetchByte()))
}

// addrZPIndX is "(zpX)": mem16((byte+X) & 0xFF). Always truncated to a
// single zero-page byte regardless of FlagX — the pointer table it indexes
// is always 8-bit, unlike addrZPX's flag-conditioned clamp.
func (c *CPU) addrZPIndX() uint16 {
	return c.loadWord((uint16(c.fetchByte()) + c.Regs.X) & 0xFF)
}

// addrZPIndY is "(zp),Y": mem16(byte)+Y.
func (c *CPU) addrZPIndY() uint16 {
	return c.loadWord(uint16(c.fetchByte())) + c.Regs.Y
}
