package cpu

// processInstruction fetches one opcode byte and dispatches it. An opcode
// not in this table halts the CPU (isRunning=false) rather than panicking —
// a guest that branches into data is a machine fault the reference reports
// through trace + halt, not a Go-level error.
func (c *CPU) processInstruction() {
	opcode := c.fetchByte()
	pc := c.Regs.PC - 1
	c.trace("%#04x: opcode %#02x", pc, opcode)

	switch opcode {
	case 0x01:
		c.iOR(c.loadM(c.addrZPIndX()))
	case 0x02:
		c.Regs.PC = c.loadWord(c.Regs.I)
		c.Regs.I += 2
	case 0x03:
		c.iOR(c.loadM(c.addrSP()))
	case 0x04:
		c.iTSB(c.loadM(c.addrZP()))
	case 0x05:
		c.iOR(c.loadM(c.addrZP()))
	case 0x06:
		c.iASL(c.addrZP())
	case 0x07:
		c.iOR(c.loadM(c.addrRP()))
	case 0x09:
		c.iOR(c.fetchImmM())
	case 0x0C:
		c.iTSB(c.loadM(c.fetchWord()))
	case 0x0D:
		c.iOR(c.loadM(c.fetchWord()))
	case 0x0E:
		c.iASL(c.fetchWord())
	case 0x10:
		c.iBRC(!c.GetFlag(Sign))
	case 0x11:
		c.iOR(c.loadM(c.addrZPIndY()))
	case 0x12:
		c.iOR(c.loadM(c.addrZPInd()))
	case 0x13:
		c.iOR(c.loadM(c.addrSPIndY()))
	case 0x14:
		c.iTRB(c.loadM(c.addrZP()))
	case 0x15:
		c.iOR(c.loadM(c.addrZPX()))
	case 0x16:
		c.iASL(c.addrZPX())
	case 0x17:
		c.iOR(c.loadM(c.addrRPIndY()))
	case 0x18:
		c.clearFlagBit(Carry)
	case 0x19:
		c.iOR(c.loadM(c.addrAbsY()))
	case 0x1A:
		c.Regs.A = (c.Regs.A + 1) & c.maskM()
		c.updateNZValue(c.Regs.A)
	case 0x1C:
		c.iTRB(c.loadM(c.fetchWord()))
	case 0x1D:
		c.iOR(c.loadM(c.addrAbsX()))
	case 0x1E:
		c.iASL(c.addrAbsX())
	case 0x22:
		c.push2R(c.Regs.I)
		c.Regs.I = c.Regs.PC + 2
		c.Regs.PC = c.loadWord(c.Regs.PC)
	case 0x2A:
		carryIn := uint16(0)
		if c.GetFlag(Carry) {
			carryIn = 1
		}
		n := (c.Regs.A<<1 | carryIn) & c.maskM()
		c.setFlag(Carry, n&c.signBitM() != 0)
		c.Regs.A = n
		c.updateNZ()
	case 0x2B:
		c.Regs.I = c.pop2R()
		c.updateNZX(c.Regs.I)
	case 0x30:
		c.iBRC(c.GetFlag(Sign))
	case 0x38:
		c.setFlagBit(Carry)
	case 0x3A:
		c.Regs.A = (c.Regs.A - 1) & c.maskM()
		c.updateNZValue(c.Regs.A)
	case 0x41:
		c.iEOR(c.loadM(c.addrZPIndX()))
	case 0x42:
		if c.GetFlag(FlagM) {
			c.Regs.A = uint16(c.readMemory(c.Regs.I))
			c.Regs.I++
		} else {
			c.Regs.A = c.loadWord(c.Regs.I)
			c.Regs.I += 2
		}
	case 0x43:
		c.iEOR(c.loadM(c.addrSP()))
	case 0x45:
		c.iEOR(c.loadM(c.addrZP()))
	case 0x47:
		c.iEOR(c.loadM(c.addrRP()))
	case 0x48:
		c.pushM(c.Regs.A)
	case 0x49:
		c.iEOR(c.fetchImmM())
	case 0x4B:
		c.pushMR(c.Regs.A)
	case 0x4C:
		c.Regs.PC = c.fetchWord()
	case 0x4D:
		c.iEOR(c.loadM(c.fetchWord()))
	case 0x50:
		c.iBRC(!c.GetFlag(Overflow))
	case 0x51:
		c.iEOR(c.loadM(c.addrZPIndY()))
	case 0x52:
		c.iEOR(c.loadM(c.addrZPInd()))
	case 0x53:
		c.iEOR(c.loadM(c.addrSPIndY()))
	case 0x55:
		c.iEOR(c.loadM(c.addrZPX()))
	case 0x57:
		c.iEOR(c.loadM(c.addrRPIndY()))
	case 0x59:
		c.iEOR(c.loadM(c.addrAbsY()))
	case 0x5A:
		c.pushX(c.Regs.Y)
	case 0x5C:
		c.Regs.I = c.Regs.X
		c.updateNZX(c.Regs.X)
	case 0x5D:
		c.iEOR(c.loadM(c.addrAbsX()))
	case 0x5F:
		c.iDIV(c.loadM(c.addrZPX()))
	case 0x61:
		c.iADC(c.loadM(c.addrZPIndX()))
	case 0x63:
		c.iADC(c.loadM(c.addrSP()))
	case 0x64:
		c.storeM(c.addrZP(), 0)
	case 0x65:
		c.iADC(c.loadM(c.addrZP()))
	case 0x67:
		c.iADC(c.loadM(c.addrRP()))
	case 0x68:
		c.Regs.A = c.popM()
		c.updateNZ()
	case 0x69:
		c.iADC(c.fetchImmM())
	case 0x6A:
		carryOut := c.Regs.A&0x1 != 0
		n := c.Regs.A >> 1
		if c.GetFlag(Carry) {
			n |= c.signBitM()
		}
		c.setFlag(Carry, carryOut)
		c.Regs.A = n
		c.updateNZ()
	case 0x6B:
		c.Regs.A = c.popMR()
		c.updateNZ()
	case 0x6D:
		c.iADC(c.loadM(c.fetchWord()))
	case 0x70:
		c.iBRC(c.GetFlag(Overflow))
	case 0x71:
		c.iADC(c.loadM(c.addrZPIndY()))
	case 0x72:
		c.iADC(c.loadM(c.addrZPInd()))
	case 0x73:
		c.iADC(c.loadM(c.addrSPIndY()))
	case 0x75:
		c.iADC(c.loadM(c.addrZPX()))
	case 0x77:
		c.iADC(c.loadM(c.addrRPIndY()))
	case 0x79:
		c.iADC(c.loadM(c.addrAbsY()))
	case 0x7A:
		c.Regs.Y = c.popX()
		c.updateNZX(c.Regs.Y)
	case 0x7D:
		c.iADC(c.loadM(c.addrAbsX()))
	case 0x80:
		c.iBRC(true)
	case 0x81:
		c.storeM(c.addrZPIndX(), c.Regs.A)
	case 0x83:
		c.storeM(c.addrSP(), c.Regs.A)
	case 0x85:
		c.storeM(c.addrZP(), c.Regs.A)
	case 0x87:
		c.storeM(c.addrRP(), c.Regs.A)
	case 0x88:
		c.Regs.Y = (c.Regs.Y - 1) & c.maskX()
		c.updateNZValue(c.Regs.Y)
	case 0x8B:
		if c.GetFlag(FlagX) {
			c.Regs.R = c.Regs.R&0xFF00 | c.Regs.X&0xFF
		} else {
			c.Regs.R = c.Regs.X
		}
		c.updateNZX(c.Regs.R)
	case 0x8D:
		c.storeM(c.fetchWord(), c.Regs.A)
	case 0x8F:
		c.Regs.D, c.Regs.B = 0, 0
	case 0x90:
		c.iBRC(!c.GetFlag(Carry))
	case 0x91:
		c.storeM(c.addrZPIndY(), c.Regs.A)
	case 0x92:
		c.storeM(c.addrZPInd(), c.Regs.A)
	case 0x93:
		c.storeM(c.addrSPIndY(), c.Regs.A)
	case 0x95:
		c.storeM(c.addrZPX(), c.Regs.A)
	case 0x97:
		c.storeM(c.addrRPIndY(), c.Regs.A)
	case 0x99:
		c.storeM(c.addrAbsY(), c.Regs.A)
	case 0x9D:
		c.storeM(c.addrAbsX(), c.Regs.A)
	case 0xA0:
		c.Regs.Y = c.fetchImmX()
		c.updateNZValue(c.Regs.Y)
	case 0xA1:
		c.Regs.A = c.loadM(c.addrZPIndX())
		c.updateNZ()
	case 0xA2:
		c.Regs.X = c.fetchImmX()
		c.updateNZValue(c.Regs.X)
	case 0xA3:
		c.Regs.A = c.loadM(c.addrSP())
		c.updateNZ()
	case 0xA5:
		c.Regs.A = c.loadM(c.addrZP())
		c.updateNZ()
	case 0xA9:
		c.Regs.A = c.fetchImmM()
		c.updateNZ()
	case 0xAA:
		c.Regs.X = c.Regs.A
		if c.GetFlag(FlagX) {
			c.Regs.X &= 0xFF
		}
		c.updateNZX(c.Regs.X)
	case 0xAD:
		c.Regs.A = c.loadM(c.fetchWord())
		c.updateNZ()
	case 0xB0:
		c.iBRC(c.GetFlag(Carry))
	case 0xB5:
		c.Regs.A = c.loadM(c.addrZPX())
		c.updateNZ()
	case 0xBA:
		c.Regs.X = c.Regs.SP
		if c.GetFlag(FlagX) {
			c.Regs.X &= 0xFF
		}
		c.updateNZX(c.Regs.X)
	case 0xC2:
		c.resetFlags(c.fetchByte())
	case 0xC3:
		c.iCMP(c.Regs.A, c.loadM(c.addrSP()))
	case 0xCB:
		c.trace("WAI")
		c.waiTimeout = true
	case 0xCD:
		c.iCMP(c.Regs.A, c.loadM(c.fetchWord()))
	case 0xCF:
		c.Regs.D = c.popM()
	case 0xD0:
		c.iBRC(!c.GetFlag(Zero))
	case 0xDA:
		c.pushX(c.Regs.X)
	case 0xDC:
		c.Regs.X = c.Regs.I
		if c.GetFlag(FlagX) {
			c.Regs.X &= 0xFF
		}
		c.updateNZX(c.Regs.X)
	case 0xDF:
		c.pushM(c.Regs.D)
	case 0xE2:
		c.setFlags(c.fetchByte())
	case 0xE3:
		c.iSBC(c.loadM(c.addrSP()))
	case 0xE6:
		c.iINC(c.addrZP())
	case 0xEF:
		c.processMMU(c.fetchByte())
	case 0xF0:
		c.iBRC(c.GetFlag(Zero))
	case 0xF4:
		c.push2(c.fetchWord())
	case 0xFA:
		c.Regs.X = c.popX()
		c.updateNZX(c.Regs.X)
	case 0xFB:
		c.execXCE()
	default:
		c.trace("unknown opcode %#02x at %#04x", opcode, pc)
		c.isRunning = false
	}
}

// maskM is the wraparound mask for an M-width value.
func (c *CPU) maskM() uint16 {
	if c.GetFlag(FlagM) {
		return 0xFF
	}
	return 0xFFFF
}

// maskX is the wraparound mask for an X-width value.
func (c *CPU) maskX() uint16 {
	if c.GetFlag(FlagX) {
		return 0xFF
	}
	return 0xFFFF
}

// signBitM is the sign-bit position for an M-width value.
func (c *CPU) signBitM() uint16 {
	if c.GetFlag(FlagM) {
		return 0x80
	}
	return 0x8000
}
