package cpu

import "testing"

func loadProgram(c *CPU, at uint16, bytes []uint8) {
	for i, b := range bytes {
		c.PokeMemory(at+uint16(i), b)
	}
}

func TestScenario_ClcSecWai(t *testing.T) {
	c := newTestCPU()
	c.WarmBoot()
	loadProgram(c, ColdBootPC, []uint8{0x18, 0x38, 0xCB})
	c.RunTick()

	if !c.GetFlag(Carry) {
		t.Errorf("Carry not set after SEC")
	}
	if !c.WAITimeout() {
		t.Errorf("WAITimeout = false, want true")
	}
	if c.Regs.PC != ColdBootPC+3 {
		t.Errorf("PC = %d, want %d", c.Regs.PC, ColdBootPC+3)
	}
}

func TestScenario_LdaImmStaZp(t *testing.T) {
	c := newTestCPU()
	c.WarmBoot()
	loadProgram(c, ColdBootPC, []uint8{0xA9, 0x42, 0x85, 0x10, 0xCB})
	c.RunTick()

	if c.PeekMemory(0x10) != 0x42 {
		t.Errorf("memory[0x10] = %#x, want 0x42", c.PeekMemory(0x10))
	}
	if c.Regs.A != 0x42 {
		t.Errorf("A = %#x, want 0x42", c.Regs.A)
	}
}

func TestScenario_BranchTaken(t *testing.T) {
	c := newTestCPU()
	c.WarmBoot()
	loadProgram(c, ColdBootPC, []uint8{0xA9, 0x00, 0xF0, 0x02, 0xCB, 0xCB, 0xCB})
	c.RunTick()

	if !c.WAITimeout() {
		t.Fatalf("WAITimeout = false, want true (branch should land on a WAI)")
	}
	// BEQ lands on the WAI at 0x0406; executing it leaves PC just past it.
	// An untaken branch would stop at 0x0405 instead.
	if c.Regs.PC != 0x0407 {
		t.Errorf("PC = %#x, want 0x0407", c.Regs.PC)
	}
}

func TestStaZpxRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.WarmBoot()
	c.Regs.X = 4
	// LDA #$7B ; STA zp,X(0x20) ; LDA #0 ; LDA zp,X(0x20) ; WAI
	loadProgram(c, ColdBootPC, []uint8{0xA9, 0x7B, 0x95, 0x20, 0xA9, 0x00, 0xB5, 0x20, 0xCB})
	c.RunTick()

	if c.Regs.A != 0x7B {
		t.Errorf("A = %#x after round trip through zp,X, want 0x7B", c.Regs.A)
	}
	if got := c.PeekMemory(0x24); got != 0x7B {
		t.Errorf("memory[0x24] = %#x, want 0x7B", got)
	}
}

func TestAdcCarryAndOverflow(t *testing.T) {
	c := newTestCPU()
	c.clearFlagBit(FlagM) // 16-bit A
	c.Regs.A = 0xFFFF
	c.iADC(1)

	if c.Regs.A != 0 {
		t.Errorf("A = %#x, want 0", c.Regs.A)
	}
	if !c.GetFlag(Carry) {
		t.Errorf("Carry not set on 16-bit overflow")
	}
	if !c.GetFlag(Zero) {
		t.Errorf("Zero not set for result 0")
	}
}

func TestSbcBorrow(t *testing.T) {
	c := newTestCPU()
	c.clearFlagBit(FlagM)
	c.Regs.A = 5
	c.setFlagBit(Carry) // no incoming borrow
	c.iSBC(3)

	if c.Regs.A != 2 {
		t.Errorf("A = %d, want 2", c.Regs.A)
	}
	if !c.GetFlag(Carry) {
		t.Errorf("Carry = false after SBC with no borrow, want true")
	}
}

func TestSbcBorrowUnderflow(t *testing.T) {
	c := newTestCPU()
	c.clearFlagBit(FlagM)
	c.Regs.A = 0
	c.setFlagBit(Carry)
	c.iSBC(1)

	if c.Regs.A != 0xFFFF {
		t.Errorf("A = %#x, want 0xFFFF (wrap)", c.Regs.A)
	}
	if c.GetFlag(Carry) {
		t.Errorf("Carry = true after a borrowing SBC, want false")
	}
}

func TestAdcMWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("iADC in M-width did not panic")
		}
	}()
	c := newTestCPU() // FlagM set
	c.iADC(1)
}

func TestDivByZero(t *testing.T) {
	c := newTestCPU()
	c.clearFlagBit(FlagM)
	c.clearFlagBit(Carry)
	c.Regs.A, c.Regs.D = 99, 1
	c.iDIV(0)

	if c.Regs.A != 0 || c.Regs.D != 0 {
		t.Errorf("A/D = %d/%d after divide by zero, want 0/0", c.Regs.A, c.Regs.D)
	}
}

func TestDivQuotientAndRemainder(t *testing.T) {
	c := newTestCPU()
	c.clearFlagBit(FlagM)
	c.clearFlagBit(Carry)
	c.Regs.D, c.Regs.A = 0, 17
	c.iDIV(5)

	if c.Regs.A != 3 {
		t.Errorf("quotient = %d, want 3", c.Regs.A)
	}
	if c.Regs.D != 2 {
		t.Errorf("remainder = %d, want 2", c.Regs.D)
	}
}

func TestCmpSetsCarryOnGreaterOrEqual(t *testing.T) {
	c := newTestCPU()
	c.iCMP(5, 5)
	if !c.GetFlag(Carry) || !c.GetFlag(Zero) {
		t.Errorf("CMP(5,5): Carry=%v Zero=%v, want both true", c.GetFlag(Carry), c.GetFlag(Zero))
	}

	c.iCMP(3, 5)
	if c.GetFlag(Carry) {
		t.Errorf("CMP(3,5): Carry = true, want false")
	}
}

func TestAslShiftsAndSetsCarry(t *testing.T) {
	c := newTestCPU() // FlagM set, 8-bit
	c.PokeMemory(0x10, 0x81)
	c.iASL(0x10)

	if got := c.PeekMemory(0x10); got != 0x02 {
		t.Errorf("memory[0x10] = %#x, want 0x02", got)
	}
	if !c.GetFlag(Carry) {
		t.Errorf("Carry not set from high bit of 0x81")
	}
}

func TestTsbTrbMutateAccumulatorNotMemory(t *testing.T) {
	c := newTestCPU()
	c.Regs.A = 0b1010
	c.iTSB(0b0101)
	if c.Regs.A != 0b1111 {
		t.Errorf("A after TSB = %#b, want 0b1111", c.Regs.A)
	}

	c.Regs.A = 0b1111
	c.iTRB(0b0101)
	if c.Regs.A != 0b1010 {
		t.Errorf("A after TRB = %#b, want 0b1010", c.Regs.A)
	}
}

func TestIncWrapsAtMWidth(t *testing.T) {
	c := newTestCPU() // 8-bit
	c.PokeMemory(0x10, 0xFF)
	c.iINC(0x10)
	if got := c.PeekMemory(0x10); got != 0 {
		t.Errorf("INC wraparound = %#x, want 0", got)
	}
	if !c.GetFlag(Zero) {
		t.Errorf("Zero not set after INC wraps to 0")
	}
}

func TestJsrPushesCallerIAndJumps(t *testing.T) {
	c := newTestCPU()
	c.WarmBoot()
	c.Regs.I = 0xAAAA
	loadProgram(c, ColdBootPC, []uint8{0x22, 0x00, 0x05})
	c.processInstruction() // JSR only; a full tick would go on executing at 0x0500

	if c.Regs.PC != 0x0500 {
		t.Errorf("PC after JSR = %#x, want 0x0500", c.Regs.PC)
	}
	if c.Regs.I != ColdBootPC+3 {
		t.Errorf("I after JSR = %#x, want return address %#x", c.Regs.I, ColdBootPC+3)
	}
	if got := c.pop2R(); got != 0xAAAA {
		t.Errorf("R-stack top = %#x, want caller's old I 0xAAAA", got)
	}
}

func TestPopIFromRStackRestoresCallerI(t *testing.T) {
	c := newTestCPU()
	c.Regs.R = 0x0300
	c.push2R(0xBEEF)
	c.PokeMemory(c.Regs.PC, 0x2B)
	c.processInstruction()

	if c.Regs.I != 0xBEEF {
		t.Errorf("I after 0x2B = %#x, want 0xBEEF", c.Regs.I)
	}
}
