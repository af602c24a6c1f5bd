package cpu

import (
	"testing"

	"github.com/smemsky/eforthpc/console"
	"github.com/smemsky/eforthpc/redbus"
)

func newTestCPU() *CPU {
	return New(nil, 0, 8)
}

func TestColdBootInvariants(t *testing.T) {
	c := newTestCPU()

	if c.Regs.SP != ColdBootSP {
		t.Errorf("SP = %d, want %d", c.Regs.SP, ColdBootSP)
	}
	if c.Regs.PC != ColdBootPC {
		t.Errorf("PC = %d, want %d", c.Regs.PC, ColdBootPC)
	}
	if c.Regs.R != ColdBootR {
		t.Errorf("R = %d, want %d", c.Regs.R, ColdBootR)
	}
	if c.Regs.A != 0 || c.Regs.X != 0 || c.Regs.Y != 0 || c.Regs.D != 0 {
		t.Errorf("A/X/Y/D = %d/%d/%d/%d, want all zero", c.Regs.A, c.Regs.X, c.Regs.Y, c.Regs.D)
	}
	want := FlagE | FlagM | FlagX
	if c.flags != want {
		t.Errorf("flags = %#x, want %#x", c.flags, want)
	}
	if c.IsRunning() {
		t.Errorf("IsRunning = true after cold boot, want false")
	}
	if c.PeekMemory(0) != DiskDeviceID {
		t.Errorf("memory[0] = %d, want disk id %d", c.PeekMemory(0), DiskDeviceID)
	}
	if c.PeekMemory(1) != ConsoleDeviceID {
		t.Errorf("memory[1] = %d, want console id %d", c.PeekMemory(1), ConsoleDeviceID)
	}
}

func TestWarmBootRestartUsesPorAddress(t *testing.T) {
	c := newTestCPU()
	c.WarmBoot()
	if !c.IsRunning() {
		t.Fatalf("IsRunning = false after WarmBoot")
	}

	c.porAddress = 0x4000
	c.Regs.PC = 0x1234 // simulate having run away from cold-boot PC
	c.WarmBoot()        // restart: already running

	if c.Regs.PC != 0x4000 {
		t.Errorf("PC = %#x after restart, want porAddress %#x", c.Regs.PC, 0x4000)
	}
	if c.Regs.SP != ColdBootSP || c.Regs.R != ColdBootR {
		t.Errorf("SP/R not reset to cold-boot values on restart")
	}
}

func TestHaltStopsRunTick(t *testing.T) {
	c := newTestCPU()
	c.WarmBoot()
	c.PokeMemory(ColdBootPC, 0xEA) // not a valid opcode
	c.RunTick()
	if c.IsRunning() {
		t.Fatalf("IsRunning = true, want false after unknown opcode halt")
	}

	pc := c.Regs.PC
	c.RunTick()
	if c.Regs.PC != pc {
		t.Errorf("PC moved on a tick while halted: %d -> %d", pc, c.Regs.PC)
	}
}

func TestSetFlagsForcesWidthsInEmulationMode(t *testing.T) {
	c := newTestCPU()
	// Cold boot is already in emulation mode; try to clear M and X via SEP.
	c.setFlags(0)
	if !c.GetFlag(FlagM) || !c.GetFlag(FlagX) {
		t.Errorf("M/X cleared by SEP while E is set; want both pinned set")
	}
}

func TestXCEIsInvolution(t *testing.T) {
	c := newTestCPU()
	before := c.flags
	c.execXCE()
	c.execXCE()
	if c.flags != before {
		t.Errorf("flags after two XCE = %#x, want unchanged %#x", c.flags, before)
	}
}

func TestXCEExitEmulationClearsWidths(t *testing.T) {
	c := newTestCPU()
	c.Regs.A = 0x00 // B stash only matters if non-zero; keep it simple
	c.execXCE()      // E=1,Carry=0 -> exit emulation

	if c.GetFlag(FlagE) {
		t.Errorf("FlagE still set after exiting emulation")
	}
	if !c.GetFlag(Carry) {
		t.Errorf("Carry not set after exiting emulation")
	}
	if c.GetFlag(FlagM) || c.GetFlag(FlagX) {
		t.Errorf("M/X still set after exiting emulation")
	}
}

func TestRedbusWriteRoutesToDeviceAndDualWrites(t *testing.T) {
	c := newTestCPU()
	bus := redbus.New()
	con := console.New(1)
	bus.Register(con)
	c.bus = bus

	c.mmu.deviceID = 1
	c.mmu.redbusWindow = 0x8000
	c.mmu.redbusEnabled = true

	c.writeMemory(0x8010, 0x41)

	if got := con.Read(0x10); got != 0x41 {
		t.Errorf("console offset 0x10 = %#x, want 0x41", got)
	}
	if got := c.PeekMemory(0x8010); got != 0x41 {
		t.Errorf("main memory at 0x8010 = %#x, want dual-written 0x41 (memory bank count covers it)", got)
	}
}

func TestRedbusUnknownDeviceTimesOut(t *testing.T) {
	c := newTestCPU()
	bus := redbus.New()
	c.bus = bus

	c.mmu.deviceID = 99
	c.mmu.redbusEnabled = true

	got := c.readMemory(0)
	if got != 0 {
		t.Errorf("read from unresolved device = %d, want 0", got)
	}
	if !c.rbTimeout {
		t.Errorf("rbTimeout = false, want true after unresolved device read")
	}
}

func TestProcessMMUDeviceChangeInvalidatesCacheWithoutAborting(t *testing.T) {
	c := newTestCPU()
	bus := redbus.New()
	conA := console.New(1)
	conB := console.New(2)
	bus.Register(conA)
	bus.Register(conB)
	c.bus = bus

	c.mmu.redbusWindow = 0x8000
	c.mmu.redbusEnabled = true

	c.mmu.deviceID = 1
	c.writeMemory(0x8010, 'a') // resolves and caches conA

	c.Regs.A = 2
	c.processMMU(0x00) // switch device id mid-tick

	if c.rbTimeout {
		t.Errorf("rbTimeout = true after switching redbus device id, want the cache simply invalidated")
	}

	c.writeMemory(0x8010, 'b')
	if got := conB.Read(0x10); got != 'b' {
		t.Errorf("conB offset 0x10 = %v, want 'b' (device switch should take effect)", got)
	}
	if got := conA.Read(0x10); got != 'a' {
		t.Errorf("conA offset 0x10 = %v, want unaffected 'a'", got)
	}
}

func TestBankLimitReadsFFAndDropsWrites(t *testing.T) {
	c := New(nil, 0, 1) // 1 bank = 8KiB present
	absent := uint16(bankSize)
	c.writeOnlyMemory(absent, 0x99)
	if got := c.readOnlyMemory(absent); got != 0xFF {
		t.Errorf("read from absent bank = %#x, want 0xFF", got)
	}
}

func TestStackDisciplineEmulationModeWraps(t *testing.T) {
	c := newTestCPU() // FlagE set
	c.Regs.SP = 0x0100
	c.push1(0x55)
	if c.Regs.SP != 0x01FF {
		t.Errorf("SP = %#x after push in emulation mode, want wrap to 0x01FF", c.Regs.SP)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c := newTestCPU()
	c.clearFlagBit(FlagE) // full-width SP movement
	c.push2(0xBEEF)
	if got := c.pop2(); got != 0xBEEF {
		t.Errorf("pop2() = %#x, want 0xBEEF", got)
	}
}
