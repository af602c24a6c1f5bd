// Package cpu implements the 65EL02-class CPU core: the dual-width
// accumulator/index register machine, its RedBus-windowed MMU, and the
// cooperative tick-driven instruction loop.
package cpu

import (
	"fmt"

	"github.com/smemsky/eforthpc/redbus"
)

const (
	bankSize     = 8 * 1024
	maxBankCount = 8
	// MemorySize is the full 64 KiB address space; only the low
	// memoryBanks*bankSize bytes of it are backed.
	MemorySize = maxBankCount * bankSize

	// CyclesPerTick is the default instruction budget granted to runTick.
	CyclesPerTick = 1000
	maxCycleDebt  = 100 * CyclesPerTick

	// ColdBootSP, ColdBootPC and ColdBootR are the fixed register values a
	// cold boot resets to.
	ColdBootSP = 512
	ColdBootPC = 1024
	ColdBootR  = 768

	// ColdBootPorAddress is the power-on-reset vector until the guest
	// reprograms it via MMU sub-opcode 0x06.
	ColdBootPorAddress = 8192

	// DiskDeviceID and ConsoleDeviceID are the fixed bus ids the boot ROM
	// expects to find at memory[0] and memory[1] after cold boot.
	DiskDeviceID    = 2
	ConsoleDeviceID = 1
)

type mmuState struct {
	deviceID              uint8
	redbusWindow          uint16
	externalWindow        uint16
	redbusEnabled         bool
	externalWindowEnabled bool
}

// CPU is one 65EL02-class processor with its own main memory, MMU, and
// RedBus access. It is itself a redbus.Device (address 0 by convention, per
// the reference firmware), letting a peer poke the CPU's memory through the
// external window.
type CPU struct {
	address uint8
	bus     *redbus.Bus

	memory      [MemorySize]uint8
	memoryBanks int

	Regs  Registers
	flags Flag
	mmu   mmuState

	porAddress uint16

	ticks           uint64
	remainingCycles int
	isRunning       bool

	rbTimeout  bool
	waiTimeout bool

	rbCache redbus.Device

	logger    Logger
	logEnable bool
}

// New returns a cold-booted CPU with memoryBanks*8KiB of backed memory,
// registered on bus at address. memoryBanks must be in [1,8].
func New(bus *redbus.Bus, address uint8, memoryBanks int) *CPU {
	if memoryBanks < 1 || memoryBanks > maxBankCount {
		panic(fmt.Sprintf("cpu: memoryBanks must be in [1,%d], got %d", maxBankCount, memoryBanks))
	}

	c := &CPU{
		address:     address,
		bus:         bus,
		memoryBanks: memoryBanks,
		logger:      defaultLogger,
	}
	c.ColdBoot()

	if bus != nil {
		bus.Register(c)
	}

	return c
}

// SetLogger installs l as the destination for CPU trace messages. A nil
// logger restores the default no-op logger.
func (c *CPU) SetLogger(l Logger) {
	if l == nil {
		l = defaultLogger
	}
	c.logger = l
}

// SetTraceEnabled toggles all CPU trace output: the noisy
// per-instruction/per-bus-access trace the reference firmware prints
// unconditionally, and the halt and RedBus-fault messages. Off by default.
func (c *CPU) SetTraceEnabled(enabled bool) { c.logEnable = enabled }

func (c *CPU) trace(format string, args ...any) {
	if !c.logEnable {
		return
	}
	c.logger.Log(fmt.Sprintf(format, args...))
}

// ColdBoot resets the CPU to its power-on state: fixed register values,
// {E,M,X} flags set, the boot-image device ids seeded at memory[0]/[1], and
// isRunning cleared. Main memory outside those two bytes is left as-is
// (callers load a boot image afterward).
func (c *CPU) ColdBoot() {
	c.porAddress = ColdBootPorAddress
	c.Regs.SP = ColdBootSP
	c.Regs.PC = ColdBootPC
	c.Regs.R = ColdBootR

	c.Regs.A, c.Regs.X, c.Regs.Y, c.Regs.D = 0, 0, 0, 0
	c.flags = 0
	c.setFlagBit(FlagE)
	c.setFlagBit(FlagM)
	c.setFlagBit(FlagX)

	c.memory[0] = DiskDeviceID
	c.memory[1] = ConsoleDeviceID

	c.remainingCycles = 0
	c.isRunning = false
}

// WarmBoot starts (or restarts) execution. If the CPU was already running,
// this is a restart: SP and R reset to their cold-boot values and PC jumps
// to the programmed power-on-reset vector (porAddress) rather than the
// fixed cold-boot PC. If the CPU was halted, execution resumes from
// wherever PC already points.
func (c *CPU) WarmBoot() {
	if c.isRunning {
		c.Regs.SP = ColdBootSP
		c.Regs.R = ColdBootR
		c.Regs.PC = c.porAddress
	}

	c.remainingCycles = 0
	c.isRunning = true
}

// Halt stops execution; subsequent RunTick calls become no-ops until the
// next WarmBoot.
func (c *CPU) Halt() { c.isRunning = false }

// IsRunning reports whether the CPU will execute instructions on the next tick.
func (c *CPU) IsRunning() bool { return c.isRunning }

// Ticks returns the number of RunTick calls made so far, including ticks
// that were no-ops because the CPU was halted.
func (c *CPU) Ticks() uint64 { return c.ticks }

// RBTimeout reports whether the current (or just-finished) tick was cut
// short by an unresolved RedBus device.
func (c *CPU) RBTimeout() bool { return c.rbTimeout }

// WAITimeout reports whether the current (or just-finished) tick was cut
// short by a WAI instruction.
func (c *CPU) WAITimeout() bool { return c.waiTimeout }

// RunTick advances the CPU by one scheduling quantum: a fresh per-tick
// RedBus cache and fault flags, a refilled (and capped) cycle budget, then
// straight-line decode/execute until the budget is exhausted or something
// short-circuits the tick.
func (c *CPU) RunTick() {
	c.ticks++

	if !c.isRunning {
		return
	}

	c.rbCache = nil
	c.rbTimeout = false
	c.waiTimeout = false

	c.remainingCycles += CyclesPerTick
	if c.remainingCycles > maxCycleDebt {
		c.remainingCycles = maxCycleDebt
	}

	for c.isRunning && c.remainingCycles > 0 && !c.waiTimeout && !c.rbTimeout {
		c.remainingCycles--
		c.processInstruction()
	}
}

// Read implements redbus.Device: a peer reads the CPU's own memory through
// the external window, if enabled.
func (c *CPU) Read(offset uint8) uint8 {
	if !c.mmu.externalWindowEnabled {
		return 0
	}
	return c.readOnlyMemory(c.mmu.externalWindow + uint16(offset))
}

// Write implements redbus.Device: a peer writes the CPU's own memory
// through the external window, if enabled.
func (c *CPU) Write(offset uint8, value uint8) {
	if !c.mmu.externalWindowEnabled {
		return
	}
	c.writeOnlyMemory(c.mmu.externalWindow+uint16(offset), value)
}

// Address implements redbus.Device.
func (c *CPU) Address() uint8 { return c.address }

// PeekMemory reads raw main memory at addr, bypassing the MMU's RedBus
// window. Intended for boot-image loading, snapshotting and tests.
func (c *CPU) PeekMemory(addr uint16) uint8 { return c.readOnlyMemory(addr) }

// PokeMemory writes raw main memory at addr, bypassing the MMU's RedBus
// window. Intended for boot-image loading, snapshotting and tests.
func (c *CPU) PokeMemory(addr uint16, value uint8) { c.writeOnlyMemory(addr, value) }
