package cpu

// State is the full exported machine state of a CPU: everything a snapshot
// needs to reproduce execution exactly, short of main memory (callers copy
// that separately via PeekMemory/PokeMemory or MemorySize-sized loops).
type State struct {
	Regs  Registers
	Flags Flag

	DeviceID              uint8
	RedbusWindow          uint16
	ExternalWindow        uint16
	RedbusEnabled         bool
	ExternalWindowEnabled bool

	PorAddress uint16
	Ticks      uint64
	IsRunning  bool
}

// ExportState captures everything but main memory.
func (c *CPU) ExportState() State {
	return State{
		Regs:                  c.Regs,
		Flags:                 c.flags,
		DeviceID:              c.mmu.deviceID,
		RedbusWindow:          c.mmu.redbusWindow,
		ExternalWindow:        c.mmu.externalWindow,
		RedbusEnabled:         c.mmu.redbusEnabled,
		ExternalWindowEnabled: c.mmu.externalWindowEnabled,
		PorAddress:            c.porAddress,
		Ticks:                 c.ticks,
		IsRunning:             c.isRunning,
	}
}

// ImportState restores everything ExportState captured. It does not touch
// main memory; the per-tick RedBus cache and the WAI/RedBus timeout flags
// are cleared, as the next RunTick would clear them.
func (c *CPU) ImportState(s State) {
	c.Regs = s.Regs
	c.flags = s.Flags
	c.mmu = mmuState{
		deviceID:              s.DeviceID,
		redbusWindow:          s.RedbusWindow,
		externalWindow:        s.ExternalWindow,
		redbusEnabled:         s.RedbusEnabled,
		externalWindowEnabled: s.ExternalWindowEnabled,
	}
	c.porAddress = s.PorAddress
	c.ticks = s.Ticks
	c.isRunning = s.IsRunning
	c.rbCache = nil
	c.rbTimeout = false
	c.waiTimeout = false
}
