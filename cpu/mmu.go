package cpu

import "github.com/smemsky/eforthpc/redbus"

// readOnlyMemory and writeOnlyMemory are the raw main-memory accessors: no
// RedBus routing, just the bank-presence check. Absent banks read as 0xFF
// and silently drop writes.
func (c *CPU) readOnlyMemory(address uint16) uint8 {
	if int(address>>13)+1 > c.memoryBanks {
		return 0xFF
	}
	return c.memory[address]
}

func (c *CPU) writeOnlyMemory(address uint16, value uint8) {
	if int(address>>13)+1 > c.memoryBanks {
		return
	}
	c.memory[address] = value
}

func (c *CPU) lookupRedbusDevice() redbus.Device {
	if c.bus == nil {
		return nil
	}
	d, ok := c.bus.Find(c.mmu.deviceID)
	if !ok {
		return nil
	}
	return d
}

func (c *CPU) inRedbusWindow(address uint16) bool {
	return c.mmu.redbusEnabled &&
		address >= c.mmu.redbusWindow &&
		address < c.mmu.redbusWindow+256
}

// readMemory is the CPU's sole memory read entry point: RedBus-windowed
// addresses route to the selected bus device (caching the resolution for
// the rest of the tick), everything else hits main memory directly.
func (c *CPU) readMemory(address uint16) uint8 {
	if c.inRedbusWindow(address) {
		c.trace("redbus read at %#x", address)
		if c.rbCache == nil {
			c.rbCache = c.lookupRedbusDevice()
		}
		if c.rbCache == nil {
			c.trace("device %d not found on redbus", c.mmu.deviceID)
			c.rbTimeout = true
			return 0
		}

		return c.rbCache.Read(uint8(address - c.mmu.redbusWindow))
	}

	return c.readOnlyMemory(address)
}

// writeMemory is the CPU's sole memory write entry point. When the address
// falls in an enabled RedBus window and the device resolves, the device
// write happens *and* the write still falls through to main memory at the
// same address — the reference firmware does both, and guest code written
// against it relies on the dual write.
func (c *CPU) writeMemory(address uint16, value uint8) {
	if c.inRedbusWindow(address) {
		c.trace("redbus write %#x at %#x", value, address)
		if c.rbCache == nil {
			c.rbCache = c.lookupRedbusDevice()
		}
		if c.rbCache == nil {
			c.trace("device %d not found on redbus", c.mmu.deviceID)
			c.rbTimeout = true
			return
		}

		c.rbCache.Write(uint8(address-c.mmu.redbusWindow), value)
	}

	c.writeOnlyMemory(address, value)
}

// processMMU dispatches opcode 0xEF's sub-opcode byte.
//
// Sub-opcode 0x00 reassigns the selected device id. The reference aborts
// the whole tick (rbTimeout) whenever the id changes after a lookup already
// happened; that only serves to punish a guest for switching devices
// mid-tick, so here it just invalidates the cached lookup instead, letting
// the next access resolve the new device without losing the rest of the
// tick's cycle budget.
func (c *CPU) processMMU(sub uint8) {
	c.trace("mmu sub-opcode %#x", sub)

	switch sub {
	case 0x00:
		id := uint8(c.Regs.A)
		if c.mmu.deviceID != id {
			c.mmu.deviceID = id
			c.rbCache = nil
		}
	case 0x01:
		c.mmu.redbusWindow = c.Regs.A
	case 0x02:
		c.mmu.redbusEnabled = true
	case 0x03:
		c.mmu.externalWindow = c.Regs.A
	case 0x04:
		c.mmu.externalWindowEnabled = true
	case 0x06:
		c.porAddress = c.Regs.A
	case 0x82:
		c.mmu.redbusEnabled = false
	case 0x84:
		c.mmu.externalWindowEnabled = false
	default:
		c.trace("unknown mmu sub-opcode %#x", sub)
		c.isRunning = false
	}
}
