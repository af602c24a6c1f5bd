// Package machine composes a CPU with its console and floppy peripherals on
// one RedBus, and loads the boot image that gets the whole thing running.
package machine

import (
	"fmt"

	"github.com/smemsky/eforthpc/console"
	"github.com/smemsky/eforthpc/cpu"
	"github.com/smemsky/eforthpc/floppy"
	"github.com/smemsky/eforthpc/redbus"
)

// bootImageOffset and bootImageSize fix where a boot image lands in main
// memory: the first 256 bytes at the CPU's cold-boot PC, matching the
// reference firmware's own load address for resources/rpcboot.bin.
const (
	bootImageOffset = cpu.ColdBootPC
	bootImageSize   = 256
)

// Logger receives low-volume trace messages about boot-image loading. Machine forwards its own logger down to the CPU.
type Logger = cpu.Logger

// Machine is one EForthPC: a CPU, a console, and a floppy drive sharing a
// RedBus. The CPU also sits on the bus as a device, at address 0, so a
// peer can reach its memory through the external window.
type Machine struct {
	Bus     *redbus.Bus
	CPU     *cpu.CPU
	Console *console.Console
	Floppy  *floppy.Drive

	logger Logger
}

// New builds a Machine with memoryBanks*8KiB of CPU memory, a console at
// cpu.ConsoleDeviceID and a floppy drive at cpu.DiskDeviceID — the ids the
// cold-boot memory cells already point the guest at.
func New(memoryBanks int) *Machine {
	bus := redbus.New()
	con := console.New(cpu.ConsoleDeviceID)
	drive := floppy.NewDrive(cpu.DiskDeviceID)
	bus.Register(con)
	bus.Register(drive)

	c := cpu.New(bus, 0, memoryBanks)

	return &Machine{
		Bus:     bus,
		CPU:     c,
		Console: con,
		Floppy:  drive,
		logger:  discardLogger{},
	}
}

type discardLogger struct{}

func (discardLogger) Log(string) {}

// SetLogger installs l as the destination for both the machine's own trace
// messages (boot-image loading) and the CPU's.
func (m *Machine) SetLogger(l Logger) {
	if l == nil {
		l = discardLogger{}
	}
	m.logger = l
	m.CPU.SetLogger(l)
}

// LoadBootImage copies up to bootImageSize bytes of image into main memory
// at bootImageOffset. A short image is a truncating copy, not an error —
// the remainder of the window is whatever ColdBoot already left there. An
// empty image is logged and otherwise ignored, matching the reference
// firmware's tolerance of a missing boot ROM.
func (m *Machine) LoadBootImage(image []byte) {
	if len(image) == 0 {
		m.logger.Log("machine: no boot image provided, memory region stays as cold-booted")
		return
	}

	n := bootImageSize
	if len(image) < n {
		n = len(image)
	}
	for i := 0; i < n; i++ {
		m.CPU.PokeMemory(bootImageOffset+uint16(i), image[i])
	}
	if n < bootImageSize {
		m.logger.Log(fmt.Sprintf("machine: boot image is %d bytes, short of the %d-byte window", n, bootImageSize))
	}
}

// InsertDisk mounts disk into the floppy drive.
func (m *Machine) InsertDisk(disk floppy.Medium) {
	m.Floppy.SetDisk(disk)
}

// Boot performs a cold boot followed by a warm boot, leaving the CPU
// running from its cold-boot PC. Callers load a boot image and insert a
// disk beforehand if they want the guest to see them.
func (m *Machine) Boot() {
	m.CPU.ColdBoot()
	m.CPU.WarmBoot()
}

// RunTick advances the machine by one scheduling quantum.
func (m *Machine) RunTick() {
	m.CPU.RunTick()
}
