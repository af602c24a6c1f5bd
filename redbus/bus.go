// Package redbus implements the windowed inter-device bus ("RedBus") that the
// CPU's MMU uses to reach peripherals: a flat registry of at most a handful of
// devices, each claiming a single 8-bit id and a 256-byte address window.
package redbus

import "fmt"

// Device is a byte-addressable peer on the bus. Implementations own a
// 256-byte window addressed by offset; address is the fixed id the device
// registers under.
type Device interface {
	Read(offset uint8) uint8
	Write(offset uint8, value uint8)
	Address() uint8
}

// Bus is the RedBus device registry. Lookup is by id; a Bus is not safe for
// concurrent use, matching the single-threaded tick model the rest of the
// machine runs under.
type Bus struct {
	devices map[uint8]Device
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{devices: make(map[uint8]Device)}
}

// Register adds device to the bus under its own Address(). Registering two
// devices under the same id is a programming error, not a runtime fault the
// caller is expected to handle.
func (b *Bus) Register(device Device) {
	addr := device.Address()
	if _, exists := b.devices[addr]; exists {
		panic(fmt.Sprintf("redbus: device %d already registered", addr))
	}
	b.devices[addr] = device
}

// Unregister removes device from the bus. A no-op if it isn't registered, or
// if a different device now holds that id.
func (b *Bus) Unregister(device Device) {
	addr := device.Address()
	if b.devices[addr] == device {
		delete(b.devices, addr)
	}
}

// Find returns the device registered at addr, if any.
func (b *Bus) Find(addr uint8) (Device, bool) {
	d, ok := b.devices[addr]
	return d, ok
}
